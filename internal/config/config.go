// Package config handles configuration loading for scopeline.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file, looked up at the project root.
const FileName = ".scopeline.yaml"

const (
	DefaultIssueDir  = ".scopeline/issues"
	DefaultKeyLength = 16

	// MinKeyLength bounds hash truncation for index shard keys. Shorter
	// prefixes make collisions too frequent to be worth the smaller names.
	MinKeyLength = 16
)

// Config is the immutable configuration snapshot an operation runs with.
type Config struct {
	// IssueDir is the issue storage root, resolved against the project root
	// when relative.
	IssueDir string `yaml:"issue_dir"`

	// KeyLength is the index shard key length (truncated path hash).
	KeyLength int `yaml:"key_length"`
}

// Default returns a Config with default values.
func Default() Config {
	return Config{
		IssueDir:  DefaultIssueDir,
		KeyLength: DefaultKeyLength,
	}
}

// Load reads .scopeline.yaml from root. A missing file yields the defaults;
// zero-valued fields fall back per field; a key_length below the minimum is
// rejected rather than silently adjusted.
func Load(root string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(root, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	loaded := Config{}
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	if loaded.IssueDir != "" {
		cfg.IssueDir = loaded.IssueDir
	}
	if loaded.KeyLength != 0 {
		if loaded.KeyLength < MinKeyLength {
			return Config{}, fmt.Errorf("%s: key_length %d below minimum %d", FileName, loaded.KeyLength, MinKeyLength)
		}
		cfg.KeyLength = loaded.KeyLength
	}

	return cfg, nil
}

// ResolveIssueDir returns the absolute issue directory for a project root.
func (c Config) ResolveIssueDir(root string) string {
	if filepath.IsAbs(c.IssueDir) {
		return c.IssueDir
	}
	return filepath.Join(root, c.IssueDir)
}
