package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/scopeline-dev/scopeline/internal/config"
	"github.com/scopeline-dev/scopeline/internal/pathindex"
)

const defaultConfigFile = `# scopeline configuration
issue_dir: .scopeline/issues
key_length: 16
`

func RunInit(cmd *cobra.Command, args []string) error {
	project, err := LoadProject()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Join(project.IssueDir, pathindex.IndexDirName), 0755); err != nil {
		return fmt.Errorf("creating issue directory: %w", err)
	}

	configPath := filepath.Join(project.Root, config.FileName)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := os.WriteFile(configPath, []byte(defaultConfigFile), 0644); err != nil {
			return fmt.Errorf("writing default config: %w", err)
		}
		fmt.Printf("Wrote %s\n", config.FileName)
	}

	fmt.Printf("Initialized issue directory at %s\n", project.IssueDir)
	return nil
}
