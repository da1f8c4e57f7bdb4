// Package fileutil holds small filesystem helpers shared by the issue store
// and the path index.
package fileutil

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
)

// WriteFileAtomic writes data to path through a rename, creating parent
// directories as needed. A concurrent reader sees either the old content or
// the new content, never a partial write.
func WriteFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return atomic.WriteFile(path, strings.NewReader(string(data)))
}

// NormalizePath converts path to the forward-slash, project-relative form
// used in issue locations and index sections.
func NormalizePath(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}

// PruneEmptyDirs removes dir and then its parents up to (not including) stop,
// as long as each is empty. Used after deleting an issue directory so year or
// month directories do not accumulate.
func PruneEmptyDirs(dir, stop string) {
	for dir != stop && strings.HasPrefix(dir, stop) {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			return
		}
		if err := os.Remove(dir); err != nil {
			return
		}
		dir = filepath.Dir(dir)
	}
}
