package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/scopeline-dev/scopeline/internal/fileutil"
	"github.com/scopeline-dev/scopeline/internal/issue"
	"github.com/scopeline-dev/scopeline/internal/pathindex"
)

func optionalBool(cmd *cobra.Command, name string) bool {
	value, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return value
}

func optionalString(cmd *cobra.Command, name string) string {
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return value
}

func optionalInt(cmd *cobra.Command, name string) int {
	value, err := cmd.Flags().GetInt(name)
	if err != nil {
		return 0
	}
	return value
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func colorStatus(status string) string {
	switch status {
	case string(issue.StatusOpen):
		return color.YellowString(status)
	case string(issue.StatusClosed):
		return color.GreenString(status)
	}
	return status
}

// projectPath normalizes a user-supplied path into the project-relative
// forward-slash form used in locations and the index.
func projectPath(root, path string) string {
	if filepath.IsAbs(path) {
		if rel, err := filepath.Rel(root, path); err == nil {
			path = rel
		}
	}
	return fileutil.NormalizePath(path)
}

func sortedPaths(entries map[string]pathindex.Entry) []string {
	paths := make([]string, 0, len(entries))
	for path := range entries {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

func sortedIDs(entry pathindex.Entry) []string {
	ids := make([]string, 0, len(entry))
	for id := range entry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
