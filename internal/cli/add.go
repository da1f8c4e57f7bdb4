package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/scopeline-dev/scopeline/internal/issue"
	"github.com/scopeline-dev/scopeline/internal/scope"
)

var errAddConflictingFlags = errors.New("--scope and --line are mutually exclusive")

func RunAdd(cmd *cobra.Command, args []string) error {
	project, err := LoadProject()
	if err != nil {
		return err
	}

	path := projectPath(project.Root, args[0])
	line := optionalInt(cmd, "line")
	scopes, _ := cmd.Flags().GetStringSlice("scope")
	if line > 0 && len(scopes) > 0 {
		return errAddConflictingFlags
	}

	loc := issue.Location{Filepath: path}
	switch {
	case len(scopes) > 0:
		for _, raw := range scopes {
			ref, err := issue.ParseReference(raw)
			if err != nil {
				return err
			}
			loc.References = append(loc.References, ref)
		}
	case line > 0:
		refs, err := referencesAtPosition(project, path, line, optionalInt(cmd, "col"))
		if err != nil {
			return err
		}
		loc.References = refs
	}

	created, err := project.Store.Create(loc, optionalString(cmd, "message"))
	if err != nil {
		return err
	}

	// Record first, index second: a crash between the two leaves an issue
	// the doctor re-indexes, never an index entry without an issue.
	if err := project.Index.Add(path, created.ID, string(created.Status)); err != nil {
		return err
	}

	if created.Location.FileScoped() {
		fmt.Printf("created %s (file-scoped on %s)\n", created.ID, path)
		return nil
	}
	fmt.Printf("created %s (%s on %s)\n", created.ID, created.Location.References[0], path)
	return nil
}

// referencesAtPosition parses the file and extracts the scope chain at the
// 1-based line/column. A file without a registered language provider can
// only carry file-scoped issues.
func referencesAtPosition(project *Project, path string, line, col int) ([]issue.Reference, error) {
	absPath := filepath.Join(project.Root, filepath.FromSlash(path))
	tree, handled, err := project.Registry.ParseFile(absPath)
	if !handled {
		return nil, fmt.Errorf("no language support for %s; use --scope or create a file-scoped issue", path)
	}
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	if col < 1 {
		col = 1
	}
	pos := scope.Position{Row: uint32(line - 1), Column: uint32(col - 1)}
	return scope.FromPosition(tree, pos), nil
}
