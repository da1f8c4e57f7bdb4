package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/scopeline-dev/scopeline/internal/scope"
)

type annotation struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Line   int    `json:"line"`
	Scope  string `json:"scope,omitempty"`
}

// RunAnnotate resolves every issue on a file to a current line number. An
// issue whose scope chain no longer resolves degrades to line 1, same as a
// file-scoped issue.
func RunAnnotate(cmd *cobra.Command, args []string) error {
	project, err := LoadProject()
	if err != nil {
		return err
	}
	if err := project.Index.FullScan(); err != nil {
		return err
	}

	path := projectPath(project.Root, args[0])
	entry, ok := project.Index.Get(path)
	if !ok || len(entry) == 0 {
		if optionalBool(cmd, "json") {
			return printJSON([]annotation{})
		}
		fmt.Println("no issues found")
		return nil
	}

	absPath := filepath.Join(project.Root, filepath.FromSlash(path))
	tree, handled, err := project.Registry.ParseFile(absPath)
	if err != nil {
		return fmt.Errorf("annotating %s: %w", path, err)
	}
	if handled {
		defer tree.Close()
	}

	var annotations []annotation
	for _, id := range sortedIDs(entry) {
		is, err := project.Store.Read(id)
		if err != nil {
			return err
		}

		a := annotation{ID: id, Status: string(is.Status), Line: 1}
		if handled && !is.Location.FileScoped() {
			results := scope.Resolve(tree, is.Location.References)
			if pos, found := scope.BestPosition(results); found {
				a.Line = int(pos.Row) + 1
			}
			a.Scope = is.Location.References[0].String()
		}
		annotations = append(annotations, a)
	}

	if optionalBool(cmd, "json") {
		return printJSON(annotations)
	}
	for _, a := range annotations {
		if a.Scope != "" {
			fmt.Printf("%s:%d  %s  %s  %s\n", path, a.Line, a.ID, colorStatus(a.Status), a.Scope)
			continue
		}
		fmt.Printf("%s:%d  %s  %s\n", path, a.Line, a.ID, colorStatus(a.Status))
	}
	return nil
}
