package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scopeline-dev/scopeline/internal/issue"
)

type issueView struct {
	ID         string   `json:"id"`
	Status     string   `json:"status"`
	Path       string   `json:"path"`
	References []string `json:"references,omitempty"`
	Blocks     []struct {
		Label string `json:"label"`
		Text  string `json:"text"`
	} `json:"blocks"`
}

func viewOf(is *issue.Issue) issueView {
	view := issueView{
		ID:     is.ID,
		Status: string(is.Status),
		Path:   is.Location.Filepath,
	}
	for _, ref := range is.Location.References {
		view.References = append(view.References, ref.String())
	}
	for _, block := range is.Blocks {
		view.Blocks = append(view.Blocks, struct {
			Label string `json:"label"`
			Text  string `json:"text"`
		}{Label: block.Label, Text: block.Text})
	}
	return view
}

func RunShow(cmd *cobra.Command, args []string) error {
	project, err := LoadProject()
	if err != nil {
		return err
	}

	is, err := project.Store.Read(args[0])
	if err != nil {
		return err
	}

	if optionalBool(cmd, "json") {
		return printJSON(viewOf(is))
	}

	fmt.Printf("%s  %s\n", is.ID, colorStatus(string(is.Status)))
	if is.Location.FileScoped() {
		fmt.Printf("file: %s (file-scoped)\n", is.Location.Filepath)
	} else {
		fmt.Printf("file: %s\n", is.Location.Filepath)
		for _, ref := range is.Location.References {
			fmt.Printf("scope: %s\n", ref)
		}
	}
	for _, block := range is.Blocks {
		fmt.Printf("\n## %s\n\n%s\n", block.Label, block.Text)
	}
	return nil
}
