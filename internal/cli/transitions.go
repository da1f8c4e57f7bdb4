package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scopeline-dev/scopeline/internal/issue"
)

func RunResolve(cmd *cobra.Command, args []string) error {
	project, err := LoadProject()
	if err != nil {
		return err
	}

	resolution := optionalString(cmd, "message")
	if resolution == "" {
		response, err := project.Prompter.Input("Resolution")
		if err != nil {
			return err
		}
		if response.Cancelled {
			fmt.Println("cancelled")
			return nil
		}
		resolution = response.Value
	}

	is, err := project.Store.Resolve(args[0], resolution)
	if err != nil {
		return err
	}
	if err := project.Index.UpdateStatus(is.Location.Filepath, is.ID, string(is.Status)); err != nil {
		return err
	}
	fmt.Printf("resolved %s\n", is.ID)
	return nil
}

func RunReopen(cmd *cobra.Command, args []string) error {
	project, err := LoadProject()
	if err != nil {
		return err
	}

	is, err := project.Store.Reopen(args[0])
	if err != nil {
		return err
	}
	if err := project.Index.UpdateStatus(is.Location.Filepath, is.ID, string(is.Status)); err != nil {
		return err
	}
	fmt.Printf("reopened %s\n", is.ID)
	return nil
}

func RunRemove(cmd *cobra.Command, args []string) error {
	project, err := LoadProject()
	if err != nil {
		return err
	}

	is, err := project.Store.Read(args[0])
	if err != nil {
		return err
	}

	if !optionalBool(cmd, "yes") {
		confirmation, err := project.Prompter.Confirm(fmt.Sprintf("Delete %s?", is.ID))
		if err != nil {
			return err
		}
		if confirmation.Cancelled || !confirmation.Yes {
			fmt.Println("cancelled")
			return nil
		}
	}

	// Index entry goes first so a crash mid-delete leaves an unindexed
	// issue, which the doctor re-indexes, rather than a dangling entry.
	if err := project.Index.Remove(is.Location.Filepath, is.ID); err != nil {
		return err
	}
	if err := project.Store.Delete(is.ID); err != nil {
		if errors.Is(err, issue.ErrLeftoverFiles) {
			fmt.Printf("deleted %s; extra files left in %s\n", is.ID, project.Store.Dir(is.ID))
			return nil
		}
		return err
	}
	fmt.Printf("deleted %s\n", is.ID)
	return nil
}
