package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "scopeline",
		Short: "Track review issues attached to code scopes, not line numbers",
		Long: `Scopeline tracks code-review issues as records attached to named syntax
scopes (functions, methods, classes) inside source files, so issues keep
pointing at the right code after refactors move it around.

Issues are stored as Markdown records under the issue directory and indexed
by file path for fast lookup.`,
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the issue directory and default config",
		RunE:  RunInit,
	}

	addCmd := &cobra.Command{
		Use:   "add <file>",
		Short: "Create an issue attached to a scope or a whole file",
		Args:  cobra.ExactArgs(1),
		RunE:  RunAdd,
	}
	addCmd.Flags().Int("line", 0, "1-based source line; the enclosing scopes become the reference chain")
	addCmd.Flags().Int("col", 1, "1-based source column for --line")
	addCmd.Flags().StringSlice("scope", nil, "Literal scope reference kind|name (repeatable, innermost first)")
	addCmd.Flags().StringP("message", "m", "", "Issue description")

	lsCmd := &cobra.Command{
		Use:   "ls [file]",
		Short: "List issues, project-wide or for one file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunList,
	}
	lsCmd.Flags().String("status", "", "Filter by status: open|closed")
	lsCmd.Flags().Bool("json", false, "Print machine-readable listing")

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one issue record",
		Args:  cobra.ExactArgs(1),
		RunE:  RunShow,
	}
	showCmd.Flags().Bool("json", false, "Print machine-readable record")

	resolveCmd := &cobra.Command{
		Use:   "resolve <id>",
		Short: "Close an issue with a resolution note",
		Args:  cobra.ExactArgs(1),
		RunE:  RunResolve,
	}
	resolveCmd.Flags().StringP("message", "m", "", "Resolution text (prompted for when omitted)")

	reopenCmd := &cobra.Command{
		Use:   "reopen <id>",
		Short: "Reopen a closed issue, keeping its resolution history",
		Args:  cobra.ExactArgs(1),
		RunE:  RunReopen,
	}

	rmCmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an issue and its index entry",
		Args:  cobra.ExactArgs(1),
		RunE:  RunRemove,
	}
	rmCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")

	annotateCmd := &cobra.Command{
		Use:   "annotate <file>",
		Short: "Resolve stored scope chains to current line positions",
		Args:  cobra.ExactArgs(1),
		RunE:  RunAnnotate,
	}
	annotateCmd.Flags().Bool("json", false, "Print machine-readable positions")

	doctorCmd := &cobra.Command{
		Use:   "doctor",
		Short: "Cross-check issues, index, and source files for drift",
		RunE:  RunDoctor,
	}
	doctorCmd.Flags().Bool("json", false, "Print machine-readable doctor output")
	doctorCmd.Flags().Bool("repair", false, "Interactively repair the problems found")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("scopeline %s\n", version)
		},
	}

	rootCmd.AddCommand(
		initCmd,
		addCmd,
		lsCmd,
		showCmd,
		resolveCmd,
		reopenCmd,
		rmCmd,
		annotateCmd,
		doctorCmd,
		versionCmd,
	)

	return rootCmd
}
