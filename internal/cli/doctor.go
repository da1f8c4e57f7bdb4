package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scopeline-dev/scopeline/internal/doctor"
)

type doctorOutput struct {
	Report *doctor.Report        `json:"report"`
	Repair *doctor.RepairSummary `json:"repair,omitempty"`
}

func RunDoctor(cmd *cobra.Command, args []string) error {
	project, err := LoadProject()
	if err != nil {
		return err
	}

	scanner := &doctor.Scanner{
		Root:     project.Root,
		Store:    project.Store,
		Index:    project.Index,
		Registry: project.Registry,
	}

	report, err := scanner.Scan()
	if err != nil {
		return err
	}

	var summary *doctor.RepairSummary
	if optionalBool(cmd, "repair") && !report.Clean() {
		summary, err = scanner.Repair(report, project.Prompter, os.Stdout)
		if err != nil {
			return err
		}
		// Re-scan so the printed report reflects the repaired state.
		report, err = scanner.Scan()
		if err != nil {
			return err
		}
	}

	if optionalBool(cmd, "json") {
		return printJSON(doctorOutput{Report: report, Repair: summary})
	}

	fmt.Printf("checked %d issues\n", report.Total)
	fmt.Printf("  healthy:       %d\n", len(report.Healthy))
	fmt.Printf("  missing file:  %d\n", len(report.MissingFile))
	fmt.Printf("  broken refs:   %d\n", len(report.BrokenRefs))
	fmt.Printf("  missing index: %d\n", len(report.MissingIndex))

	for _, finding := range report.MissingFile {
		fmt.Printf("missing file: %s (%s)\n", finding.ID, finding.Path)
	}
	for _, finding := range report.BrokenRefs {
		fmt.Printf("broken refs: %s (%s): %s\n", finding.ID, finding.Path, finding.Detail)
	}
	for _, finding := range report.MissingIndex {
		fmt.Printf("missing index: %s (%s)\n", finding.ID, finding.Path)
	}

	if summary != nil {
		fmt.Printf("repaired: %d reindexed, %d re-pointed, %d file-scoped, %d deleted, %d skipped\n",
			summary.Reindexed, summary.Repointed, summary.FileScoped, summary.Deleted, summary.Skipped)
	}
	if report.Clean() {
		fmt.Println("all good")
	} else if !optionalBool(cmd, "repair") {
		fmt.Println("run with --repair to fix")
	}
	return nil
}
