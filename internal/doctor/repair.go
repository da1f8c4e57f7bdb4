package doctor

import (
	"errors"
	"fmt"
	"io"

	"github.com/scopeline-dev/scopeline/internal/fileutil"
	"github.com/scopeline-dev/scopeline/internal/issue"
	"github.com/scopeline-dev/scopeline/internal/prompt"
)

// RepairSummary counts the actions taken by one repair pass.
type RepairSummary struct {
	Reindexed  int `json:"reindexed"`
	Repointed  int `json:"repointed"`
	FileScoped int `json:"file_scoped"`
	Deleted    int `json:"deleted"`
	Skipped    int `json:"skipped"`
}

const (
	actionRepoint    = "re-point to a new file"
	actionFileScoped = "convert to file-scoped"
	actionDelete     = "delete the issue"
	actionSkip       = "skip"
)

// Repair walks a scan report one problem at a time. Re-adding a missing
// index entry is mechanical and happens automatically; missing files and
// broken references need a human decision, so each is presented through the
// prompter and exactly the chosen action is applied. Dismissing a prompt
// skips that issue.
func (s *Scanner) Repair(report *Report, p prompt.Prompter, out io.Writer) (*RepairSummary, error) {
	summary := &RepairSummary{}

	for _, finding := range report.MissingIndex {
		is := finding.Issue
		if err := s.Index.Add(is.Location.Filepath, is.ID, string(is.Status)); err != nil {
			return summary, err
		}
		fmt.Fprintf(out, "reindexed %s under %s\n", is.ID, is.Location.Filepath)
		summary.Reindexed++
	}

	for _, finding := range report.MissingFile {
		if err := s.repairOne(finding, []string{actionRepoint, actionDelete, actionSkip}, p, out, summary); err != nil {
			return summary, err
		}
	}
	for _, finding := range report.BrokenRefs {
		options := []string{actionFileScoped, actionRepoint, actionDelete, actionSkip}
		if err := s.repairOne(finding, options, p, out, summary); err != nil {
			return summary, err
		}
	}

	return summary, nil
}

func (s *Scanner) repairOne(finding Finding, options []string, p prompt.Prompter, out io.Writer, summary *RepairSummary) error {
	question := fmt.Sprintf("%s: %s (%s)", finding.ID, finding.Detail, finding.Path)
	choice, err := p.Choose(question, options)
	if err != nil {
		return err
	}
	if choice.Cancelled {
		summary.Skipped++
		return nil
	}

	switch options[choice.Index] {
	case actionRepoint:
		return s.repoint(finding, p, out, summary)
	case actionFileScoped:
		return s.convertFileScoped(finding, out, summary)
	case actionDelete:
		return s.deleteIssue(finding, out, summary)
	default:
		summary.Skipped++
		return nil
	}
}

// repoint moves the issue to a new filepath, keeping its reference chain:
// if the file merely moved, the references may well resolve there. Index
// order: the old entry is removed before the record changes, the new entry
// added after, so the index never points at a location the record does not
// claim.
func (s *Scanner) repoint(finding Finding, p prompt.Prompter, out io.Writer, summary *RepairSummary) error {
	response, err := p.Input("new filepath:")
	if err != nil {
		return err
	}
	if response.Cancelled {
		summary.Skipped++
		return nil
	}

	is := finding.Issue
	newPath := fileutil.NormalizePath(response.Value)
	if err := s.Index.Remove(is.Location.Filepath, is.ID); err != nil {
		return err
	}
	is.Location.Filepath = newPath
	if err := s.Store.Write(is); err != nil {
		return err
	}
	if err := s.Index.Add(newPath, is.ID, string(is.Status)); err != nil {
		return err
	}
	fmt.Fprintf(out, "re-pointed %s to %s\n", is.ID, newPath)
	summary.Repointed++
	return nil
}

func (s *Scanner) convertFileScoped(finding Finding, out io.Writer, summary *RepairSummary) error {
	is := finding.Issue
	is.Location.References = nil
	if err := s.Store.Write(is); err != nil {
		return err
	}
	fmt.Fprintf(out, "converted %s to file-scoped\n", is.ID)
	summary.FileScoped++
	return nil
}

// deleteIssue removes the index entry before the record, the fixed delete
// order, so no reader observes an index entry pointing at a missing issue.
func (s *Scanner) deleteIssue(finding Finding, out io.Writer, summary *RepairSummary) error {
	is := finding.Issue
	if err := s.Index.Remove(is.Location.Filepath, is.ID); err != nil {
		return err
	}
	if err := s.Store.Delete(is.ID); err != nil {
		if errors.Is(err, issue.ErrLeftoverFiles) {
			fmt.Fprintf(out, "deleted %s (directory kept: user files remain)\n", is.ID)
			summary.Deleted++
			return nil
		}
		return err
	}
	fmt.Fprintf(out, "deleted %s\n", is.ID)
	summary.Deleted++
	return nil
}
