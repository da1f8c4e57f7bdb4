// Package doctor cross-checks the issue store, the path index, and the
// scope resolver. It is the one component that treats unresolvable scopes
// and missing files as data to catalog rather than errors to propagate.
package doctor

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/scopeline-dev/scopeline/internal/issue"
	"github.com/scopeline-dev/scopeline/internal/pathindex"
	"github.com/scopeline-dev/scopeline/internal/scope"
)

// Class is the health classification for one issue.
type Class string

const (
	ClassHealthy      Class = "healthy"
	ClassMissingFile  Class = "missing_file"
	ClassBrokenRefs   Class = "broken_refs"
	ClassMissingIndex Class = "missing_index"
)

// Finding is one classified issue.
type Finding struct {
	Issue  *issue.Issue `json:"-"`
	ID     string       `json:"id"`
	Path   string       `json:"path"`
	Class  Class        `json:"class"`
	Detail string       `json:"detail,omitempty"`
}

// Report is the result of one integrity scan.
type Report struct {
	Total        int       `json:"total"`
	Healthy      []Finding `json:"healthy,omitempty"`
	MissingFile  []Finding `json:"missing_file,omitempty"`
	BrokenRefs   []Finding `json:"broken_refs,omitempty"`
	MissingIndex []Finding `json:"missing_index,omitempty"`
}

// Clean reports whether the scan found nothing to repair.
func (r *Report) Clean() bool {
	return len(r.MissingFile) == 0 && len(r.BrokenRefs) == 0 && len(r.MissingIndex) == 0
}

// Scanner walks the issue store and classifies every issue against the
// filesystem, the path index, and the live syntax trees.
type Scanner struct {
	Root     string // project root; issue filepaths are relative to it
	Store    *issue.Store
	Index    *pathindex.Index
	Registry *scope.Registry
}

// Scan enumerates every issue known to the store by walking its directory
// tree, never the index, so a stale index cannot hide an issue. The index
// cache is rebuilt first so the missing_index check runs against current
// disk state.
func (s *Scanner) Scan() (*Report, error) {
	if err := s.Index.FullScan(); err != nil {
		return nil, err
	}

	ids, err := s.Store.IDs()
	if err != nil {
		return nil, err
	}

	report := &Report{}
	for _, id := range ids {
		is, err := s.Store.Read(id)
		if err != nil {
			return nil, err
		}
		finding := s.classify(is)
		report.Total++
		switch finding.Class {
		case ClassMissingFile:
			report.MissingFile = append(report.MissingFile, finding)
		case ClassBrokenRefs:
			report.BrokenRefs = append(report.BrokenRefs, finding)
		case ClassMissingIndex:
			report.MissingIndex = append(report.MissingIndex, finding)
		default:
			report.Healthy = append(report.Healthy, finding)
		}
	}
	return report, nil
}

func (s *Scanner) classify(is *issue.Issue) Finding {
	finding := Finding{Issue: is, ID: is.ID, Path: is.Location.Filepath, Class: ClassHealthy}

	absPath := filepath.Join(s.Root, filepath.FromSlash(is.Location.Filepath))
	if _, err := os.Stat(absPath); err != nil {
		finding.Class = ClassMissingFile
		finding.Detail = "file does not exist"
		return finding
	}

	if !is.Location.FileScoped() {
		if detail, broken := s.checkReferences(is, absPath); broken {
			finding.Class = ClassBrokenRefs
			finding.Detail = detail
			return finding
		}
	}

	if entry, ok := s.Index.Get(is.Location.Filepath); !ok || entry[is.ID] == "" {
		finding.Class = ClassMissingIndex
		finding.Detail = "no index entry for this issue"
		return finding
	}

	return finding
}

// checkReferences resolves the stored chain against the live tree. A chain
// with zero found members is broken; a file with no registered provider
// cannot be judged and passes.
func (s *Scanner) checkReferences(is *issue.Issue, absPath string) (string, bool) {
	tree, handled, err := s.Registry.ParseFile(absPath)
	if !handled {
		return "", false
	}
	if err != nil {
		return fmt.Sprintf("cannot parse file: %v", err), true
	}
	defer tree.Close()

	results := scope.Resolve(tree, is.Location.References)
	found := 0
	for _, result := range results {
		if result.Found {
			found++
		}
	}
	if found == 0 {
		return fmt.Sprintf("0 of %d references resolve", len(results)), true
	}
	return "", false
}
