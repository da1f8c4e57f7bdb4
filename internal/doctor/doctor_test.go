package doctor

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/scopeline-dev/scopeline/internal/issue"
	"github.com/scopeline-dev/scopeline/internal/languages"
	"github.com/scopeline-dev/scopeline/internal/pathindex"
	"github.com/scopeline-dev/scopeline/internal/prompt"
)

const okSource = `package src

func calculate() int {
	return 1
}
`

const renamedSource = `package src

func newname() int {
	return 2
}
`

type fixture struct {
	scanner *Scanner

	healthy     *issue.Issue
	missingFile *issue.Issue
	brokenRefs  *issue.Issue
	unindexed   *issue.Issue
	fileScoped  *issue.Issue
}

func writeSource(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func buildFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	issueDir := filepath.Join(root, ".scopeline", "issues")
	store := issue.NewStore(issueDir)
	index := pathindex.New(issueDir, pathindex.DefaultKeyLength)

	writeSource(t, root, "src/ok.go", okSource)
	writeSource(t, root, "src/renamed.go", renamedSource)
	writeSource(t, root, "notes/plain.txt", "not source code\n")

	f := &fixture{scanner: &Scanner{
		Root:     root,
		Store:    store,
		Index:    index,
		Registry: languages.NewDefaultRegistry(),
	}}

	create := func(loc issue.Location, indexed bool) *issue.Issue {
		is, err := store.Create(loc, "desc")
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if indexed {
			if err := index.Add(is.Location.Filepath, is.ID, string(is.Status)); err != nil {
				t.Fatalf("index add: %v", err)
			}
		}
		return is
	}

	calcRef := issue.Reference{Kind: "function_declaration", Name: "calculate"}
	f.healthy = create(issue.Location{Filepath: "src/ok.go", References: []issue.Reference{calcRef}}, true)
	f.missingFile = create(issue.Location{Filepath: "src/gone.go"}, true)
	f.brokenRefs = create(issue.Location{
		Filepath:   "src/renamed.go",
		References: []issue.Reference{{Kind: "function_declaration", Name: "oldname"}},
	}, true)
	f.unindexed = create(issue.Location{Filepath: "src/ok.go", References: []issue.Reference{calcRef}}, false)
	f.fileScoped = create(issue.Location{Filepath: "notes/plain.txt"}, true)

	return f
}

func findingIDs(findings []Finding) []string {
	ids := make([]string, 0, len(findings))
	for _, f := range findings {
		ids = append(ids, f.ID)
	}
	return ids
}

func containsID(findings []Finding, id string) bool {
	for _, f := range findings {
		if f.ID == id {
			return true
		}
	}
	return false
}

func TestScanClassification(t *testing.T) {
	f := buildFixture(t)

	report, err := f.scanner.Scan()
	if err != nil {
		t.Fatalf("scan: %v", err)
	}

	if report.Total != 5 {
		t.Fatalf("expected 5 issues, got %d", report.Total)
	}
	if len(report.MissingFile) != 1 || report.MissingFile[0].ID != f.missingFile.ID {
		t.Fatalf("missing_file mismatch: %v", findingIDs(report.MissingFile))
	}
	if len(report.BrokenRefs) != 1 || report.BrokenRefs[0].ID != f.brokenRefs.ID {
		t.Fatalf("broken_refs mismatch: %v", findingIDs(report.BrokenRefs))
	}
	if len(report.MissingIndex) != 1 || report.MissingIndex[0].ID != f.unindexed.ID {
		t.Fatalf("missing_index mismatch: %v", findingIDs(report.MissingIndex))
	}
	if len(report.Healthy) != 2 {
		t.Fatalf("healthy mismatch: %v", findingIDs(report.Healthy))
	}
	if containsID(report.Healthy, f.missingFile.ID) {
		t.Fatalf("healthy must exclude the missing-file issue")
	}
	// A file with no registered provider cannot be judged and passes.
	if !containsID(report.Healthy, f.fileScoped.ID) {
		t.Fatalf("file-scoped issue on plain file should be healthy")
	}
	if report.Clean() {
		t.Fatalf("report should not be clean")
	}
}

func TestRepairAppliesChosenActions(t *testing.T) {
	f := buildFixture(t)
	report, err := f.scanner.Scan()
	if err != nil {
		t.Fatalf("scan: %v", err)
	}

	// missing_file: option 2 = delete; broken_refs: option 1 = file-scoped.
	prompter := prompt.NewWithStreams(strings.NewReader("2\n1\n"), io.Discard)
	summary, err := f.scanner.Repair(report, prompter, io.Discard)
	if err != nil {
		t.Fatalf("repair: %v", err)
	}

	if summary.Reindexed != 1 || summary.Deleted != 1 || summary.FileScoped != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	// The deleted issue is gone from both store and index.
	if _, err := f.scanner.Store.Read(f.missingFile.ID); err == nil {
		t.Fatalf("deleted issue still readable")
	}
	if entry, ok := f.scanner.Index.Get("src/gone.go"); ok {
		t.Fatalf("deleted issue still indexed: %v", entry)
	}

	// The broken-refs issue is file-scoped now.
	repaired, err := f.scanner.Store.Read(f.brokenRefs.ID)
	if err != nil {
		t.Fatalf("read repaired: %v", err)
	}
	if !repaired.Location.FileScoped() {
		t.Fatalf("expected file-scoped, got %v", repaired.Location.References)
	}

	// A second scan comes back clean.
	second, err := f.scanner.Scan()
	if err != nil {
		t.Fatalf("second scan: %v", err)
	}
	if !second.Clean() {
		t.Fatalf("expected clean report, got missing_file=%v broken_refs=%v missing_index=%v",
			findingIDs(second.MissingFile), findingIDs(second.BrokenRefs), findingIDs(second.MissingIndex))
	}
}

func TestRepairRepoint(t *testing.T) {
	f := buildFixture(t)
	report, err := f.scanner.Scan()
	if err != nil {
		t.Fatalf("scan: %v", err)
	}

	// The missing file reappeared elsewhere; re-point the issue at it.
	writeSource(t, f.scanner.Root, "src/moved.go", okSource)

	// missing_file: option 1 = re-point, then the new path; broken_refs:
	// dismissal skips it.
	prompter := prompt.NewWithStreams(strings.NewReader("1\nsrc/moved.go\nq\n"), io.Discard)
	summary, err := f.scanner.Repair(report, prompter, io.Discard)
	if err != nil {
		t.Fatalf("repair: %v", err)
	}
	if summary.Repointed != 1 || summary.Skipped != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	moved, err := f.scanner.Store.Read(f.missingFile.ID)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if moved.Location.Filepath != "src/moved.go" {
		t.Fatalf("filepath not updated: %s", moved.Location.Filepath)
	}
	if _, ok := f.scanner.Index.Get("src/gone.go"); ok {
		t.Fatalf("old path still indexed")
	}
	if entry, ok := f.scanner.Index.Get("src/moved.go"); !ok || entry[moved.ID] == "" {
		t.Fatalf("new path not indexed: %v", entry)
	}
}

func TestRepairDismissalSkipsEverything(t *testing.T) {
	f := buildFixture(t)
	report, err := f.scanner.Scan()
	if err != nil {
		t.Fatalf("scan: %v", err)
	}

	// A closed prompt stream cancels every decision; only the mechanical
	// missing_index fix applies.
	prompter := prompt.NewWithStreams(strings.NewReader(""), io.Discard)
	summary, err := f.scanner.Repair(report, prompter, io.Discard)
	if err != nil {
		t.Fatalf("repair: %v", err)
	}
	if summary.Reindexed != 1 || summary.Skipped != 2 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if _, err := f.scanner.Store.Read(f.missingFile.ID); err != nil {
		t.Fatalf("skipped issue must survive: %v", err)
	}
}
