package issue

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "issues"))
}

func TestCreateThenRead(t *testing.T) {
	s := testStore(t)

	loc := Location{
		Filepath: "src/app.go",
		References: []Reference{
			{Kind: "function_declaration", Name: "calculate"},
			{Kind: "method_declaration", Name: "Run"},
		},
	}
	created, err := s.Create(loc, "off-by-one in the loop bound")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !ValidID(created.ID) {
		t.Fatalf("unexpected id shape %q", created.ID)
	}

	got, err := s.Read(created.ID)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Status != StatusOpen {
		t.Fatalf("expected open, got %s", got.Status)
	}
	if diff := cmp.Diff(loc, got.Location); diff != "" {
		t.Fatalf("location mismatch (-want +got):\n%s", diff)
	}
	wantBlocks := []Block{{Label: LabelDescription, Text: "off-by-one in the loop bound"}}
	if diff := cmp.Diff(wantBlocks, got.Blocks); diff != "" {
		t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
	}

	// Record lives at <root>/<YYYY>/<MM>/<id>/Issue.md.
	wantPath := filepath.Join(s.Root(), created.ID[:4], created.ID[4:6], created.ID, RecordFile)
	if _, err := os.Stat(wantPath); err != nil {
		t.Fatalf("record not at expected path: %v", err)
	}
}

func TestCreateEmptyDescriptionOmitsBlock(t *testing.T) {
	s := testStore(t)

	created, err := s.Create(Location{Filepath: "src/a.lua"}, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := s.Read(created.ID)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got.Blocks) != 0 {
		t.Fatalf("expected no blocks, got %v", got.Blocks)
	}

	data, err := os.ReadFile(s.RecordPath(created.ID))
	if err != nil {
		t.Fatalf("read record: %v", err)
	}
	if strings.Contains(string(data), LabelDescription) {
		t.Fatalf("empty description must not be written:\n%s", data)
	}
}

func TestSameSecondCreationsAdvanceID(t *testing.T) {
	s := testStore(t)
	fixed := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	first, err := s.Create(Location{Filepath: "a.go"}, "")
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	second, err := s.Create(Location{Filepath: "a.go"}, "")
	if err != nil {
		t.Fatalf("second create: %v", err)
	}

	if first.ID != "20260314_092653" {
		t.Fatalf("unexpected first id %q", first.ID)
	}
	if second.ID != "20260314_092654" {
		t.Fatalf("expected advanced id, got %q", second.ID)
	}
	if !(first.ID < second.ID) {
		t.Fatalf("ids must stay sortable: %q vs %q", first.ID, second.ID)
	}
}

func TestResolveThenReopenKeepsResolution(t *testing.T) {
	s := testStore(t)
	created, err := s.Create(Location{Filepath: "src/a.go"}, "desc")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	resolved, err := s.Resolve(created.ID, "fixed in the follow-up commit")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.Status != StatusClosed {
		t.Fatalf("expected closed, got %s", resolved.Status)
	}

	reopened, err := s.Reopen(created.ID)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.Status != StatusOpen {
		t.Fatalf("expected open, got %s", reopened.Status)
	}
	text, ok := reopened.Block(LabelResolution)
	if !ok || text != "fixed in the follow-up commit" {
		t.Fatalf("resolution block lost on reopen: %q (present=%t)", text, ok)
	}
}

func TestAddRemoveReferenceRoundTrip(t *testing.T) {
	s := testStore(t)
	original := []Reference{{Kind: "function_declaration", Name: "calculate"}}
	created, err := s.Create(Location{Filepath: "src/a.go", References: original}, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	extra := Reference{Kind: "class_definition", Name: "Widget"}
	if _, err := s.AddReference(created.ID, extra); err != nil {
		t.Fatalf("add reference: %v", err)
	}
	// Idempotent: adding again changes nothing.
	withExtra, err := s.AddReference(created.ID, extra)
	if err != nil {
		t.Fatalf("add reference twice: %v", err)
	}
	if len(withExtra.Location.References) != 2 {
		t.Fatalf("expected 2 references, got %v", withExtra.Location.References)
	}

	restored, err := s.RemoveReference(created.ID, extra)
	if err != nil {
		t.Fatalf("remove reference: %v", err)
	}
	if diff := cmp.Diff(original, restored.Location.References); diff != "" {
		t.Fatalf("chain not restored (-want +got):\n%s", diff)
	}
}

func TestRemoveLastReferenceMakesFileScoped(t *testing.T) {
	s := testStore(t)
	ref := Reference{Kind: "function_declaration", Name: "calculate"}
	created, err := s.Create(Location{Filepath: "src/a.go", References: []Reference{ref}}, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := s.RemoveReference(created.ID, ref)
	if err != nil {
		t.Fatalf("remove reference: %v", err)
	}
	if !got.Location.FileScoped() {
		t.Fatalf("expected file-scoped location, got %v", got.Location.References)
	}
}

func TestWriteRejectsReservedLabels(t *testing.T) {
	s := testStore(t)
	created, err := s.Create(Location{Filepath: "a.go"}, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	created.Blocks = append(created.Blocks, Block{Label: LabelLocation, Text: "nope"})
	if err := s.Write(created); !errors.Is(err, ErrReservedLabel) {
		t.Fatalf("expected ErrReservedLabel, got %v", err)
	}
}

func TestDeleteRemovesDirectory(t *testing.T) {
	s := testStore(t)
	created, err := s.Create(Location{Filepath: "a.go"}, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := s.Delete(created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(s.Dir(created.ID)); !os.IsNotExist(err) {
		t.Fatalf("issue directory still present")
	}
	if err := s.Delete(created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestDeleteKeepsUserFiles(t *testing.T) {
	s := testStore(t)
	created, err := s.Create(Location{Filepath: "a.go"}, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	userFile := filepath.Join(s.Dir(created.ID), "notes.txt")
	if err := os.WriteFile(userFile, []byte("keep me"), 0644); err != nil {
		t.Fatalf("write user file: %v", err)
	}

	err = s.Delete(created.ID)
	if !errors.Is(err, ErrLeftoverFiles) {
		t.Fatalf("expected ErrLeftoverFiles, got %v", err)
	}
	if _, statErr := os.Stat(userFile); statErr != nil {
		t.Fatalf("user file destroyed: %v", statErr)
	}
	// The record itself is gone.
	if s.Exists(created.ID) {
		t.Fatalf("record should be removed")
	}
}

func TestIDsWalksStoreTree(t *testing.T) {
	s := testStore(t)
	fixed := time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	// Second create rolls over into the next year directory.
	first, _ := s.Create(Location{Filepath: "a.go"}, "")
	second, _ := s.Create(Location{Filepath: "b.go"}, "")

	ids, err := s.IDs()
	if err != nil {
		t.Fatalf("ids: %v", err)
	}
	want := []string{first.ID, second.ID}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
	if second.ID != "20260101_000000" {
		t.Fatalf("expected year rollover, got %q", second.ID)
	}
}

func TestReadUnknownID(t *testing.T) {
	s := testStore(t)
	if _, err := s.Read("20240101_000000"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.Read("not-an-id"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for malformed id, got %v", err)
	}
}
