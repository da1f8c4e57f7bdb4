package issue

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/scopeline-dev/scopeline/internal/fileutil"
)

// Store owns issue lifetime: one directory per issue under the configured
// issue root, nested by year and month derived from the ID. The store knows
// nothing about the path index; callers keep the two in step (record before
// index on create, index before record on delete).
type Store struct {
	root string
	now  func() time.Time
}

// NewStore creates a store rooted at dir. The directory is created lazily on
// first write.
func NewStore(dir string) *Store {
	return &Store{root: dir, now: time.Now}
}

// Root returns the issue directory root.
func (s *Store) Root() string {
	return s.root
}

// Dir returns the directory for id: <root>/<YYYY>/<MM>/<id>.
func (s *Store) Dir(id string) string {
	return filepath.Join(s.root, idYear(id), idMonth(id), id)
}

// RecordPath returns the Issue.md path for id.
func (s *Store) RecordPath(id string) string {
	return filepath.Join(s.Dir(id), RecordFile)
}

// Exists reports whether an issue record exists for id.
func (s *Store) Exists(id string) bool {
	if !ValidID(id) {
		return false
	}
	_, err := os.Stat(s.RecordPath(id))
	return err == nil
}

// allocateID derives an ID from the current time. When two issues are
// created within the same second, the timestamp is advanced by whole seconds
// until the derived directory is free, keeping the ID shape and sort order.
func (s *Store) allocateID() (string, error) {
	const maxProbes = 120

	t := s.now()
	for i := 0; i < maxProbes; i++ {
		id := NewID(t)
		if _, err := os.Stat(s.Dir(id)); os.IsNotExist(err) {
			return id, nil
		}
		t = t.Add(time.Second)
	}
	return "", ErrIDExhausted
}

// Create allocates an ID and writes a new open issue record immediately.
// An empty description omits the description block entirely. The caller is
// responsible for adding the issue to the path index afterward.
func (s *Store) Create(loc Location, description string) (*Issue, error) {
	id, err := s.allocateID()
	if err != nil {
		return nil, err
	}

	loc.Filepath = fileutil.NormalizePath(loc.Filepath)
	is := &Issue{
		ID:       id,
		Status:   StatusOpen,
		Location: loc,
		Schema:   CurrentSchema,
	}
	if description != "" {
		is.Blocks = []Block{{Label: LabelDescription, Text: description}}
	}

	if err := s.Write(is); err != nil {
		return nil, err
	}
	return is, nil
}

// Read loads and decodes the record for id.
func (s *Store) Read(id string) (*Issue, error) {
	if !ValidID(id) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	data, err := os.ReadFile(s.RecordPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("reading issue %s: %w", id, err)
	}

	is, err := DecodeRecord(string(data))
	if err != nil {
		return nil, fmt.Errorf("issue %s: %w", id, err)
	}
	is.ID = id
	return is, nil
}

// Write serializes the full record in memory and overwrites it atomically,
// stamping the current schema version.
func (s *Store) Write(is *Issue) error {
	if !ValidID(is.ID) {
		return fmt.Errorf("%w: %s", ErrNotFound, is.ID)
	}
	for _, block := range is.Blocks {
		if ReservedLabel(block.Label) {
			return fmt.Errorf("%w: %q", ErrReservedLabel, block.Label)
		}
	}

	is.Schema = CurrentSchema
	content := EncodeRecord(is)
	if err := fileutil.WriteFileAtomic(s.RecordPath(is.ID), []byte(content)); err != nil {
		return fmt.Errorf("writing issue %s: %w", is.ID, err)
	}
	return nil
}

// Resolve closes the issue and sets the resolution block, overwriting any
// previous resolution.
func (s *Store) Resolve(id, resolution string) (*Issue, error) {
	is, err := s.Read(id)
	if err != nil {
		return nil, err
	}
	is.Status = StatusClosed
	is.SetBlock(LabelResolution, resolution)
	if err := s.Write(is); err != nil {
		return nil, err
	}
	return is, nil
}

// Reopen sets the issue back to open. The resolution block is kept as
// history.
func (s *Store) Reopen(id string) (*Issue, error) {
	is, err := s.Read(id)
	if err != nil {
		return nil, err
	}
	is.Status = StatusOpen
	if err := s.Write(is); err != nil {
		return nil, err
	}
	return is, nil
}

// AddReference appends ref to the location chain if absent. A file-scoped
// issue gaining its first reference becomes scope-scoped.
func (s *Store) AddReference(id string, ref Reference) (*Issue, error) {
	is, err := s.Read(id)
	if err != nil {
		return nil, err
	}
	if is.Location.HasReference(ref) {
		return is, nil
	}
	is.Location.References = append(is.Location.References, ref)
	if err := s.Write(is); err != nil {
		return nil, err
	}
	return is, nil
}

// RemoveReference removes ref from the location chain if present. An issue
// whose chain empties is file-scoped again.
func (s *Store) RemoveReference(id string, ref Reference) (*Issue, error) {
	is, err := s.Read(id)
	if err != nil {
		return nil, err
	}
	kept := is.Location.References[:0]
	for _, existing := range is.Location.References {
		if existing != ref {
			kept = append(kept, existing)
		}
	}
	if len(kept) == 0 {
		kept = nil
	}
	is.Location.References = kept
	if err := s.Write(is); err != nil {
		return nil, err
	}
	return is, nil
}

// Delete removes the issue record and its directory. Files the store does
// not own are never destroyed: when the directory is still non-empty after
// record removal it is left in place and ErrLeftoverFiles is returned.
func (s *Store) Delete(id string) error {
	if !s.Exists(id) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	dir := s.Dir(id)
	if err := os.Remove(s.RecordPath(id)); err != nil {
		return fmt.Errorf("deleting issue %s: %w", id, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("deleting issue %s: %w", id, err)
	}
	if len(entries) > 0 {
		return fmt.Errorf("%w: %s", ErrLeftoverFiles, dir)
	}
	if err := os.Remove(dir); err != nil {
		return fmt.Errorf("deleting issue %s: %w", id, err)
	}
	fileutil.PruneEmptyDirs(filepath.Dir(dir), s.root)
	return nil
}

// IDs returns every issue ID known to the store, sorted ascending, by
// walking the year/month directory tree. The path index plays no part here;
// this walk is what makes the store authoritative.
func (s *Store) IDs() ([]string, error) {
	var ids []string

	years, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning issue directory: %w", err)
	}

	for _, year := range years {
		if !year.IsDir() {
			continue
		}
		months, err := os.ReadDir(filepath.Join(s.root, year.Name()))
		if err != nil {
			return nil, fmt.Errorf("scanning issue directory: %w", err)
		}
		for _, month := range months {
			if !month.IsDir() {
				continue
			}
			leaves, err := os.ReadDir(filepath.Join(s.root, year.Name(), month.Name()))
			if err != nil {
				return nil, fmt.Errorf("scanning issue directory: %w", err)
			}
			for _, leaf := range leaves {
				if leaf.IsDir() && ValidID(leaf.Name()) {
					ids = append(ids, leaf.Name())
				}
			}
		}
	}

	sort.Strings(ids)
	return ids, nil
}
