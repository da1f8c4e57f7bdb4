// Package pathindex maintains the reverse lookup from source file path to
// the issue IDs referencing it. Entries are persisted as INI shard files
// keyed by a truncated hash of the path, with an in-memory cache that can be
// rebuilt from disk at any time. The index is derived and disposable; the
// issue store stays authoritative.
package pathindex

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/scopeline-dev/scopeline/internal/codec"
	"github.com/scopeline-dev/scopeline/internal/fileutil"
)

// DefaultKeyLength is the shard key length used when none is configured.
// Truncating the path hash makes collisions possible; colliding paths share
// one shard file as separate sections, which is a normal operating
// condition, not an error.
const DefaultKeyLength = 16

// IndexDirName is the shard directory name under the issue root.
const IndexDirName = ".index"

// Entry maps issue ID to its status string. The status here is a display
// cache copied from the issue store and may be briefly stale; it is never
// the truth source for status-changing operations.
type Entry map[string]string

// Index is an explicit cache object; construct one per context at startup
// and pass it by reference. FullScan is its (re)initialization.
type Index struct {
	dir    string
	keyLen int
	cache  map[string]Entry // filepath -> entry
}

// New creates an index storing shards under <issueDir>/.index. keyLen below
// one falls back to DefaultKeyLength; the configuration layer enforces the
// production minimum, the index itself accepts short keys so collision
// handling stays exercisable.
func New(issueDir string, keyLen int) *Index {
	if keyLen < 1 {
		keyLen = DefaultKeyLength
	}
	return &Index{
		dir:    filepath.Join(issueDir, IndexDirName),
		keyLen: keyLen,
		cache:  make(map[string]Entry),
	}
}

// Key returns the shard key for path: the truncated hex sha256 of the
// normalized path.
func (ix *Index) Key(path string) string {
	sum := sha256.Sum256([]byte(fileutil.NormalizePath(path)))
	key := hex.EncodeToString(sum[:])
	if len(key) > ix.keyLen {
		key = key[:ix.keyLen]
	}
	return key
}

// Get returns a copy of the cached entry for path, or nil and false when the
// path has no issues. Populate the cache with FullScan (or incremental
// mutations) before first use.
func (ix *Index) Get(path string) (Entry, bool) {
	entry, ok := ix.cache[fileutil.NormalizePath(path)]
	if !ok {
		return nil, false
	}
	return copyEntry(entry), true
}

// AllEntries flattens the cache into one filepath-to-entry map. The result
// is a fresh copy; mutating it cannot corrupt the cache.
func (ix *Index) AllEntries() map[string]Entry {
	out := make(map[string]Entry, len(ix.cache))
	for path, entry := range ix.cache {
		out[path] = copyEntry(entry)
	}
	return out
}

// FullScan rebuilds the entire cache from the shard files on disk. It is
// safe to call at any time and is the recovery path after index corruption.
func (ix *Index) FullScan() error {
	cache := make(map[string]Entry)

	entries, err := os.ReadDir(ix.dir)
	if err != nil {
		if os.IsNotExist(err) {
			ix.cache = cache
			return nil
		}
		return fmt.Errorf("scanning index: %w", err)
	}

	for _, dirent := range entries {
		if dirent.IsDir() {
			continue
		}
		sections, err := ix.loadShardFile(filepath.Join(ix.dir, dirent.Name()))
		if err != nil {
			return err
		}
		for path, section := range sections {
			cache[path] = entryFromSection(section)
		}
	}

	ix.cache = cache
	return nil
}

// Add records issue id with status under path, creating the shard on first
// use and preserving any collided sections already stored there.
func (ix *Index) Add(path, id, status string) error {
	return ix.mutate(path, func(entry Entry) Entry {
		entry[id] = status
		return entry
	})
}

// Remove drops issue id from path's entry. An entry that empties is removed,
// and a shard whose last entry empties is deleted from disk.
func (ix *Index) Remove(path, id string) error {
	return ix.mutate(path, func(entry Entry) Entry {
		delete(entry, id)
		return entry
	})
}

// UpdateStatus refreshes the cached status for issue id under path. Unknown
// IDs are added; the index never decides status on its own.
func (ix *Index) UpdateStatus(path, id, status string) error {
	return ix.Add(path, id, status)
}

// mutate rewrites the shard holding path. The shard is re-read from disk
// immediately before the rewrite so a mutation completed while an operation
// was suspended at a prompt is not clobbered by stale state.
func (ix *Index) mutate(path string, apply func(Entry) Entry) error {
	path = fileutil.NormalizePath(path)
	shardPath := filepath.Join(ix.dir, ix.Key(path))

	sections, err := ix.loadShardFile(shardPath)
	if err != nil {
		return err
	}

	entry := entryFromSection(sections[path])
	entry = apply(entry)

	if len(entry) == 0 {
		delete(sections, path)
		delete(ix.cache, path)
	} else {
		sections[path] = sectionFromEntry(entry)
		ix.cache[path] = copyEntry(entry)
	}

	// Refresh collided neighbors while the shard is in hand.
	for neighbor, section := range sections {
		if neighbor != path {
			ix.cache[neighbor] = entryFromSection(section)
		}
	}

	if len(sections) == 0 {
		if err := os.Remove(shardPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing index shard: %w", err)
		}
		return nil
	}

	content := codec.Serialize(sections, nil)
	if err := fileutil.WriteFileAtomic(shardPath, []byte(content)); err != nil {
		return fmt.Errorf("writing index shard: %w", err)
	}
	return nil
}

// loadShardFile parses one shard into sections keyed by filepath. A missing
// file is an empty shard.
func (ix *Index) loadShardFile(path string) (codec.Sections, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return codec.Sections{}, nil
		}
		return nil, fmt.Errorf("reading index shard: %w", err)
	}
	return codec.Parse(string(data)), nil
}

func entryFromSection(section codec.Section) Entry {
	entry := make(Entry, len(section))
	for id, status := range section {
		value, ok := status.(string)
		if !ok {
			continue
		}
		entry[id] = value
	}
	return entry
}

func sectionFromEntry(entry Entry) codec.Section {
	section := make(codec.Section, len(entry))
	for id, status := range entry {
		section[id] = status
	}
	return section
}

func copyEntry(entry Entry) Entry {
	out := make(Entry, len(entry))
	for id, status := range entry {
		out[id] = status
	}
	return out
}
