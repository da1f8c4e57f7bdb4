// Package issue implements the canonical issue record: its in-memory model,
// the Issue.md on-disk format, and the store that owns issue lifetime.
package issue

import (
	"fmt"
	"strings"
)

// Status is the issue lifecycle state.
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// Reserved block labels. These are represented as top-level record sections
// and may not appear as body blocks.
const (
	LabelVersion  = "Version"
	LabelStatus   = "Status"
	LabelLocation = "Location"
)

// Well-known body block labels.
const (
	LabelDescription = "Issue Description"
	LabelResolution  = "Issue Resolution"
)

// ReservedLabel reports whether label is reserved for top-level sections.
func ReservedLabel(label string) bool {
	return label == LabelVersion || label == LabelStatus || label == LabelLocation
}

// Reference identifies a named code scope independent of its position:
// a syntax scope kind paired with the symbol name declared there. Equality
// is exact on both fields.
type Reference struct {
	Kind string
	Name string
}

func (r Reference) String() string {
	return r.Kind + "|" + r.Name
}

// ParseReference parses the "scope_kind|symbol_name" wire form.
func ParseReference(s string) (Reference, error) {
	kind, name, ok := strings.Cut(s, "|")
	if !ok || kind == "" || name == "" {
		return Reference{}, fmt.Errorf("%w: malformed scope reference %q", ErrInvalidFormat, s)
	}
	return Reference{Kind: kind, Name: name}, nil
}

// Location binds an issue to source code: a project-relative forward-slash
// filepath plus an ordered reference chain, innermost scope first. An empty
// chain means the issue is file-scoped.
type Location struct {
	Filepath   string
	References []Reference
}

// FileScoped reports whether the location has no scope references.
func (l Location) FileScoped() bool {
	return len(l.References) == 0
}

// HasReference reports whether ref is present in the chain.
func (l Location) HasReference(ref Reference) bool {
	for _, existing := range l.References {
		if existing == ref {
			return true
		}
	}
	return false
}

// Block is one Markdown body section: a human-chosen label and free text.
type Block struct {
	Label string
	Text  string
}

// Issue is the canonical tracked unit. ID doubles as the sort key and the
// leaf directory name, and is immutable after creation.
type Issue struct {
	ID       string
	Status   Status
	Location Location
	Blocks   []Block
	Schema   int
}

// Block returns the text of the block with the given label.
func (i *Issue) Block(label string) (string, bool) {
	for _, b := range i.Blocks {
		if b.Label == label {
			return b.Text, true
		}
	}
	return "", false
}

// SetBlock overwrites the block with the given label, appending it when
// absent. Block order is otherwise preserved.
func (i *Issue) SetBlock(label, text string) {
	for idx := range i.Blocks {
		if i.Blocks[idx].Label == label {
			i.Blocks[idx].Text = text
			return
		}
	}
	i.Blocks = append(i.Blocks, Block{Label: label, Text: text})
}

// Description returns the "Issue Description" block text, empty when absent.
func (i *Issue) Description() string {
	text, _ := i.Block(LabelDescription)
	return text
}
