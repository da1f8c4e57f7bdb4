// Package scope translates between cursor positions and scope reference
// chains. It is polymorphic over whatever grammar is active: all syntax
// knowledge lives behind the Tree and Provider interfaces implemented in the
// languages package.
package scope

// Position is a zero-based row/column cursor position.
type Position struct {
	Row    uint32
	Column uint32
}

// Scope is a live named scope in a parsed tree: its node kind, the symbol
// name declared there, and its current start position.
type Scope struct {
	Kind  string
	Name  string
	Start Position
}

// Tree is a parsed syntax tree able to answer the two queries the resolver
// needs. Close releases the underlying parse.
type Tree interface {
	// ScopesAt returns the named scopes enclosing pos, innermost first.
	// An empty slice means pos is file-scoped.
	ScopesAt(pos Position) []Scope

	// FindScopes returns every scope of the given kind whose symbol name
	// matches exactly, in document order.
	FindScopes(kind, name string) []Scope

	Close()
}

// Provider parses source buffers for one language.
type Provider interface {
	// Language returns the language name (e.g., "go", "python").
	Language() string

	// Extensions returns file extensions this provider handles.
	Extensions() []string

	// Parse builds a queryable tree from source content.
	Parse(filename string, content []byte) (Tree, error)
}
