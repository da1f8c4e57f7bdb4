package languages

import (
	"github.com/smacker/go-tree-sitter/golang"

	"github.com/scopeline-dev/scopeline/internal/scope"
)

// NewGoProvider creates the syntax tree provider for Go source files.
// Named scopes are functions, methods, and declared types (type_spec covers
// structs and interfaces; a method and a function sharing a name stay
// distinct references through their kind).
func NewGoProvider() scope.Provider {
	return newSitterProvider(
		"go",
		[]string{".go"},
		golang.GetLanguage(),
		[]string{
			"function_declaration",
			"method_declaration",
			"type_spec",
		},
	)
}
