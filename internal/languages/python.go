package languages

import (
	"github.com/smacker/go-tree-sitter/python"

	"github.com/scopeline-dev/scopeline/internal/scope"
)

// NewPythonProvider creates the syntax tree provider for Python source
// files. Methods nest inside their class scope, so a cursor in a method
// yields a two-element chain, innermost first.
func NewPythonProvider() scope.Provider {
	return newSitterProvider(
		"python",
		[]string{".py"},
		python.GetLanguage(),
		[]string{
			"function_definition",
			"class_definition",
		},
	)
}
