package languages

import (
	"github.com/smacker/go-tree-sitter/ruby"

	"github.com/scopeline-dev/scopeline/internal/scope"
)

// NewRubyProvider creates the syntax tree provider for Ruby source files.
func NewRubyProvider() scope.Provider {
	return newSitterProvider(
		"ruby",
		[]string{".rb"},
		ruby.GetLanguage(),
		[]string{
			"method",
			"singleton_method",
			"class",
			"module",
		},
	)
}
