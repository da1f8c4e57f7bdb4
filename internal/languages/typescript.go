package languages

import (
	"strings"

	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/scopeline-dev/scopeline/internal/scope"
)

var jsExtensions = []string{".js", ".jsx", ".mjs", ".cjs"}

// typeScriptProvider handles TypeScript and JavaScript with one registry
// entry, choosing the grammar by extension.
type typeScriptProvider struct {
	ts *sitterProvider
	js *sitterProvider
}

// NewTypeScriptProvider creates the syntax tree provider for TypeScript and
// JavaScript source files.
func NewTypeScriptProvider() scope.Provider {
	kinds := []string{
		"function_declaration",
		"generator_function_declaration",
		"method_definition",
		"class_declaration",
	}
	return &typeScriptProvider{
		ts: newSitterProvider("typescript", []string{".ts", ".tsx"}, typescript.GetLanguage(), kinds),
		js: newSitterProvider("javascript", jsExtensions, javascript.GetLanguage(), kinds),
	}
}

func (t *typeScriptProvider) Language() string {
	return "typescript"
}

func (t *typeScriptProvider) Extensions() []string {
	return append([]string{".ts", ".tsx"}, jsExtensions...)
}

func (t *typeScriptProvider) Parse(filename string, content []byte) (scope.Tree, error) {
	for _, ext := range jsExtensions {
		if strings.HasSuffix(filename, ext) {
			return t.js.Parse(filename, content)
		}
	}
	return t.ts.Parse(filename, content)
}
