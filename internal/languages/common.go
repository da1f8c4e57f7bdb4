// Package languages implements the syntax tree providers behind the scope
// resolver, one tree-sitter grammar per supported language.
package languages

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/scopeline-dev/scopeline/internal/scope"
)

// sitterProvider implements scope.Provider over a single tree-sitter
// grammar. A node counts as a named scope when its type is in scopeKinds and
// it carries a "name" field.
type sitterProvider struct {
	lang       string
	exts       []string
	parser     *sitter.Parser
	scopeKinds map[string]bool
}

func newSitterProvider(lang string, exts []string, grammar *sitter.Language, scopeKinds []string) *sitterProvider {
	p := sitter.NewParser()
	p.SetLanguage(grammar)

	kinds := make(map[string]bool, len(scopeKinds))
	for _, kind := range scopeKinds {
		kinds[kind] = true
	}

	return &sitterProvider{
		lang:       lang,
		exts:       exts,
		parser:     p,
		scopeKinds: kinds,
	}
}

func (p *sitterProvider) Language() string {
	return p.lang
}

func (p *sitterProvider) Extensions() []string {
	return p.exts
}

func (p *sitterProvider) Parse(filename string, content []byte) (scope.Tree, error) {
	tree, err := p.parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return nil, err
	}
	return &sitterTree{tree: tree, src: content, scopeKinds: p.scopeKinds}, nil
}

// sitterTree adapts a parsed tree-sitter tree to scope.Tree.
type sitterTree struct {
	tree       *sitter.Tree
	src        []byte
	scopeKinds map[string]bool
}

func (t *sitterTree) ScopesAt(pos scope.Position) []scope.Scope {
	point := sitter.Point{Row: pos.Row, Column: pos.Column}
	node := t.tree.RootNode().NamedDescendantForPointRange(point, point)

	var out []scope.Scope
	for n := node; n != nil; n = n.Parent() {
		if sc, ok := t.scopeOf(n); ok {
			out = append(out, sc)
		}
	}
	return out
}

func (t *sitterTree) FindScopes(kind, name string) []scope.Scope {
	var out []scope.Scope
	t.collectScopes(t.tree.RootNode(), kind, name, &out)
	return out
}

func (t *sitterTree) Close() {
	t.tree.Close()
}

func (t *sitterTree) collectScopes(node *sitter.Node, kind, name string, out *[]scope.Scope) {
	if node == nil {
		return
	}
	if node.Type() == kind {
		if sc, ok := t.scopeOf(node); ok && sc.Name == name {
			*out = append(*out, sc)
		}
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		t.collectScopes(node.Child(i), kind, name, out)
	}
}

func (t *sitterTree) scopeOf(n *sitter.Node) (scope.Scope, bool) {
	if !t.scopeKinds[n.Type()] {
		return scope.Scope{}, false
	}
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return scope.Scope{}, false
	}
	start := n.StartPoint()
	return scope.Scope{
		Kind: n.Type(),
		Name: nameNode.Content(t.src),
		Start: scope.Position{
			Row:    start.Row,
			Column: start.Column,
		},
	}, true
}
