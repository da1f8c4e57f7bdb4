package scope

import (
	"os"
	"path/filepath"
	"strings"
)

// Registry holds all registered language providers.
type Registry struct {
	providers map[string]Provider // language name -> provider
	extToLang map[string]string   // extension -> language name
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]Provider),
		extToLang: make(map[string]string),
	}
}

// Register adds a language provider to the registry.
func (r *Registry) Register(p Provider) {
	lang := p.Language()
	r.providers[lang] = p
	for _, ext := range p.Extensions() {
		r.extToLang[ext] = lang
	}
}

// ProviderForFile returns the provider handling filename's extension.
func (r *Registry) ProviderForFile(filename string) (Provider, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	lang, ok := r.extToLang[ext]
	if !ok {
		return nil, false
	}
	provider, ok := r.providers[lang]
	return provider, ok
}

// ParseFile reads and parses path. The second return is false when no
// registered provider handles the file type.
func (r *Registry) ParseFile(path string) (Tree, bool, error) {
	provider, ok := r.ProviderForFile(path)
	if !ok {
		return nil, false, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, true, err
	}

	tree, err := provider.Parse(path, content)
	if err != nil {
		return nil, true, err
	}
	return tree, true, nil
}
