package languages

import "github.com/scopeline-dev/scopeline/internal/scope"

// NewDefaultRegistry creates a registry with all supported language
// providers.
func NewDefaultRegistry() *scope.Registry {
	r := scope.NewRegistry()

	r.Register(NewGoProvider())
	r.Register(NewPythonProvider())
	r.Register(NewRubyProvider())
	r.Register(NewTypeScriptProvider())

	return r
}
