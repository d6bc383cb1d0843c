package domain

import (
	"path/filepath"
	"strings"

	m "github.com/growthboot/FlakeMonster/internal/model"
)

// AdapterRegistry routes files to language adapters by extension. Adapters
// are interface values, so their shape is checked at compile time rather than
// validated at registration.
type AdapterRegistry struct {
	byExtension map[string]LanguageAdapter
}

// NewAdapterRegistry builds a registry over the given adapters. A later
// adapter claiming an extension an earlier one already holds wins; in
// practice extensions are disjoint.
func NewAdapterRegistry(adapters ...LanguageAdapter) *AdapterRegistry {
	registry := &AdapterRegistry{byExtension: make(map[string]LanguageAdapter)}

	for _, a := range adapters {
		for _, ext := range a.Extensions() {
			registry.byExtension[strings.ToLower(ext)] = a
		}
	}

	return registry
}

// DefaultAdapterRegistry registers the JavaScript and TypeScript adapters.
func DefaultAdapterRegistry() *AdapterRegistry {
	return NewAdapterRegistry(NewJavaScriptAdapter(), NewTypeScriptAdapter())
}

// ForPath returns the adapter handling the path's extension, or nil when the
// file is not a candidate.
func (r *AdapterRegistry) ForPath(path m.Path) LanguageAdapter {
	return r.byExtension[strings.ToLower(filepath.Ext(string(path)))]
}
