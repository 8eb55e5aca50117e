package asset

import (
	"net/url"
	"strings"
	"sync"
)

// Factory builds an empty Resource for an asset at the given URL.
type Factory func(u *url.URL) Resource

// Registry maps mime types to Resource factories. Lookups are
// case-insensitive; types with no entry use the fallback factory.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	fallback  Factory
}

// DefaultRegistry is the process-wide registry. Concrete resource packages
// register themselves here from their init functions, so importing a
// resource package is what makes its mime types resolvable.
var DefaultRegistry = NewRegistry()

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory for a mime type, replacing any previous one.
func (r *Registry) Register(mimeType string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[strings.ToLower(mimeType)] = f
}

// RegisterFallback sets the factory used when a mime type has no entry.
func (r *Registry) RegisterFallback(f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = f
}

// New builds a Resource for the given mime type, falling back when the type
// is unknown or empty. Returns nil when no fallback is registered either.
func (r *Registry) New(mimeType string, u *url.URL) Resource {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if f, ok := r.factories[strings.ToLower(mimeType)]; ok {
		return f(u)
	}
	if r.fallback != nil {
		return r.fallback(u)
	}
	return nil
}
