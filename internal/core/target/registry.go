package target

import (
	"fmt"
	"sort"
)

// UnknownAttributeError reports a selector that references a target attribute
// the matcher does not recognize. It is raised at load time, never during
// matching.
type UnknownAttributeError struct {
	Attribute string
}

func (e *UnknownAttributeError) Error() string {
	return fmt.Sprintf("selector references unknown target attribute %q", e.Attribute)
}

// Registry tracks the attribute names selectors are allowed to reference.
// Selectors mentioning unregistered attributes are rejected when layers are
// loaded, so matching itself stays total.
type Registry struct {
	known map[string]bool
}

// NewRegistry creates a registry with the given attribute names.
func NewRegistry(names ...string) *Registry {
	registry := &Registry{known: make(map[string]bool, len(names))}
	for _, name := range names {
		registry.known[name] = true
	}
	return registry
}

// DefaultRegistry returns the registry with the standard target attributes.
func DefaultRegistry() *Registry {
	return NewRegistry("platform", "arch", "os", "family")
}

// Register adds an attribute name to the registry.
func (r *Registry) Register(name string) {
	r.known[name] = true
}

// Knows reports whether an attribute name is registered.
func (r *Registry) Knows(name string) bool {
	return r.known[name]
}

// Names returns the registered attribute names, sorted for stable display.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.known))
	for name := range r.known {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
