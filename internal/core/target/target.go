package target

import (
	"fmt"
	"sort"
	"strings"
)

// Target describes a concrete compilation target as a set of named string
// attributes (platform, arch, os, family, ...). Selectors evaluate against
// these attributes and nothing else.
type Target struct {
	attrs map[string]string
}

// New creates a target from an attribute map. The map is copied, so the
// target is immutable from the caller's point of view.
func New(attrs map[string]string) Target {
	copied := make(map[string]string, len(attrs))
	for name, value := range attrs {
		copied[name] = value
	}
	return Target{attrs: copied}
}

// Attribute returns the value of a named attribute and whether it is set.
func (t Target) Attribute(name string) (string, bool) {
	value, ok := t.attrs[name]
	return value, ok
}

// Attributes returns a copy of all attributes.
func (t Target) Attributes() map[string]string {
	copied := make(map[string]string, len(t.attrs))
	for name, value := range t.attrs {
		copied[name] = value
	}
	return copied
}

// String renders the target as sorted key=value pairs for stable display.
func (t Target) String() string {
	names := make([]string, 0, len(t.attrs))
	for name := range t.attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%s", name, t.attrs[name]))
	}
	return strings.Join(parts, " ")
}
