package target

import (
	"fmt"
	"strings"
)

// Selector is a pure predicate over a target's attributes. Matching is total:
// every validated selector evaluates on every target without error. Selectors
// are a closed set of tagged variants, never free text.
type Selector interface {
	// Matches reports whether the selector applies to the target.
	Matches(t Target) bool

	// Validate checks that every attribute the selector references is
	// registered. Called once at load time.
	Validate(registry *Registry) error

	// String renders the selector in cfg() expression form.
	String() string
}

// Universal matches every target unconditionally. It backs the default
// (unconditioned) configuration block.
type Universal struct{}

func (Universal) Matches(Target) bool      { return true }
func (Universal) Validate(*Registry) error { return nil }
func (Universal) String() string           { return "cfg(all())" }

// AttributeEquals matches targets whose named attribute equals a value.
// A target without the attribute does not match.
type AttributeEquals struct {
	Name  string
	Value string
}

func (s AttributeEquals) Matches(t Target) bool {
	value, ok := t.Attribute(s.Name)
	return ok && value == s.Value
}

func (s AttributeEquals) Validate(registry *Registry) error {
	if !registry.Knows(s.Name) {
		return &UnknownAttributeError{Attribute: s.Name}
	}
	return nil
}

func (s AttributeEquals) String() string {
	return fmt.Sprintf("cfg(%s = %q)", s.Name, s.Value)
}

// Not inverts its inner selector.
type Not struct {
	Inner Selector
}

func (s Not) Matches(t Target) bool { return !s.Inner.Matches(t) }

func (s Not) Validate(registry *Registry) error { return s.Inner.Validate(registry) }

func (s Not) String() string {
	return fmt.Sprintf("cfg(not(%s))", innerExpr(s.Inner))
}

// AllOf matches when every member matches. An empty AllOf is the universal
// selector, matching the cfg(all()) convention.
type AllOf struct {
	Selectors []Selector
}

func (s AllOf) Matches(t Target) bool {
	for _, member := range s.Selectors {
		if !member.Matches(t) {
			return false
		}
	}
	return true
}

func (s AllOf) Validate(registry *Registry) error {
	for _, member := range s.Selectors {
		if err := member.Validate(registry); err != nil {
			return err
		}
	}
	return nil
}

func (s AllOf) String() string {
	return fmt.Sprintf("cfg(all(%s))", joinExprs(s.Selectors))
}

// AnyOf matches when at least one member matches. An empty AnyOf matches
// nothing.
type AnyOf struct {
	Selectors []Selector
}

func (s AnyOf) Matches(t Target) bool {
	for _, member := range s.Selectors {
		if member.Matches(t) {
			return true
		}
	}
	return false
}

func (s AnyOf) Validate(registry *Registry) error {
	for _, member := range s.Selectors {
		if err := member.Validate(registry); err != nil {
			return err
		}
	}
	return nil
}

func (s AnyOf) String() string {
	return fmt.Sprintf("cfg(any(%s))", joinExprs(s.Selectors))
}

// innerExpr strips the cfg() wrapper when nesting selectors in a composite.
func innerExpr(s Selector) string {
	text := s.String()
	text = strings.TrimPrefix(text, "cfg(")
	text = strings.TrimSuffix(text, ")")
	return text
}

func joinExprs(selectors []Selector) string {
	parts := make([]string, 0, len(selectors))
	for _, s := range selectors {
		parts = append(parts, innerExpr(s))
	}
	return strings.Join(parts, ", ")
}
