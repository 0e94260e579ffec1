package layer

import (
	"strings"

	"buildcfg.dev/cli/internal/core/target"
)

// MergeMode controls how a layer's flag entries combine with lower-precedence
// layers during resolution.
type MergeMode int

const (
	// Append concatenates the layer's flag entries after lower layers.
	Append MergeMode = iota

	// Replace discards all lower-precedence flag entries when the layer
	// contributes at least one matched, non-empty entry. Lint suppressions
	// always union regardless of mode.
	Replace
)

func (m MergeMode) String() string {
	switch m {
	case Append:
		return "append"
	case Replace:
		return "replace"
	default:
		return "unknown"
	}
}

// FlagEntry is an ordered list of compiler argument tokens. Order within an
// entry is preserved end to end; flags may be position-sensitive.
type FlagEntry []string

// Clone returns an independent copy of the entry.
func (e FlagEntry) Clone() FlagEntry {
	if e == nil {
		return nil
	}
	copied := make(FlagEntry, len(e))
	copy(copied, e)
	return copied
}

func (e FlagEntry) String() string {
	return strings.Join(e, " ")
}

// Suppression names a lint identifier to silence, with an optional
// human-readable rationale.
type Suppression struct {
	ID     string
	Reason string
}

// Origin identifies where a layer's contents came from, for provenance
// reporting.
type Origin struct {
	// Source is the origin kind: "default", "file", or "env".
	Source string

	// SourcePath is the specific config file path or environment variable
	// name, when applicable.
	SourcePath string
}

func (o Origin) String() string {
	if o.SourcePath == "" {
		return o.Source
	}
	return o.Source + ":" + o.SourcePath
}

// Rule pairs a selector with the flag tokens it contributes when matched.
type Rule struct {
	Selector target.Selector
	Flags    FlagEntry
}

// Layer is one origin's configuration contribution: an ordered list of
// selector-conditioned flag entries plus a lint suppression set. Layers are
// immutable once constructed; the stack only orders references to them.
type Layer struct {
	origin       Origin
	mode         MergeMode
	rules        []Rule
	suppressions []Suppression
}

// New constructs a layer. Rule and suppression slices are copied so later
// mutation by the caller cannot reach the layer.
func New(origin Origin, mode MergeMode, rules []Rule, suppressions []Suppression) *Layer {
	copiedRules := make([]Rule, len(rules))
	for i, rule := range rules {
		copiedRules[i] = Rule{Selector: rule.Selector, Flags: rule.Flags.Clone()}
	}
	copiedSuppressions := make([]Suppression, len(suppressions))
	copy(copiedSuppressions, suppressions)

	return &Layer{
		origin:       origin,
		mode:         mode,
		rules:        copiedRules,
		suppressions: copiedSuppressions,
	}
}

// Origin returns the layer's origin metadata.
func (l *Layer) Origin() Origin { return l.origin }

// Mode returns the layer's merge mode.
func (l *Layer) Mode() MergeMode { return l.mode }

// Rules returns a copy of the layer's ordered rules.
func (l *Layer) Rules() []Rule {
	copied := make([]Rule, len(l.rules))
	copy(copied, l.rules)
	return copied
}

// Suppressions returns a copy of the layer's suppression set.
func (l *Layer) Suppressions() []Suppression {
	copied := make([]Suppression, len(l.suppressions))
	copy(copied, l.suppressions)
	return copied
}

// Empty reports whether the layer carries no flag tokens and no suppressions.
func (l *Layer) Empty() bool {
	for _, rule := range l.rules {
		if len(rule.Flags) > 0 {
			return false
		}
	}
	return len(l.suppressions) == 0
}

// Validate checks every selector in the layer against the attribute registry.
func (l *Layer) Validate(registry *target.Registry) error {
	for _, rule := range l.rules {
		if err := rule.Selector.Validate(registry); err != nil {
			return err
		}
	}
	return nil
}
