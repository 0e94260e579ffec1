package resolve

import (
	"buildcfg.dev/cli/internal/core/layer"
	"buildcfg.dev/cli/internal/core/target"
)

// Provenance records which layer supplied a resolved item.
type Provenance struct {
	Slot     layer.Slot
	Origin   layer.Origin
	Selector string
}

// FlagContribution is one matched flag entry together with its provenance.
// Token order inside a contribution is exactly the order declared in the
// source layer.
type FlagContribution struct {
	Tokens     []string
	Provenance Provenance
}

// ResolvedSuppression is one lint identifier in the merged suppression set.
type ResolvedSuppression struct {
	ID         string
	Reason     string
	Provenance Provenance
}

// Config is the resolution output for one concrete target: a single ordered
// flag sequence and a deduplicated suppression set. It is created fresh per
// Resolve call and never mutated afterwards.
type Config struct {
	contributions []FlagContribution
	suppressions  []ResolvedSuppression
}

// Flags returns the final flag sequence: matched entries concatenated in
// stack order, token order preserved, no deduplication. Repeated flags are
// legal and may be intentional.
func (c *Config) Flags() []string {
	var flags []string
	for _, contribution := range c.contributions {
		flags = append(flags, contribution.Tokens...)
	}
	return flags
}

// Contributions returns the matched flag entries with provenance, in final
// order.
func (c *Config) Contributions() []FlagContribution {
	copied := make([]FlagContribution, len(c.contributions))
	copy(copied, c.contributions)
	return copied
}

// Suppressions returns the merged suppression set, ordered by first
// appearance in stack order. Identifiers are unique.
func (c *Config) Suppressions() []ResolvedSuppression {
	copied := make([]ResolvedSuppression, len(c.suppressions))
	copy(copied, c.suppressions)
	return copied
}

// AllowDirectives renders the suppression set as lint-allow arguments, one
// "-A<identifier>" token per suppression.
func (c *Config) AllowDirectives() []string {
	directives := make([]string, 0, len(c.suppressions))
	for _, suppression := range c.suppressions {
		directives = append(directives, "-A"+suppression.ID)
	}
	return directives
}

// Resolve merges the stack's applicable layers into one Config for the given
// target. It walks layers lowest-precedence first; a Replace-mode layer that
// contributes at least one matched, non-empty flag entry discards all
// lower-precedence flag contributions, while suppressions union across every
// matched layer regardless of mode.
//
// Resolution is deterministic and infallible: all ordering is explicit by
// construction, and every failure mode (bad selector syntax, unknown
// attribute, duplicate slot) has already been rejected at load time.
func Resolve(stack *layer.Stack, tgt target.Target) *Config {
	resolved := &Config{}
	suppressionIndex := make(map[string]int)

	for _, placed := range stack.Ordered() {
		current := placed.Layer

		var matched []FlagContribution
		layerMatched := false
		for _, rule := range current.Rules() {
			if !rule.Selector.Matches(tgt) {
				continue
			}
			layerMatched = true
			if len(rule.Flags) == 0 {
				continue
			}
			matched = append(matched, FlagContribution{
				Tokens: rule.Flags.Clone(),
				Provenance: Provenance{
					Slot:     placed.Slot,
					Origin:   current.Origin(),
					Selector: rule.Selector.String(),
				},
			})
		}

		// A layer with no rules is a pure suppression layer and always
		// applies.
		if len(current.Rules()) == 0 {
			layerMatched = true
		}

		if current.Mode() == layer.Replace && len(matched) > 0 {
			resolved.contributions = nil
		}
		resolved.contributions = append(resolved.contributions, matched...)

		if !layerMatched {
			continue
		}
		for _, suppression := range current.Suppressions() {
			provenance := Provenance{Slot: placed.Slot, Origin: current.Origin()}
			if i, ok := suppressionIndex[suppression.ID]; ok {
				// Later layers have higher precedence: they take over
				// the rationale when they carry one.
				resolved.suppressions[i].Provenance = provenance
				if suppression.Reason != "" {
					resolved.suppressions[i].Reason = suppression.Reason
				}
				continue
			}
			suppressionIndex[suppression.ID] = len(resolved.suppressions)
			resolved.suppressions = append(resolved.suppressions, ResolvedSuppression{
				ID:         suppression.ID,
				Reason:     suppression.Reason,
				Provenance: provenance,
			})
		}
	}

	return resolved
}
