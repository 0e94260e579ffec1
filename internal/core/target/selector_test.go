package target

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// Local test helpers

func webTarget() Target {
	return New(map[string]string{"platform": "web", "arch": "wasm32", "os": "unknown"})
}

func nativeTarget() Target {
	return New(map[string]string{"platform": "native", "arch": "x86_64", "os": "linux"})
}

// TestUniversal_MatchesEveryTarget tests the universal selector fallback behavior
func TestUniversal_MatchesEveryTarget(t *testing.T) {
	selector := Universal{}

	assert.True(t, selector.Matches(webTarget()), "Universal should match the web target")
	assert.True(t, selector.Matches(nativeTarget()), "Universal should match the native target")
	assert.True(t, selector.Matches(New(nil)), "Universal should match a target with no attributes")
}

// TestAttributeEquals_Matching tests attribute equality matching
func TestAttributeEquals_Matching(t *testing.T) {
	tests := []struct {
		name        string
		selector    AttributeEquals
		target      Target
		shouldMatch bool
		description string
	}{
		{
			name:        "ExactMatch_Matches",
			selector:    AttributeEquals{Name: "platform", Value: "web"},
			target:      webTarget(),
			shouldMatch: true,
			description: "Equal attribute value should match",
		},
		{
			name:        "DifferentValue_NoMatch",
			selector:    AttributeEquals{Name: "platform", Value: "web"},
			target:      nativeTarget(),
			shouldMatch: false,
			description: "Different attribute value should not match",
		},
		{
			name:        "MissingAttribute_NoMatch",
			selector:    AttributeEquals{Name: "profile", Value: "release"},
			target:      webTarget(),
			shouldMatch: false,
			description: "Unset attribute should not match, not fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.shouldMatch, tt.selector.Matches(tt.target), tt.description)
		})
	}
}

// TestCompositeSelectors_Matching tests all/any/not composition
func TestCompositeSelectors_Matching(t *testing.T) {
	webPlatform := AttributeEquals{Name: "platform", Value: "web"}
	wasmArch := AttributeEquals{Name: "arch", Value: "wasm32"}
	linuxOS := AttributeEquals{Name: "os", Value: "linux"}

	tests := []struct {
		name        string
		selector    Selector
		target      Target
		shouldMatch bool
	}{
		{
			name:        "AllOf_AllMembersMatch_Matches",
			selector:    AllOf{Selectors: []Selector{webPlatform, wasmArch}},
			target:      webTarget(),
			shouldMatch: true,
		},
		{
			name:        "AllOf_OneMemberFails_NoMatch",
			selector:    AllOf{Selectors: []Selector{webPlatform, linuxOS}},
			target:      webTarget(),
			shouldMatch: false,
		},
		{
			name:        "AllOf_Empty_MatchesEverything",
			selector:    AllOf{},
			target:      nativeTarget(),
			shouldMatch: true,
		},
		{
			name:        "AnyOf_OneMemberMatches_Matches",
			selector:    AnyOf{Selectors: []Selector{linuxOS, webPlatform}},
			target:      webTarget(),
			shouldMatch: true,
		},
		{
			name:        "AnyOf_NoMemberMatches_NoMatch",
			selector:    AnyOf{Selectors: []Selector{linuxOS}},
			target:      webTarget(),
			shouldMatch: false,
		},
		{
			name:        "AnyOf_Empty_MatchesNothing",
			selector:    AnyOf{},
			target:      webTarget(),
			shouldMatch: false,
		},
		{
			name:        "Not_InvertsInner",
			selector:    Not{Inner: webPlatform},
			target:      nativeTarget(),
			shouldMatch: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.shouldMatch, tt.selector.Matches(tt.target))
		})
	}
}

// TestSelector_Validate tests load-time attribute validation
func TestSelector_Validate(t *testing.T) {
	registry := DefaultRegistry()

	t.Run("KnownAttribute_Valid", func(t *testing.T) {
		selector := AttributeEquals{Name: "platform", Value: "web"}
		assert.NoError(t, selector.Validate(registry))
	})

	t.Run("UnknownAttribute_Rejected", func(t *testing.T) {
		selector := AttributeEquals{Name: "vendor", Value: "acme"}
		err := selector.Validate(registry)
		require.Error(t, err)

		var unknownErr *UnknownAttributeError
		require.ErrorAs(t, err, &unknownErr)
		assert.Equal(t, "vendor", unknownErr.Attribute)
	})

	t.Run("UnknownAttributeInsideComposite_Rejected", func(t *testing.T) {
		selector := AllOf{Selectors: []Selector{
			AttributeEquals{Name: "platform", Value: "web"},
			Not{Inner: AttributeEquals{Name: "vendor", Value: "acme"}},
		}}
		var unknownErr *UnknownAttributeError
		require.ErrorAs(t, selector.Validate(registry), &unknownErr)
	})

	t.Run("RegisteredCustomAttribute_Valid", func(t *testing.T) {
		registry := NewRegistry("platform")
		registry.Register("vendor")
		selector := AttributeEquals{Name: "vendor", Value: "acme"}
		assert.NoError(t, selector.Validate(registry))
	})
}

// TestSelector_MatchingIsPure property: matching the same target twice always
// agrees, for arbitrary attribute-equals selectors and targets
func TestSelector_MatchingIsPure(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		name := rapid.SampledFrom([]string{"platform", "arch", "os", "family"}).Draw(t, "name")
		value := rapid.StringMatching(`[a-z0-9_]{1,12}`).Draw(t, "value")
		attrs := rapid.MapOf(
			rapid.SampledFrom([]string{"platform", "arch", "os", "family"}),
			rapid.StringMatching(`[a-z0-9_]{1,12}`),
		).Draw(t, "attrs")

		selector := AttributeEquals{Name: name, Value: value}
		tgt := New(attrs)

		first := selector.Matches(tgt)
		second := selector.Matches(tgt)
		assert.Equal(t, first, second, "Matching must be pure")

		stored, present := attrs[name]
		assert.Equal(t, present && stored == value, first, "Match result must follow attribute equality")
	})
}
