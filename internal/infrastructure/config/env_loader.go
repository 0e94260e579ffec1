package config

import (
	"context"
	"os"
	"strings"

	"buildcfg.dev/cli/internal/core/layer"
	"buildcfg.dev/cli/internal/core/ports"
	"buildcfg.dev/cli/internal/core/target"
)

// Environment override variables. The build variable substitutes the file
// layers entirely; the extra variable appends after them. Setting both is a
// configuration error because both claim the single env-override slot.
const (
	EnvBuildFlags = "BCFG_BUILD_FLAGS"
	EnvExtraFlags = "BCFG_EXTRA_FLAGS"
)

// EnvLoader builds the environment-override layer from a snapshot of the
// process environment. The environment is read once per Load; tests inject a
// synthetic lookup instead of touching the real environment.
type EnvLoader struct {
	lookup func(string) (string, bool)
}

// NewEnvLoader creates a loader over the real process environment.
func NewEnvLoader() *EnvLoader {
	return &EnvLoader{lookup: os.LookupEnv}
}

// NewEnvLoaderWithLookup creates a loader over an injected environment.
func NewEnvLoaderWithLookup(lookup func(string) (string, bool)) *EnvLoader {
	return &EnvLoader{lookup: lookup}
}

func (l *EnvLoader) Name() string { return "env" }

// Load returns at most one layer for the env-override slot. Variables hold
// whitespace-separated flag tokens; a set-but-blank variable counts as
// absent.
func (l *EnvLoader) Load(ctx context.Context) ([]layer.Placed, error) {
	buildValue, buildSet := l.snapshot(EnvBuildFlags)
	extraValue, extraSet := l.snapshot(EnvExtraFlags)

	if buildSet && extraSet {
		return nil, &layer.DuplicateLayerError{Slot: layer.SlotEnvOverride}
	}

	name, value, mode := EnvBuildFlags, buildValue, layer.Replace
	if extraSet {
		name, value, mode = EnvExtraFlags, extraValue, layer.Append
	} else if !buildSet {
		return nil, nil
	}

	envLayer := layer.New(
		layer.Origin{Source: "env", SourcePath: name},
		mode,
		[]layer.Rule{{Selector: target.Universal{}, Flags: layer.FlagEntry(strings.Fields(value))}},
		nil,
	)
	return []layer.Placed{{Slot: layer.SlotEnvOverride, Layer: envLayer}}, nil
}

// snapshot reads one variable, mapping blank values to absent.
func (l *EnvLoader) snapshot(name string) (string, bool) {
	value, ok := l.lookup(name)
	if !ok || strings.TrimSpace(value) == "" {
		return "", false
	}
	return value, true
}

var _ ports.LayerSource = (*EnvLoader)(nil)
