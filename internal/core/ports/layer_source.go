package ports

import (
	"context"

	"buildcfg.dev/cli/internal/core/layer"
)

// LayerSource loads configuration layers from one origin (config file,
// process environment). Implementations report every syntax and structure
// problem from Load; layers that load successfully never fail later.
type LayerSource interface {
	// Name identifies the source in logs and error messages.
	Name() string

	// Load returns the source's layers with their precedence slots, in
	// order of appearance. A source with nothing to contribute returns an
	// empty slice and no error.
	Load(ctx context.Context) ([]layer.Placed, error)
}
