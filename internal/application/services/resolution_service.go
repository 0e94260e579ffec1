package services

import (
	"context"
	"fmt"
	"log"

	"buildcfg.dev/cli/internal/core/layer"
	"buildcfg.dev/cli/internal/core/ports"
	"buildcfg.dev/cli/internal/core/resolve"
	"buildcfg.dev/cli/internal/core/target"
)

// ResolutionService assembles the layer stack from all configured sources and
// runs resolution for concrete targets. Loading happens once per call; the
// assembled stack is validated before any resolution, so every configuration
// error surfaces here and resolution itself cannot fail.
type ResolutionService struct {
	sources  []ports.LayerSource
	registry *target.Registry
	logger   *log.Logger
}

// NewResolutionService creates a service over the given layer sources.
// Sources are consulted in order; each one places its layers into the fixed
// precedence slots itself.
func NewResolutionService(registry *target.Registry, logger *log.Logger, sources ...ports.LayerSource) *ResolutionService {
	return &ResolutionService{
		sources:  sources,
		registry: registry,
		logger:   logger,
	}
}

// Registry returns the target attribute registry in effect.
func (s *ResolutionService) Registry() *target.Registry {
	return s.registry
}

// LoadStack loads and validates every configured source into one stack.
func (s *ResolutionService) LoadStack(ctx context.Context) (*layer.Stack, error) {
	stack := layer.NewStack()

	for _, source := range s.sources {
		placed, err := source.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load %s configuration: %w", source.Name(), err)
		}
		for _, p := range placed {
			if err := stack.Push(p.Slot, p.Layer); err != nil {
				return nil, fmt.Errorf("load %s configuration: %w", source.Name(), err)
			}
		}
		s.logger.Printf("loaded %d layer(s) from %s source", len(placed), source.Name())
	}

	if err := stack.Validate(s.registry); err != nil {
		return nil, err
	}
	return stack, nil
}

// Resolve loads the stack and resolves it for one target.
func (s *ResolutionService) Resolve(ctx context.Context, tgt target.Target) (*resolve.Config, error) {
	stack, err := s.LoadStack(ctx)
	if err != nil {
		return nil, err
	}

	resolved := resolve.Resolve(stack, tgt)
	s.logger.Printf("resolved %d flag token(s) and %d lint suppression(s) for target %s",
		len(resolved.Flags()), len(resolved.Suppressions()), tgt)
	return resolved, nil
}

// Validate loads the stack purely for its error reporting.
func (s *ResolutionService) Validate(ctx context.Context) error {
	_, err := s.LoadStack(ctx)
	return err
}
