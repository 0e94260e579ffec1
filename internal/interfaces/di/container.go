package di

import (
	"fmt"
	"io"
	"log"
	"os"

	"buildcfg.dev/cli/internal/application/services"
	"buildcfg.dev/cli/internal/core/target"
	"buildcfg.dev/cli/internal/infrastructure/config"
	"buildcfg.dev/cli/internal/interfaces/cli"
)

// Container holds all application dependencies.
type Container struct {
	// Configuration sources
	Registry   *target.Registry
	FileLoader *config.FileLoader
	EnvLoader  *config.EnvLoader

	// Core service
	Service *services.ResolutionService

	// CLI
	CLIContainer *cli.CLIContainer

	// Logger
	Logger *log.Logger

	workDir    string
	configPath string
}

// NewContainer creates and configures the dependency injection container.
func NewContainer() (*Container, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to determine working directory: %w", err)
	}

	container := &Container{
		// Silent unless --debug flips the logger to stderr; resolve output
		// must stay shell-consumable.
		Logger:  log.New(io.Discard, "[bcfg] ", log.LstdFlags),
		workDir: workDir,
	}
	container.initializeComponents()

	return container, nil
}

// initializeComponents initializes all components with proper dependencies.
func (c *Container) initializeComponents() {
	c.Registry = target.DefaultRegistry()
	c.rebuildService()

	c.CLIContainer = &cli.CLIContainer{
		Service:       c.Service,
		FileLoader:    c.FileLoader,
		Logger:        c.Logger,
		MainContainer: c,
	}
}

// rebuildService reconstructs the loaders and service after an override.
func (c *Container) rebuildService() {
	c.FileLoader = config.NewFileLoader(c.workDir, c.configPath, c.Registry)
	c.EnvLoader = config.NewEnvLoader()
	c.Service = services.NewResolutionService(c.Registry, c.Logger, c.FileLoader, c.EnvLoader)
}

// refreshCLIContainer propagates rebuilt components to the CLI container.
func (c *Container) refreshCLIContainer() {
	if c.CLIContainer == nil {
		return
	}
	c.CLIContainer.Service = c.Service
	c.CLIContainer.FileLoader = c.FileLoader
	c.CLIContainer.Logger = c.Logger
}

// ApplyConfigPathOverride switches to an explicit config file path.
func (c *Container) ApplyConfigPathOverride(path string) error {
	c.configPath = path
	c.rebuildService()
	c.refreshCLIContainer()
	return nil
}

// ApplyDebugOverride enables debug logging on stderr.
func (c *Container) ApplyDebugOverride(debug bool) {
	if debug {
		c.Logger = log.New(os.Stderr, "[bcfg] ", log.LstdFlags)
	} else {
		c.Logger = log.New(io.Discard, "[bcfg] ", log.LstdFlags)
	}
	c.rebuildService()
	c.refreshCLIContainer()
}

// GetCLIContainer returns the CLI dependency container.
func (c *Container) GetCLIContainer() *cli.CLIContainer {
	return c.CLIContainer
}
