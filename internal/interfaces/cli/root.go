package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"buildcfg.dev/cli/internal/application/services"
	"buildcfg.dev/cli/internal/infrastructure/config"
)

var (
	Version   = "dev"     // Overridden by ldflags
	BuildTime = "unknown" // Overridden by ldflags
)

// CLIContainer holds all the dependencies for CLI commands.
type CLIContainer struct {
	Service    *services.ResolutionService
	FileLoader *config.FileLoader
	Logger     *log.Logger

	// MainContainer is the owning *di.Container, typed as interface{} to
	// avoid a circular import. Root-level flag overrides reach it through
	// interface assertions.
	MainContainer interface{}
}

// NewRootCommand builds the base command with every subcommand attached.
func NewRootCommand(container *CLIContainer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bcfg",
		Short: "buildcfg - layered build-flag resolution",
		Long: `buildcfg (bcfg) decides which compiler flags and lint suppressions apply
to a concrete compilation target when several configuration sources claim the
same setting.

File-based defaults, target-conditioned blocks, and the environment override
merge in a fixed precedence order: the unconditioned build block first, then
matching target blocks in order of appearance, then the environment variable,
which substitutes the file flags entirely when set.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return applyConfigurationOverrides(cmd, container)
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} version {{.Version}}\nBuild time: %s\nGo version: %s\nPlatform: %s/%s\n",
		BuildTime, goVersion(), runtime.GOOS, runtime.GOARCH))

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("config", "", "Config file path (default discovers buildcfg.yaml in the working directory)")

	rootCmd.AddCommand(NewResolveCommand(container))
	rootCmd.AddCommand(NewExplainCommand(container))
	rootCmd.AddCommand(NewLintsCommand(container))
	rootCmd.AddCommand(NewValidateCommand(container))
	rootCmd.AddCommand(NewConfigCommand(container))
	rootCmd.AddCommand(NewInspectCommand(container))

	return rootCmd
}

// goVersion returns the Go version used to build the binary.
func goVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.GoVersion
	}
	return "unknown"
}

// applyConfigurationOverrides applies root-level flag overrides before any
// subcommand runs.
func applyConfigurationOverrides(cmd *cobra.Command, container *CLIContainer) error {
	mainContainer, ok := container.MainContainer.(interface {
		ApplyConfigPathOverride(string) error
		ApplyDebugOverride(bool)
	})
	if !ok {
		// Container built without override support (tests); continue.
		return nil
	}

	if cmd.Flags().Changed("config") {
		path, _ := cmd.Flags().GetString("config")
		if err := mainContainer.ApplyConfigPathOverride(path); err != nil {
			return fmt.Errorf("failed to override config path: %w", err)
		}
	}

	if debugFlag, _ := cmd.Flags().GetBool("debug"); debugFlag {
		mainContainer.ApplyDebugOverride(true)
	}

	return nil
}

// Execute adds all child commands to the root command and runs it. The
// context cancels every in-flight load when the process is signalled.
func Execute(ctx context.Context, container *CLIContainer) {
	rootCmd := NewRootCommand(container)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
