package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"buildcfg.dev/cli/internal/core/layer"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(container *CLIContainer) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration sources without resolving",
		Long: `Validate loads every configuration source and reports problems before
any resolution would run.

This command will:
- Discover and parse the workspace config file
- Parse and validate every target selector
- Check flag tokens and lint identifiers
- Check the environment override for conflicts`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, container)
		},
	}
}

// runValidate handles the validation process.
func runValidate(cmd *cobra.Command, container *CLIContainer) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "🔍 buildcfg validation")
	fmt.Fprintln(out, "")

	fmt.Fprint(out, "Checking config file... ")
	path, found := container.FileLoader.ConfigPath()
	if found {
		fmt.Fprintf(out, "✅ %s\n", path)
	} else {
		fmt.Fprintln(out, "⚠️  none found (file layers absent)")
	}

	fmt.Fprint(out, "Loading configuration layers... ")
	stack, err := container.Service.LoadStack(cmd.Context())
	if err != nil {
		fmt.Fprintln(out, "❌ Failed")
		return err
	}
	fmt.Fprintf(out, "✅ %d layer(s)\n", stack.Len())

	counts := make(map[layer.Slot]int)
	for _, placed := range stack.Ordered() {
		counts[placed.Slot]++
	}

	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Layer summary:")
	fmt.Fprintln(out, "─────────────")
	for _, slot := range []layer.Slot{layer.SlotFileDefault, layer.SlotFileTarget, layer.SlotEnvOverride} {
		fmt.Fprintf(out, "%-14s %d\n", slot.String()+":", counts[slot])
	}

	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "✅ Validation completed successfully")
	return nil
}
