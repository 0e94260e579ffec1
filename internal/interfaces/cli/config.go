package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewConfigCommand creates the config command.
func NewConfigCommand(container *CLIContainer) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration sources",
		Long: `Inspect the configuration sources feeding resolution: the discovered
config file and the layers each source contributes.`,
	}

	configCmd.AddCommand(NewConfigShowCommand(container))
	configCmd.AddCommand(NewConfigPathCommand(container))

	return configCmd
}

// NewConfigShowCommand creates the show subcommand.
func NewConfigShowCommand(container *CLIContainer) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show loaded configuration layers",
		RunE: func(cmd *cobra.Command, args []string) error {
			stack, err := container.Service.LoadStack(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Configuration layers (lowest precedence first):")
			for i, placed := range stack.Ordered() {
				current := placed.Layer
				fmt.Fprintf(out, "%d. [%s] origin=%s mode=%s\n",
					i+1, placed.Slot, current.Origin(), current.Mode())
				for _, rule := range current.Rules() {
					fmt.Fprintf(out, "     %s -> %s\n", rule.Selector, rule.Flags)
				}
				for _, suppression := range current.Suppressions() {
					if suppression.Reason != "" {
						fmt.Fprintf(out, "     allow %s (%s)\n", suppression.ID, suppression.Reason)
						continue
					}
					fmt.Fprintf(out, "     allow %s\n", suppression.ID)
				}
			}
			return nil
		},
	}
}

// NewConfigPathCommand creates the path subcommand.
func NewConfigPathCommand(container *CLIContainer) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show the config file path in effect",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, found := container.FileLoader.ConfigPath()
			if !found {
				return fmt.Errorf("no config file found")
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
