package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// resolveOutput is the machine-readable form of a resolution result.
type resolveOutput struct {
	Target string   `json:"target"`
	Flags  []string `json:"flags"`
	Lints  []string `json:"lints"`
}

// NewResolveCommand creates the resolve command.
func NewResolveCommand(container *CLIContainer) *cobra.Command {
	targetFlags := &TargetFlags{}
	var jsonOutput bool
	var withLints bool

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the final flag sequence for a target",
		Long: `Resolve merges all configuration layers for the given target and prints
the final compiler flag sequence, in order, ready to pass to the compiler.

Examples:
  bcfg resolve --platform web --arch wasm32
  bcfg resolve --platform native --os linux --lints
  BCFG_BUILD_FLAGS="-Cz" bcfg resolve --platform web`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tgt, err := targetFlags.Target(container.Service.Registry())
			if err != nil {
				return err
			}

			resolved, err := container.Service.Resolve(cmd.Context(), tgt)
			if err != nil {
				return err
			}

			flags := resolved.Flags()
			if withLints {
				flags = append(flags, resolved.AllowDirectives()...)
			}

			if jsonOutput {
				encoded, err := json.MarshalIndent(resolveOutput{
					Target: tgt.String(),
					Flags:  resolved.Flags(),
					Lints:  resolved.AllowDirectives(),
				}, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(flags, " "))
			return nil
		},
	}

	targetFlags.Register(cmd.Flags())
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the result as JSON")
	cmd.Flags().BoolVar(&withLints, "lints", false, "Append lint-allow directives to the flag sequence")

	return cmd
}
