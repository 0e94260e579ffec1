package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewLintsCommand creates the lints command.
func NewLintsCommand(container *CLIContainer) *cobra.Command {
	targetFlags := &TargetFlags{}
	var directives bool

	cmd := &cobra.Command{
		Use:   "lints",
		Short: "Show the merged lint-suppression set for a target",
		Long: `Lints resolves the configuration for a target and prints the merged,
deduplicated lint-suppression set. Each identifier appears once, with the
rationale from the highest-precedence layer that declared it.

Examples:
  bcfg lints --platform web
  bcfg lints --platform native --directives`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tgt, err := targetFlags.Target(container.Service.Registry())
			if err != nil {
				return err
			}

			resolved, err := container.Service.Resolve(cmd.Context(), tgt)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if directives {
				for _, directive := range resolved.AllowDirectives() {
					fmt.Fprintln(out, directive)
				}
				return nil
			}

			for _, suppression := range resolved.Suppressions() {
				if suppression.Reason != "" {
					fmt.Fprintf(out, "%-40s # %s\n", suppression.ID, suppression.Reason)
					continue
				}
				fmt.Fprintln(out, suppression.ID)
			}
			return nil
		},
	}

	targetFlags.Register(cmd.Flags())
	cmd.Flags().BoolVar(&directives, "directives", false, "Print as -A<lint> compiler directives")

	return cmd
}
