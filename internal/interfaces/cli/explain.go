package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"buildcfg.dev/cli/internal/core/layer"
	"buildcfg.dev/cli/internal/core/resolve"
)

// NewExplainCommand creates the explain command.
func NewExplainCommand(container *CLIContainer) *cobra.Command {
	targetFlags := &TargetFlags{}

	cmd := &cobra.Command{
		Use:   "explain",
		Short: "Show which layer supplied each resolved flag and lint",
		Long: `Explain resolves the configuration for a target and prints every flag
entry and lint suppression together with the layer that supplied it: the
precedence slot, the origin (config file path or environment variable), and
the selector that matched.

Examples:
  bcfg explain --platform web --arch wasm32
  bcfg explain --platform native`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tgt, err := targetFlags.Target(container.Service.Registry())
			if err != nil {
				return err
			}

			resolved, err := container.Service.Resolve(cmd.Context(), tgt)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderExplanation(tgt.String(), resolved))
			return nil
		},
	}

	targetFlags.Register(cmd.Flags())
	return cmd
}

var (
	explainTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("86"))

	explainHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("252"))

	explainDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	slotStyles = map[layer.Slot]lipgloss.Style{
		layer.SlotFileDefault: lipgloss.NewStyle().Foreground(lipgloss.Color("110")),
		layer.SlotFileTarget:  lipgloss.NewStyle().Foreground(lipgloss.Color("150")),
		layer.SlotEnvOverride: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	}
)

func renderSlot(slot layer.Slot) string {
	style, ok := slotStyles[slot]
	if !ok {
		return slot.String()
	}
	return style.Render(slot.String())
}

// renderExplanation renders the full provenance report for one resolution.
func renderExplanation(targetDesc string, resolved *resolve.Config) string {
	var sections []string

	sections = append(sections,
		explainTitleStyle.Render("Resolution for ")+explainTitleStyle.Render(targetDesc))

	contributions := resolved.Contributions()
	sections = append(sections, explainHeaderStyle.Render(fmt.Sprintf("Flags (%d entries)", len(contributions))))
	if len(contributions) == 0 {
		sections = append(sections, explainDimStyle.Render("  (none)"))
	}
	for _, contribution := range contributions {
		line := fmt.Sprintf("  %-40s  %s  %s",
			strings.Join(contribution.Tokens, " "),
			renderSlot(contribution.Provenance.Slot),
			explainDimStyle.Render(contribution.Provenance.Origin.String()),
		)
		if contribution.Provenance.Selector != "" {
			line += "  " + explainDimStyle.Render(contribution.Provenance.Selector)
		}
		sections = append(sections, line)
	}

	suppressions := resolved.Suppressions()
	sections = append(sections, explainHeaderStyle.Render(fmt.Sprintf("Lint suppressions (%d)", len(suppressions))))
	if len(suppressions) == 0 {
		sections = append(sections, explainDimStyle.Render("  (none)"))
	}
	for _, suppression := range suppressions {
		line := fmt.Sprintf("  %-36s  %s", suppression.ID, renderSlot(suppression.Provenance.Slot))
		if suppression.Reason != "" {
			line += "  " + explainDimStyle.Render(suppression.Reason)
		}
		sections = append(sections, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
