package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"buildcfg.dev/cli/internal/core/resolve"
	"buildcfg.dev/cli/internal/core/target"
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand(container *CLIContainer) *cobra.Command {
	targetFlags := &TargetFlags{}

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Interactive browser over the resolved configuration",
		Long: `Inspect opens an interactive view of the resolution result for a target.
Sources are re-read on demand, so edits to the config file or environment can
be re-checked without leaving the view.

Controls:
  r       reload sources and re-resolve
  q       quit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tgt, err := targetFlags.Target(container.Service.Registry())
			if err != nil {
				return err
			}

			model := newInspectModel(container, tgt)
			program := tea.NewProgram(model, tea.WithAltScreen())
			_, err = program.Run()
			return err
		},
	}

	targetFlags.Register(cmd.Flags())
	return cmd
}

// Bubble Tea messages

type resolvedMsg struct {
	resolved *resolve.Config
}

type resolveErrMsg struct {
	err error
}

// inspectModel is the Bubble Tea model for the inspect view.
type inspectModel struct {
	container *CLIContainer
	target    target.Target
	resolved  *resolve.Config
	err       error
	reloads   int
}

func newInspectModel(container *CLIContainer, tgt target.Target) inspectModel {
	return inspectModel{container: container, target: tgt}
}

// resolveCmd re-reads every source and resolves for the model's target.
func (m inspectModel) resolveCmd() tea.Cmd {
	return func() tea.Msg {
		resolved, err := m.container.Service.Resolve(context.Background(), m.target)
		if err != nil {
			return resolveErrMsg{err: err}
		}
		return resolvedMsg{resolved: resolved}
	}
}

// Init implements the Bubble Tea init method.
func (m inspectModel) Init() tea.Cmd {
	return m.resolveCmd()
}

// Update implements the Bubble Tea update method.
func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.reloads++
			return m, m.resolveCmd()
		}

	case resolvedMsg:
		m.resolved = msg.resolved
		m.err = nil
		return m, nil

	case resolveErrMsg:
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

// View implements the Bubble Tea view method.
func (m inspectModel) View() string {
	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Render("r: reload  q: quit")

	if m.err != nil {
		body := fmt.Sprintf("Error: %v", m.err)
		return lipgloss.JoinVertical(lipgloss.Left, body, "", footer)
	}
	if m.resolved == nil {
		return lipgloss.JoinVertical(lipgloss.Left, "Resolving...", "", footer)
	}

	body := renderExplanation(m.target.String(), m.resolved)
	status := ""
	if m.reloads > 0 {
		status = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")).
			Render(fmt.Sprintf("reloaded %d time(s)", m.reloads))
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, "", status, footer)
}
