package cmd

import (
	"fmt"

	"github.com/nconklindev/chore/internal/converter"
	"github.com/nconklindev/chore/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func (a *app) newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Pick a spreadsheet or JSON file interactively",
		Args:  cobra.NoArgs,
		RunE:  a.runBrowse,
	}
}

func (a *app) runBrowse(cmd *cobra.Command, args []string) error {
	p := tea.NewProgram(ui.InitialModel(converter.DefaultOptions()), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("browser: %w", err)
	}
	return nil
}
