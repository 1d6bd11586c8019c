package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newShellCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Ask questions interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd.Context(), app)
		},
	}
}

// runShell runs the REPL until the user leaves or ctx is done.
func runShell(ctx context.Context, app *App) error {
	if _, err := app.askService(); err != nil {
		return err
	}
	p := tea.NewProgram(newShellModel(ctx, app), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("running shell: %w", err)
	}
	return nil
}
