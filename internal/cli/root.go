package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/matchday/internal/football"
	"github.com/alexanderramin/matchday/internal/service"
)

// ErrQuestionFailed is returned after a terminal failure has been printed.
// Callers should exit non-zero without printing it again.
var ErrQuestionFailed = errors.New("question could not be answered")

// Defaults are the values direct gateway commands fall back to.
type Defaults struct {
	Season int
	LastN  int
	NextN  int
}

// App holds the services CLI commands run against. Ask and Gateway are nil
// when their configuration is missing; the matching error is reported by
// the commands that need them.
type App struct {
	Ask        service.AskService
	AskErr     error
	History    service.HistoryService
	Gateway    football.Gateway
	GatewayErr error
	Defaults   Defaults

	// Serve runs the HTTP surface until ctx is done.
	Serve     func(ctx context.Context, addr string) error
	ServeAddr string

	IsInteractive func() bool
	Now           func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) askService() (service.AskService, error) {
	if a.Ask != nil {
		return a.Ask, nil
	}
	if a.AskErr != nil {
		return nil, a.AskErr
	}
	return nil, errors.New("question answering is not configured")
}

func (a *App) gateway() (football.Gateway, error) {
	if a.Gateway != nil {
		return a.Gateway, nil
	}
	if a.GatewayErr != nil {
		return nil, fmt.Errorf("%w (set FOOTBALL_API_KEY or MATCHDAY_FOOTBALL__API_KEY)", a.GatewayErr)
	}
	return nil, errors.New("football API is not configured")
}

// NewRootCmd creates the top-level "matchday" command. With no subcommand
// it opens the shell on a terminal and prints help otherwise.
func NewRootCmd(app *App) *cobra.Command {
	opts := &rootOptions{output: outputText}

	root := &cobra.Command{
		Use:           "matchday",
		Short:         "Football analysis and betting insights from plain-language questions",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return runShell(cmd.Context(), app)
			}
			return cmd.Help()
		},
	}
	root.PersistentFlags().VarP(&opts.output, "output", "o", "output format: text, json or yaml")

	root.AddCommand(
		newAskCmd(app, opts),
		newShellCmd(app),
		newTeamCmd(app, opts),
		newH2HCmd(app, opts),
		newUpcomingCmd(app, opts),
		newStatsCmd(app, opts),
		newFixturesCmd(app, opts),
		newHistoryCmd(app, opts),
		newServeCmd(app),
	)

	return root
}
