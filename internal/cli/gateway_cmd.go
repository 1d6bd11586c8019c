package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/matchday/internal/cli/formatter"
	"github.com/alexanderramin/matchday/internal/football"
)

func newTeamCmd(app *App, opts *rootOptions) *cobra.Command {
	var (
		lastN    int
		leagueID int
		season   int
	)
	cmd := &cobra.Command{
		Use:   "team <name>",
		Short: "Show a team's recent finished matches and form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := app.gateway()
			if err != nil {
				return err
			}
			q := football.RecentMatchesQuery{
				Team:   args[0],
				Season: orDefault(season, app.Defaults.Season),
				LastN:  orDefault(lastN, app.Defaults.LastN),
			}
			if leagueID > 0 {
				q.LeagueID = &leagueID
			}
			record, err := gw.RecentMatches(cmd.Context(), q)
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), record, formatter.FormatTeamRecord(record))
		},
	}
	cmd.Flags().IntVarP(&lastN, "last", "n", 0, "number of finished matches (default from config)")
	cmd.Flags().IntVar(&leagueID, "league", 0, "restrict to a league id, e.g. 71 for Brasileirão")
	cmd.Flags().IntVar(&season, "season", 0, "season year (default from config)")
	return cmd
}

func newH2HCmd(app *App, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "h2h <team1> <team2>",
		Short: "Show recent meetings between two teams",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := app.gateway()
			if err != nil {
				return err
			}
			record, err := gw.HeadToHead(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), record, formatter.FormatHeadToHead(record))
		},
	}
}

func newUpcomingCmd(app *App, opts *rootOptions) *cobra.Command {
	var nextN int
	cmd := &cobra.Command{
		Use:   "upcoming <team>",
		Short: "Show a team's next scheduled matches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := app.gateway()
			if err != nil {
				return err
			}
			matches, err := gw.UpcomingMatches(cmd.Context(), args[0], orDefault(nextN, app.Defaults.NextN))
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), matches, formatter.FormatUpcoming(args[0], matches))
		},
	}
	cmd.Flags().IntVarP(&nextN, "next", "n", 0, "number of matches (default from config)")
	return cmd
}

func newStatsCmd(app *App, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <fixture-id>",
		Short: "Show per-team statistics for a fixture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("fixture id must be a positive integer, got %q", args[0])
			}
			gw, err := app.gateway()
			if err != nil {
				return err
			}
			raw, err := gw.MatchStatistics(cmd.Context(), id)
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), raw, formatter.FormatMatchStatistics(id, raw))
		},
	}
}

func newFixturesCmd(app *App, opts *rootOptions) *cobra.Command {
	var (
		leagueID int
		season   int
		from, to string
	)
	cmd := &cobra.Command{
		Use:     "fixtures",
		Short:   "List finished fixtures of a league",
		Example: `  matchday fixtures --league 71 --season 2022 --from 2022-05-01 --to 2022-05-31`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if leagueID <= 0 {
				return fmt.Errorf("--league is required")
			}
			for _, d := range []string{from, to} {
				if d == "" {
					continue
				}
				if _, err := time.Parse("2006-01-02", d); err != nil {
					return fmt.Errorf("dates must be YYYY-MM-DD, got %q", d)
				}
			}
			gw, err := app.gateway()
			if err != nil {
				return err
			}
			fixtures, err := gw.LeagueFixtures(cmd.Context(), football.FixturesQuery{
				LeagueID: leagueID,
				Season:   orDefault(season, app.Defaults.Season),
				From:     from,
				To:       to,
			})
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), fixtures, formatter.FormatFixtures(fixtures))
		},
	}
	cmd.Flags().IntVar(&leagueID, "league", 0, "league id, e.g. 71 for Brasileirão, 39 for the Premier League")
	cmd.Flags().IntVar(&season, "season", 0, "season year (default from config)")
	cmd.Flags().StringVar(&from, "from", "", "first date, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "last date, YYYY-MM-DD")
	return cmd
}

func orDefault(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}
