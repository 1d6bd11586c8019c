package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/matchday/internal/cli/formatter"
)

type historyRow struct {
	RequestID string `json:"request_id"`
	Question  string `json:"question"`
	Source    string `json:"source"`
	Outcome   string `json:"outcome"`
	AskedAt   string `json:"asked_at"`
}

func newHistoryCmd(app *App, opts *rootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently asked questions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.History == nil {
				return errors.New("question history is not configured")
			}
			questions, err := app.History.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			rows := make([]historyRow, 0, len(questions))
			for _, q := range questions {
				rows = append(rows, historyRow{
					RequestID: q.RequestID,
					Question:  q.Text,
					Source:    q.Source,
					Outcome:   q.Outcome,
					AskedAt:   q.AskedAt.Format("2006-01-02T15:04:05Z07:00"),
				})
			}
			return opts.render(cmd.OutOrStdout(), rows, formatter.FormatHistory(questions, app.now()))
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of questions to show")
	return cmd
}
