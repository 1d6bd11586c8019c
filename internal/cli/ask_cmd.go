package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/matchday/internal/cli/formatter"
	"github.com/alexanderramin/matchday/internal/contract"
)

func newAskCmd(app *App, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ask [question...]",
		Short: "Answer a football question",
		Long: "Extract the teams and dates from a plain-language question, fetch their recent\n" +
			"matches, and answer with statistics and betting suggestions.",
		Example: `  matchday ask "O Flamengo ganha hoje contra o River Plate?"
  matchday ask -o json Como está a forma recente do Real Madrid?`,
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.TrimSpace(strings.Join(args, " "))
			if question == "" && app.interactive() {
				q, err := promptQuestion()
				if err != nil {
					return err
				}
				question = q
			}

			svc, err := app.askService()
			if err != nil {
				return err
			}

			stop := func() {}
			if app.interactive() && opts.output == outputText {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Analysing...")
			}
			res, err := svc.Ask(cmd.Context(), contract.NewAskRequest(question, "cli"))
			stop()
			if err != nil {
				return err
			}

			if err := opts.render(cmd.OutOrStdout(), res, formatter.FormatAskResult(res)); err != nil {
				return err
			}
			if !res.IsAnswer() {
				return ErrQuestionFailed
			}
			return nil
		},
	}
}
