package cli

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/alexanderramin/matchday/internal/cli/formatter"
)

// errEmptyQuestion is returned when the prompt is submitted blank.
var errEmptyQuestion = errors.New("no question given")

// questionForm builds the prompt shown by `ask` without arguments.
func questionForm(value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Your question").
				Description("e.g. " + formatter.ExampleQuestions[1]).
				Placeholder("Como está o Flamengo?").
				Value(value).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errEmptyQuestion
					}
					return nil
				}),
		),
	)
}

// promptQuestion asks for a question on the terminal.
func promptQuestion() (string, error) {
	var q string
	if err := questionForm(&q).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", errEmptyQuestion
		}
		return "", err
	}
	return strings.TrimSpace(q), nil
}
