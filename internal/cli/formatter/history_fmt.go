package formatter

import (
	"strings"
	"time"

	"github.com/alexanderramin/matchday/internal/domain"
)

// FormatHistory lists recently asked questions, newest first.
func FormatHistory(questions []*domain.Question, now time.Time) string {
	if len(questions) == 0 {
		return Dim("No questions asked yet.") + "\n"
	}
	rows := make([][]string, 0, len(questions))
	for _, q := range questions {
		rows = append(rows, []string{
			Dim(HumanTimestamp(q.AskedAt, now)),
			Truncate(q.Text, 60),
			outcomeStyle(q.Outcome),
			Dim(q.Source),
		})
	}
	return Header("History") + "\n" + RenderTable([]string{"WHEN", "QUESTION", "OUTCOME", "SOURCE"}, rows)
}

func outcomeStyle(outcome string) string {
	switch {
	case outcome == "answer":
		return StyleGreen.Render(outcome)
	case strings.HasPrefix(outcome, "no_"), outcome == "empty_question":
		return StyleYellow.Render(outcome)
	default:
		return StyleRed.Render(outcome)
	}
}
