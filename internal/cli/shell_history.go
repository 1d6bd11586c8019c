package cli

import (
	"context"
	"strings"

	"github.com/alexanderramin/matchday/internal/service"
)

const maxHistoryLines = 500

// loadShellHistory returns previously asked questions, oldest first, with
// consecutive repeats collapsed. History is best-effort: errors yield nil.
func loadShellHistory(ctx context.Context, history service.HistoryService) []string {
	if history == nil {
		return nil
	}
	recent, err := history.Recent(ctx, maxHistoryLines)
	if err != nil {
		return nil
	}

	lines := make([]string, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		text := strings.TrimSpace(recent[i].Text)
		if text == "" {
			continue
		}
		if n := len(lines); n > 0 && lines[n-1] == text {
			continue
		}
		lines = append(lines, text)
	}
	return lines
}
