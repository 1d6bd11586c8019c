package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/matchday/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// ResultStyle colors a match result from the team's side.
func ResultStyle(r domain.MatchResult) lipgloss.Style {
	switch r {
	case domain.ResultWin:
		return StyleGreen
	case domain.ResultLoss:
		return StyleRed
	default:
		return StyleYellow
	}
}

// ResultBadge renders a one-letter result such as "W".
func ResultBadge(r domain.MatchResult) string {
	letter := "D"
	switch r {
	case domain.ResultWin:
		letter = "W"
	case domain.ResultLoss:
		letter = "L"
	}
	return ResultStyle(r).Render(letter)
}

// ConfidenceStyle colors a model-reported confidence label. Labels are
// free text, usually Portuguese ("alta", "média", "baixa").
func ConfidenceStyle(label string) lipgloss.Style {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "alta", "high":
		return StyleGreen
	case "baixa", "low":
		return StyleRed
	case "":
		return StyleDim
	default:
		return StyleYellow
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
