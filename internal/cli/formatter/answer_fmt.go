package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/matchday/internal/contract"
	"github.com/alexanderramin/matchday/internal/domain"
	"github.com/alexanderramin/matchday/internal/intelligence"
)

// FormatAskResult renders an answer or a failure for the terminal.
func FormatAskResult(res *contract.AskResult) string {
	if res == nil {
		return ""
	}
	if res.Failure != nil {
		return FormatFailure(res.Failure)
	}
	return FormatAnswer(res.Answer)
}

// FormatAnswer renders the sections the model filled in, in reading order.
// Unstructured answers show the raw model text and a digest of the data.
func FormatAnswer(a *intelligence.FinalAnswer) string {
	if a == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n")

	if !a.Structured {
		if a.Note != "" {
			b.WriteString(StyleYellow.Render("! "+a.Note) + "\n\n")
		}
		if text := strings.TrimSpace(a.RawText); text != "" {
			b.WriteString(Header("Answer") + "\n")
			b.WriteString(indent(text) + "\n\n")
		}
		if digest := FormatCollectionDigest(a.Collection); digest != "" {
			b.WriteString(Header("Collected data") + "\n")
			b.WriteString(digest + "\n")
		}
		return b.String()
	}

	if a.DirectAnswer != "" {
		b.WriteString(Header("Answer") + "\n")
		b.WriteString(indent(a.DirectAnswer) + "\n\n")
	}

	if len(a.Statistics) > 0 {
		b.WriteString(Header("Statistics") + "\n")
		for _, k := range sortedKeys(a.Statistics) {
			b.WriteString(fmt.Sprintf("  %s %s %s\n", Dim("•"), StyleBlue.Render(k+":"), inlineValue(a.Statistics[k])))
		}
		b.WriteString("\n")
	}

	if len(a.BettingSuggestions) > 0 {
		b.WriteString(Header("Betting suggestions") + "\n")
		for i, s := range a.BettingSuggestions {
			b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, Bold(orNA(s.Market))))
			b.WriteString(fmt.Sprintf("     %s %s\n", Dim("Suggestion:"), orNA(s.Suggestion)))
			b.WriteString(fmt.Sprintf("     %s %s\n", Dim("Confidence:"), ConfidenceStyle(s.Confidence).Render(orNA(s.Confidence))))
			b.WriteString(fmt.Sprintf("     %s %s\n", Dim("Rationale: "), orNA(s.Rationale)))
		}
		b.WriteString("\n")
	}

	if a.Observations != "" {
		b.WriteString(Header("Observations") + "\n")
		b.WriteString(indent(a.Observations) + "\n\n")
	}

	if a.Confidence != "" {
		b.WriteString(Dim("Analysis confidence: ") +
			ConfidenceStyle(a.Confidence).Bold(true).Render(strings.ToUpper(a.Confidence)) + "\n")
	}

	return b.String()
}

// FormatFailure renders a terminal failure with its hint and, when
// present, the unparsed model output and the attempted parameters.
func FormatFailure(f *contract.Failure) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(StyleRed.Render("✖ "+f.Message) + "\n")
	if f.Hint != "" {
		b.WriteString(Dim("  "+f.Hint) + "\n")
	}
	if f.Cause != "" {
		b.WriteString(Dim("  cause: "+f.Cause) + "\n")
	}
	if f.Params != nil {
		b.WriteString(Dim("  attempted: "+describeParams(f.Params)) + "\n")
	}
	if raw := strings.TrimSpace(f.Raw); raw != "" {
		b.WriteString("\n" + Header("Raw response") + "\n")
		b.WriteString(indent(raw) + "\n")
	}
	return b.String()
}

// FormatCollectionDigest summarizes each collection entry on one line.
func FormatCollectionDigest(c *domain.DataCollection) string {
	if c == nil || len(c.Entries) == 0 {
		return ""
	}
	var b strings.Builder
	for _, e := range c.Entries {
		switch {
		case e.Failed() && e.Kind == domain.EntryHeadToHead:
			b.WriteString(fmt.Sprintf("  %s %s\n", StyleRed.Render("✖ head-to-head:"), e.Err))
		case e.Failed():
			b.WriteString(fmt.Sprintf("  %s %s\n", StyleRed.Render("✖ "+e.Team+":"), e.Err))
		case e.Kind == domain.EntryHeadToHead:
			s := e.HeadToHead.Statistics
			b.WriteString(fmt.Sprintf("  %s %s %d-%d-%d %s (goals %d:%d)\n",
				Dim("•"), Bold(e.HeadToHead.Team1+" vs "+e.HeadToHead.Team2),
				s.Team1Wins, s.Draws, s.Team2Wins, Dim("W-D-L"), s.Team1Goals, s.Team2Goals))
		default:
			b.WriteString("  " + Dim("•") + " " + TeamLine(e.Record) + "\n")
		}
	}
	return b.String()
}

// TeamLine is a one-line form summary: name, W-D-L, goals and points share.
func TeamLine(r *domain.TeamRecord) string {
	s := r.Statistics
	return fmt.Sprintf("%s %d-%d-%d %s goals %d:%d (%.2f/%.2f per game), %s",
		Bold(r.Team), s.Wins, s.Draws, s.Losses, Dim("W-D-L"),
		s.GoalsFor, s.GoalsAgainst, s.AvgGoalsFor, s.AvgGoalsAgainst,
		StyleGreen.Render(fmt.Sprintf("%.1f%% pts", s.PointsPct)))
}

func describeParams(p *intelligence.QueryParameters) string {
	parts := []string{"teams=" + strings.Join(p.Teams, ", ")}
	if p.LeagueID != nil {
		parts = append(parts, fmt.Sprintf("league=%d", *p.LeagueID))
	}
	parts = append(parts, fmt.Sprintf("season=%d", p.Season))
	if p.DateFrom != nil || p.DateTo != nil {
		parts = append(parts, fmt.Sprintf("dates=%s..%s", deref(p.DateFrom), deref(p.DateTo)))
	}
	return strings.Join(parts, " ")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}
