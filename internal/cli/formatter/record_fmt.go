package formatter

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/matchday/internal/domain"
)

// FormatTeamRecord renders a team's recent matches and derived statistics.
func FormatTeamRecord(r *domain.TeamRecord) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("%s · last %d", r.Team, r.Statistics.TotalMatches)) + "\n")
	b.WriteString(TeamLine(r) + "\n\n")

	if len(r.Matches) == 0 {
		b.WriteString(Dim("No finished matches found.") + "\n")
		return b.String()
	}

	rows := make([][]string, 0, len(r.Matches))
	for _, m := range r.Matches {
		venue := "H"
		if m.Venue == domain.VenueAway {
			venue = "A"
		}
		rows = append(rows, []string{
			MatchDate(m.Date),
			Dim(venue),
			m.Opponent,
			ResultStyle(m.Result).Render(fmt.Sprintf("%d-%d", m.GoalsFor, m.GoalsAgainst)),
			ResultBadge(m.Result),
		})
	}
	b.WriteString(RenderTable([]string{"DATE", "H/A", "OPPONENT", "SCORE", ""}, rows))
	return b.String()
}

// FormatHeadToHead renders the meetings between two teams, totals first.
func FormatHeadToHead(r *domain.HeadToHeadRecord) string {
	s := r.Statistics
	var b strings.Builder
	b.WriteString(Header(r.Team1+" vs "+r.Team2) + "\n")
	b.WriteString(fmt.Sprintf("%s %s  %s %s  %s %s  %s %d:%d\n\n",
		Bold(r.Team1), StyleGreen.Render(strconv.Itoa(s.Team1Wins)),
		Dim("draws"), StyleYellow.Render(strconv.Itoa(s.Draws)),
		Bold(r.Team2), StyleGreen.Render(strconv.Itoa(s.Team2Wins)),
		Dim("goals"), s.Team1Goals, s.Team2Goals))

	if len(r.Matches) == 0 {
		b.WriteString(Dim("No meetings found.") + "\n")
		return b.String()
	}
	rows := make([][]string, 0, len(r.Matches))
	for _, m := range r.Matches {
		rows = append(rows, []string{MatchDate(m.Date), m.Home, m.Score, m.Away})
	}
	b.WriteString(RenderTable([]string{"DATE", "HOME", "SCORE", "AWAY"}, rows))
	return b.String()
}

// FormatUpcoming renders scheduled fixtures for a team.
func FormatUpcoming(team string, matches []domain.UpcomingMatch) string {
	var b strings.Builder
	b.WriteString(Header("Next matches · "+team) + "\n")
	if len(matches) == 0 {
		b.WriteString(Dim("No scheduled matches.") + "\n")
		return b.String()
	}
	rows := make([][]string, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, []string{MatchDate(m.Date), m.HomeTeam, m.AwayTeam, Dim(m.League), Dim(strconv.Itoa(m.FixtureID))})
	}
	b.WriteString(RenderTable([]string{"DATE", "HOME", "AWAY", "LEAGUE", "FIXTURE"}, rows))
	return b.String()
}

// FormatFixtures renders a league fixture listing.
func FormatFixtures(fixtures []domain.FixtureSummary) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Fixtures · %d", len(fixtures))) + "\n")
	if len(fixtures) == 0 {
		b.WriteString(Dim("No fixtures found.") + "\n")
		return b.String()
	}
	rows := make([][]string, 0, len(fixtures))
	for _, f := range fixtures {
		score := Dim("-")
		if f.Score.Home != nil && f.Score.Away != nil {
			score = fmt.Sprintf("%d-%d", *f.Score.Home, *f.Score.Away)
		}
		rows = append(rows, []string{MatchDate(f.Date), f.HomeTeam, score, f.AwayTeam, Dim(f.Status), Dim(strconv.Itoa(f.FixtureID))})
	}
	b.WriteString(RenderTable([]string{"DATE", "HOME", "SCORE", "AWAY", "STATUS", "FIXTURE"}, rows))
	return b.String()
}

type teamStatistics struct {
	Team struct {
		Name string `json:"name"`
	} `json:"team"`
	Statistics []struct {
		Type  string `json:"type"`
		Value any    `json:"value"`
	} `json:"statistics"`
}

// FormatMatchStatistics renders the provider's per-team fixture statistics
// side by side. Payloads of another shape are printed as indented JSON.
func FormatMatchStatistics(fixtureID int, raw json.RawMessage) string {
	header := Header(fmt.Sprintf("Fixture %d statistics", fixtureID)) + "\n"

	var teams []teamStatistics
	if err := json.Unmarshal(raw, &teams); err != nil || len(teams) == 0 {
		if len(teams) == 0 && err == nil {
			return header + Dim("No statistics available.") + "\n"
		}
		var pretty strings.Builder
		var v any
		if json.Unmarshal(raw, &v) == nil {
			out, _ := json.MarshalIndent(v, "", "  ")
			pretty.Write(out)
		} else {
			pretty.Write(raw)
		}
		return header + pretty.String() + "\n"
	}

	var order []string
	values := map[string][]string{}
	for i, t := range teams {
		for _, s := range t.Statistics {
			if _, ok := values[s.Type]; !ok {
				order = append(order, s.Type)
				values[s.Type] = make([]string, len(teams))
			}
			values[s.Type][i] = inlineValue(s.Value)
		}
	}

	headers := []string{"STAT"}
	for _, t := range teams {
		headers = append(headers, strings.ToUpper(t.Team.Name))
	}
	rows := make([][]string, 0, len(order))
	for _, k := range order {
		rows = append(rows, append([]string{Dim(k)}, values[k]...))
	}
	return header + RenderTable(headers, rows)
}
