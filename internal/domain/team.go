package domain

import "fmt"

// TeamStatistics aggregates a team's recent finished matches. The JSON names
// are the ones the synthesis prompt refers to.
type TeamStatistics struct {
	GoalsFor        int     `json:"gols_marcados"`
	GoalsAgainst    int     `json:"gols_sofridos"`
	Wins            int     `json:"vitorias"`
	Draws           int     `json:"empates"`
	Losses          int     `json:"derrotas"`
	TotalMatches    int     `json:"total_jogos"`
	AvgGoalsFor     float64 `json:"media_gols_marcados"`
	AvgGoalsAgainst float64 `json:"media_gols_sofridos"`
	PointsPct       float64 `json:"aproveitamento"`
}

// TeamRecord is the gateway's answer for a team's recent matches.
type TeamRecord struct {
	Team       string         `json:"team"`
	TeamID     int            `json:"team_id"`
	Matches    []MatchSummary `json:"matches"`
	Statistics TeamStatistics `json:"statistics"`
}

// NewTeamRecord returns an empty record whose derived statistics are already
// consistent (all zero).
func NewTeamRecord(team string, teamID int) *TeamRecord {
	r := &TeamRecord{Team: team, TeamID: teamID, Matches: []MatchSummary{}}
	r.Statistics.recompute()
	return r
}

// AddMatch appends a finished match and updates the running totals.
func (r *TeamRecord) AddMatch(fixtureID int, date, opponent string, venue Venue, goalsFor, goalsAgainst int) {
	result := ResultFor(goalsFor, goalsAgainst)
	r.Matches = append(r.Matches, MatchSummary{
		FixtureID:    fixtureID,
		Date:         date,
		Opponent:     opponent,
		Venue:        venue,
		Result:       result,
		Score:        fmt.Sprintf("%d-%d", goalsFor, goalsAgainst),
		GoalsFor:     goalsFor,
		GoalsAgainst: goalsAgainst,
	})

	s := &r.Statistics
	s.GoalsFor += goalsFor
	s.GoalsAgainst += goalsAgainst
	switch result {
	case ResultWin:
		s.Wins++
	case ResultDraw:
		s.Draws++
	case ResultLoss:
		s.Losses++
	}
	s.TotalMatches = len(r.Matches)
	s.recompute()
}

// recompute refreshes the averages and the points percentage. A team with no
// matches gets 0.0 everywhere.
func (s *TeamStatistics) recompute() {
	s.AvgGoalsFor = ratio(s.GoalsFor, s.TotalMatches, 2)
	s.AvgGoalsAgainst = ratio(s.GoalsAgainst, s.TotalMatches, 2)
	s.PointsPct = ratio((3*s.Wins+s.Draws)*100, 3*max(s.TotalMatches, 1), 1)
}
