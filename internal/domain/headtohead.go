package domain

import "fmt"

type HeadToHeadMatch struct {
	FixtureID int    `json:"fixture_id"`
	Date      string `json:"date"`
	Home      string `json:"home"`
	Away      string `json:"away"`
	Score     string `json:"score"`
}

type HeadToHeadStatistics struct {
	Team1Wins  int `json:"vitorias_team1"`
	Team2Wins  int `json:"vitorias_team2"`
	Draws      int `json:"empates"`
	Team1Goals int `json:"gols_team1"`
	Team2Goals int `json:"gols_team2"`
}

// HeadToHeadRecord holds the recent meetings between two teams, with totals
// from team1's perspective.
type HeadToHeadRecord struct {
	Team1      string               `json:"team1"`
	Team2      string               `json:"team2"`
	Matches    []HeadToHeadMatch    `json:"matches"`
	Statistics HeadToHeadStatistics `json:"statistics"`
}

func NewHeadToHeadRecord(team1, team2 string) *HeadToHeadRecord {
	return &HeadToHeadRecord{Team1: team1, Team2: team2, Matches: []HeadToHeadMatch{}}
}

// AddMatch records one meeting. team1Home says which side of the fixture
// team1 played on.
func (r *HeadToHeadRecord) AddMatch(fixtureID int, date, home, away string, homeGoals, awayGoals int, team1Home bool) {
	t1, t2 := awayGoals, homeGoals
	if team1Home {
		t1, t2 = homeGoals, awayGoals
	}

	s := &r.Statistics
	s.Team1Goals += t1
	s.Team2Goals += t2
	switch ResultFor(t1, t2) {
	case ResultWin:
		s.Team1Wins++
	case ResultLoss:
		s.Team2Wins++
	default:
		s.Draws++
	}

	r.Matches = append(r.Matches, HeadToHeadMatch{
		FixtureID: fixtureID,
		Date:      date,
		Home:      home,
		Away:      away,
		Score:     fmt.Sprintf("%d-%d", homeGoals, awayGoals),
	})
}
