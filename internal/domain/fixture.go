package domain

type UpcomingMatch struct {
	FixtureID int    `json:"fixture_id"`
	Date      string `json:"date"`
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	League    string `json:"league"`
}

// Score is a fulltime score as reported by the provider; either side may be
// missing for abandoned or unplayed fixtures.
type Score struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

// FixtureSummary is one row of a league fixture listing.
type FixtureSummary struct {
	FixtureID int    `json:"fixture_id"`
	Date      string `json:"date"`
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	Score     Score  `json:"score"`
	Status    string `json:"status"`
}
