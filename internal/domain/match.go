package domain

import "github.com/shopspring/decimal"

type Venue string

const (
	VenueHome Venue = "home"
	VenueAway Venue = "away"
)

type MatchResult string

const (
	ResultWin  MatchResult = "win"
	ResultDraw MatchResult = "draw"
	ResultLoss MatchResult = "loss"
)

// ResultFor classifies a score from the perspective of the team that
// scored goalsFor.
func ResultFor(goalsFor, goalsAgainst int) MatchResult {
	switch {
	case goalsFor > goalsAgainst:
		return ResultWin
	case goalsFor < goalsAgainst:
		return ResultLoss
	default:
		return ResultDraw
	}
}

// MatchSummary is one finished fixture seen from a single team's side.
type MatchSummary struct {
	FixtureID    int         `json:"fixture_id"`
	Date         string      `json:"date"`
	Opponent     string      `json:"opponent"`
	Venue        Venue       `json:"home_away"`
	Result       MatchResult `json:"result"`
	Score        string      `json:"score"`
	GoalsFor     int         `json:"team_goals"`
	GoalsAgainst int         `json:"opponent_goals"`
}

// Goals dereferences a nullable score, counting a missing value as zero.
func Goals(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

// exactFloatExp is below any float64 exponent, so NewFromFloatWithExponent
// keeps every binary digit of its input.
const exactFloatExp = -1100

// ratio divides num by max(den, 1) in float64 and rounds the exact binary
// quotient half-to-even to places. 1/40 is stored just above 0.025, so it
// rounds to 0.03.
func ratio(num, den int, places int32) float64 {
	if den < 1 {
		den = 1
	}
	q := float64(num) / float64(den)
	return decimal.NewFromFloatWithExponent(q, exactFloatExp).
		RoundBank(places).
		InexactFloat64()
}
