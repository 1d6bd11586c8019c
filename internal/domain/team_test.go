package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTeamRecord_ZeroMatches(t *testing.T) {
	r := NewTeamRecord("Flamengo", 127)

	assert.Empty(t, r.Matches)
	assert.Equal(t, 0, r.Statistics.TotalMatches)
	assert.Equal(t, 0.0, r.Statistics.AvgGoalsFor)
	assert.Equal(t, 0.0, r.Statistics.AvgGoalsAgainst)
	assert.Equal(t, 0.0, r.Statistics.PointsPct)
}

func TestTeamRecord_ThreeWinsTwoDraws(t *testing.T) {
	r := NewTeamRecord("Palmeiras", 121)
	r.AddMatch(1, "2024-05-01", "Santos", VenueHome, 2, 0)
	r.AddMatch(2, "2024-05-08", "Bahia", VenueAway, 1, 0)
	r.AddMatch(3, "2024-05-15", "Grêmio", VenueHome, 3, 1)
	r.AddMatch(4, "2024-05-22", "Vasco", VenueAway, 1, 1)
	r.AddMatch(5, "2024-05-29", "Fortaleza", VenueHome, 0, 0)

	s := r.Statistics
	assert.Equal(t, 5, s.TotalMatches)
	assert.Equal(t, 3, s.Wins)
	assert.Equal(t, 2, s.Draws)
	assert.Equal(t, 0, s.Losses)
	assert.Equal(t, 7, s.GoalsFor)
	assert.Equal(t, 2, s.GoalsAgainst)
	assert.Equal(t, 1.4, s.AvgGoalsFor)
	assert.Equal(t, 0.4, s.AvgGoalsAgainst)
	assert.Equal(t, 73.3, s.PointsPct)
}

func TestTeamRecord_MatchSummary(t *testing.T) {
	r := NewTeamRecord("Santos", 128)
	r.AddMatch(99, "2024-06-01T19:00:00+00:00", "Corinthians", VenueAway, 1, 3)

	require.Len(t, r.Matches, 1)
	m := r.Matches[0]
	assert.Equal(t, ResultLoss, m.Result)
	assert.Equal(t, "1-3", m.Score)
	assert.Equal(t, VenueAway, m.Venue)
	assert.Equal(t, 1, r.Statistics.Losses)
}

func TestTeamStatistics_Rounding(t *testing.T) {
	r := NewTeamRecord("Cruzeiro", 135)
	r.AddMatch(1, "d1", "A", VenueHome, 1, 0)
	r.AddMatch(2, "d2", "B", VenueHome, 0, 1)
	r.AddMatch(3, "d3", "C", VenueHome, 0, 0)

	assert.Equal(t, 0.33, r.Statistics.AvgGoalsFor)
	assert.Equal(t, 44.4, r.Statistics.PointsPct)
}

func TestTeamStatistics_JSONNames(t *testing.T) {
	data, err := json.Marshal(NewTeamRecord("Bahia", 118).Statistics)
	require.NoError(t, err)

	for _, key := range []string{
		"gols_marcados", "gols_sofridos", "vitorias", "empates", "derrotas",
		"total_jogos", "media_gols_marcados", "media_gols_sofridos", "aproveitamento",
	} {
		assert.Contains(t, string(data), `"`+key+`"`)
	}
}

func TestGoals_NilCountsAsZero(t *testing.T) {
	two := 2
	assert.Equal(t, 0, Goals(nil))
	assert.Equal(t, 2, Goals(&two))
}

func TestHeadToHead_Team1Perspective(t *testing.T) {
	r := NewHeadToHeadRecord("Flamengo", "Fluminense")
	r.AddMatch(1, "d1", "Flamengo", "Fluminense", 2, 1, true)
	r.AddMatch(2, "d2", "Fluminense", "Flamengo", 0, 3, false)
	r.AddMatch(3, "d3", "Fluminense", "Flamengo", 1, 1, false)
	r.AddMatch(4, "d4", "Fluminense", "Flamengo", 2, 0, false)

	s := r.Statistics
	assert.Equal(t, 2, s.Team1Wins)
	assert.Equal(t, 1, s.Team2Wins)
	assert.Equal(t, 1, s.Draws)
	assert.Equal(t, 6, s.Team1Goals)
	assert.Equal(t, 4, s.Team2Goals)
	assert.Equal(t, "0-3", r.Matches[1].Score)
}

func TestDataCollection_AllFailed(t *testing.T) {
	var empty DataCollection
	assert.True(t, empty.AllFailed())

	var c DataCollection
	c.AddTeamError("Nowhere FC", errors.New("team not found"))
	assert.True(t, c.AllFailed())

	c.AddTeam("Bahia", NewTeamRecord("Bahia", 118))
	assert.False(t, c.AllFailed())
	assert.Equal(t, []string{"team not found"}, c.Errors())
}

func TestDataCollection_JSONShape(t *testing.T) {
	var c DataCollection
	c.AddTeam("Bahia", NewTeamRecord("Bahia", 118))
	c.AddTeamError("Nowhere FC", errors.New("boom"))
	c.AddHeadToHeadError(errors.New("h2h failed"))

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 3)

	assert.Equal(t, "Bahia", got[0]["team"])
	assert.Contains(t, got[0]["data"], "statistics")

	assert.Equal(t, "Nowhere FC", got[1]["team"])
	assert.Equal(t, map[string]any{"error": "boom"}, got[1]["data"])

	assert.Equal(t, "head_to_head", got[2]["type"])
	assert.NotContains(t, got[2], "team")
	assert.Equal(t, map[string]any{"error": "h2h failed"}, got[2]["data"])
}

func TestDataCollection_EmptyMarshalsAsArray(t *testing.T) {
	data, err := json.Marshal(&DataCollection{})
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestRatio_RoundsBinaryQuotient(t *testing.T) {
	tests := []struct {
		name     string
		num, den int
		places   int32
		want     float64
	}{
		{"inexact tie rounds up", 1, 40, 2, 0.03},
		{"exact tie rounds to even", 1, 8, 2, 0.12},
		{"exact tie rounds to even upward", 3, 8, 2, 0.38},
		{"zero denominator floored", 3, 0, 2, 3},
		{"points percentage", 1100, 15, 1, 73.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ratio(tt.num, tt.den, tt.places))
		})
	}
}

func TestTeamStatistics_OneGoalInFortyMatches(t *testing.T) {
	r := NewTeamRecord("Cuiabá", 1193)
	for i := 0; i < 40; i++ {
		goals := 0
		if i == 0 {
			goals = 1
		}
		r.AddMatch(i+1, "d", "X", VenueHome, goals, 0)
	}

	assert.Equal(t, 0.03, r.Statistics.AvgGoalsFor)
}
