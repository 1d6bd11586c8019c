package formatter

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/matchday/internal/domain"
)

func TestFormatTeamRecord(t *testing.T) {
	r := domain.NewTeamRecord("Flamengo", 127)
	r.AddMatch(1, "2024-05-01T19:00:00+00:00", "Palmeiras", domain.VenueHome, 2, 1)
	r.AddMatch(2, "2024-05-08T21:30:00+00:00", "Santos", domain.VenueAway, 0, 0)

	out := stripANSI(FormatTeamRecord(r))

	assert.Contains(t, out, "FLAMENGO · LAST 2")
	assert.Contains(t, out, "Flamengo 1-1-0")
	assert.Contains(t, out, "2024-05-01 19:00")
	assert.Contains(t, out, "Palmeiras")
	assert.Contains(t, out, "2-1")
	assert.Contains(t, out, "66.7% pts")
}

func TestFormatTeamRecord_NoMatches(t *testing.T) {
	out := stripANSI(FormatTeamRecord(domain.NewTeamRecord("Ghost", 1)))
	assert.Contains(t, out, "No finished matches found.")
	assert.Contains(t, out, "0.0% pts")
}

func TestFormatHeadToHead(t *testing.T) {
	r := domain.NewHeadToHeadRecord("Corinthians", "Santos")
	r.AddMatch(1, "2024-03-01T00:00:00+00:00", "Santos", "Corinthians", 1, 2, false)

	out := stripANSI(FormatHeadToHead(r))
	assert.Contains(t, out, "CORINTHIANS VS SANTOS")
	assert.Contains(t, out, "2024-03-01")
	assert.Contains(t, out, "goals 2:1")
}

func TestFormatFixtures_MissingScore(t *testing.T) {
	home := 3
	out := stripANSI(FormatFixtures([]domain.FixtureSummary{
		{FixtureID: 9, Date: "2024-06-01T16:00:00+00:00", HomeTeam: "Bahia", AwayTeam: "Grêmio", Score: domain.Score{Home: &home}, Status: "PST"},
	}))
	assert.Contains(t, out, "FIXTURES · 1")
	assert.Contains(t, out, "Bahia")
	assert.Contains(t, out, "PST")
	assert.NotContains(t, out, "3-")
}

func TestFormatMatchStatistics(t *testing.T) {
	raw := json.RawMessage(`[
		{"team":{"name":"Flamengo"},"statistics":[{"type":"Shots on Goal","value":6},{"type":"Ball Possession","value":"58%"}]},
		{"team":{"name":"Palmeiras"},"statistics":[{"type":"Shots on Goal","value":2},{"type":"Ball Possession","value":"42%"}]}
	]`)

	out := stripANSI(FormatMatchStatistics(42, raw))
	assert.Contains(t, out, "FIXTURE 42 STATISTICS")
	assert.Contains(t, out, "FLAMENGO")

	var possession string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "Ball Possession") {
			possession = line
		}
	}
	assert.Contains(t, possession, "58%")
	assert.Contains(t, possession, "42%")

	assert.Contains(t, stripANSI(FormatMatchStatistics(1, json.RawMessage(`[]`))), "No statistics available.")
	assert.Contains(t, stripANSI(FormatMatchStatistics(1, json.RawMessage(`{"x":1}`))), `"x": 1`)
}

func TestFormatHistory(t *testing.T) {
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	out := stripANSI(FormatHistory([]*domain.Question{
		{Text: "Como está o Flamengo?", Outcome: "answer", Source: "cli", AskedAt: now.Add(-5 * time.Minute)},
		{Text: "???", Outcome: "extraction_failed", Source: "http", AskedAt: now.Add(-48 * time.Hour)},
	}, now))

	assert.Contains(t, out, "5m ago")
	assert.Contains(t, out, "Como está o Flamengo?")
	assert.Contains(t, out, "extraction_failed")
	assert.Contains(t, out, "Jun 29, 2024")

	assert.Contains(t, stripANSI(FormatHistory(nil, now)), "No questions asked yet.")
}
