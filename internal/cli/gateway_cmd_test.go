package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/matchday/internal/domain"
	"github.com/alexanderramin/matchday/internal/football"
)

func TestTeamCmd_UsesDefaults(t *testing.T) {
	gw := &fakeGateway{record: sampleRecord()}
	out, err := execute(t, newTestApp(nil, gw), "team", "Flamengo")

	require.NoError(t, err)
	assert.Equal(t, "Flamengo", gw.recentQuery.Team)
	assert.Equal(t, 2022, gw.recentQuery.Season)
	assert.Equal(t, 10, gw.recentQuery.LastN)
	assert.Nil(t, gw.recentQuery.LeagueID)
	assert.Contains(t, out, "Flamengo")
}

func TestTeamCmd_FlagsOverrideDefaults(t *testing.T) {
	gw := &fakeGateway{record: sampleRecord()}
	_, err := execute(t, newTestApp(nil, gw), "team", "Flamengo", "-n", "5", "--league", "71", "--season", "2024")

	require.NoError(t, err)
	assert.Equal(t, 5, gw.recentQuery.LastN)
	assert.Equal(t, 2024, gw.recentQuery.Season)
	require.NotNil(t, gw.recentQuery.LeagueID)
	assert.Equal(t, 71, *gw.recentQuery.LeagueID)
}

func TestTeamCmd_JSON(t *testing.T) {
	gw := &fakeGateway{record: sampleRecord()}
	out, err := execute(t, newTestApp(nil, gw), "team", "Flamengo", "-o", "json")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.NotEmpty(t, got)
}

func TestTeamCmd_GatewayError(t *testing.T) {
	gw := &fakeGateway{err: &football.TeamNotFoundError{Name: "Nowhere FC"}}
	_, err := execute(t, newTestApp(nil, gw), "team", "Nowhere FC")

	var notFound *football.TeamNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Nowhere FC", notFound.Name)
}

func TestGatewayCmds_NotConfigured(t *testing.T) {
	app := newTestApp(nil, nil)
	app.GatewayErr = football.ErrMissingAPIKey

	_, err := execute(t, app, "team", "Flamengo")
	require.ErrorIs(t, err, football.ErrMissingAPIKey)
	assert.Contains(t, err.Error(), "FOOTBALL_API_KEY")
}

func TestH2HCmd(t *testing.T) {
	rec := domain.NewHeadToHeadRecord("Flamengo", "Palmeiras")
	rec.AddMatch(1, "2024-05-01T19:00:00+00:00", "Flamengo", "Palmeiras", 2, 1, true)
	gw := &fakeGateway{h2h: rec}

	out, err := execute(t, newTestApp(nil, gw), "h2h", "Flamengo", "Palmeiras")
	require.NoError(t, err)
	assert.Contains(t, out, "FLAMENGO VS PALMEIRAS")
}

func TestH2HCmd_RequiresTwoTeams(t *testing.T) {
	_, err := execute(t, newTestApp(nil, &fakeGateway{}), "h2h", "Flamengo")
	assert.Error(t, err)
}

func TestUpcomingCmd(t *testing.T) {
	gw := &fakeGateway{upcoming: []domain.UpcomingMatch{
		{FixtureID: 9, Date: "2024-07-14T21:00:00+00:00", HomeTeam: "Flamengo", AwayTeam: "Santos", League: "Serie A"},
	}}
	out, err := execute(t, newTestApp(nil, gw), "upcoming", "Flamengo")

	require.NoError(t, err)
	assert.Equal(t, 5, gw.nextN)
	assert.Contains(t, out, "Santos")
}

func TestStatsCmd_RejectsBadID(t *testing.T) {
	gw := &fakeGateway{}
	for _, arg := range []string{"abc", "0", "-3"} {
		_, err := execute(t, newTestApp(nil, gw), "stats", "--", arg)
		assert.Error(t, err, arg)
	}
}

func TestStatsCmd(t *testing.T) {
	gw := &fakeGateway{stats: json.RawMessage(`[]`)}
	out, err := execute(t, newTestApp(nil, gw), "stats", "1035046")
	require.NoError(t, err)
	assert.Contains(t, out, "1035046")
}

func TestFixturesCmd(t *testing.T) {
	home, away := 2, 0
	gw := &fakeGateway{fixtures: []domain.FixtureSummary{
		{FixtureID: 1, Date: "2022-05-01T19:00:00+00:00", HomeTeam: "Flamengo", AwayTeam: "Goiás",
			Score: domain.Score{Home: &home, Away: &away}, Status: "FT"},
	}}
	out, err := execute(t, newTestApp(nil, gw), "fixtures", "--league", "71", "--from", "2022-05-01", "--to", "2022-05-31")

	require.NoError(t, err)
	assert.Equal(t, football.FixturesQuery{LeagueID: 71, Season: 2022, From: "2022-05-01", To: "2022-05-31"}, gw.fixturesQuery)
	assert.Contains(t, out, "Goiás")
}

func TestFixturesCmd_Validation(t *testing.T) {
	gw := &fakeGateway{}
	_, err := execute(t, newTestApp(nil, gw), "fixtures")
	assert.ErrorContains(t, err, "--league")

	_, err = execute(t, newTestApp(nil, gw), "fixtures", "--league", "71", "--from", "01/05/2022")
	assert.ErrorContains(t, err, "YYYY-MM-DD")
}
