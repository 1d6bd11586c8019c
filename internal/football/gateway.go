package football

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/alexanderramin/matchday/internal/domain"
)

// Gateway is the sports-data surface used by the pipeline and the direct
// CLI commands.
type Gateway interface {
	ResolveTeamID(ctx context.Context, name string) (int, error)
	RecentMatches(ctx context.Context, q RecentMatchesQuery) (*domain.TeamRecord, error)
	HeadToHead(ctx context.Context, team1, team2 string) (*domain.HeadToHeadRecord, error)
	UpcomingMatches(ctx context.Context, team string, nextN int) ([]domain.UpcomingMatch, error)
	MatchStatistics(ctx context.Context, fixtureID int) (json.RawMessage, error)
	LeagueFixtures(ctx context.Context, q FixturesQuery) ([]domain.FixtureSummary, error)
}

type RecentMatchesQuery struct {
	Team     string
	LeagueID *int
	Season   int
	LastN    int
}

type FixturesQuery struct {
	LeagueID int
	Season   int
	From     string // YYYY-MM-DD, optional
	To       string // YYYY-MM-DD, optional
}

// ResolveTeamID returns the provider id of the first search hit for name.
func (c *Client) ResolveTeamID(ctx context.Context, name string) (int, error) {
	raw, err := c.get(ctx, ActionResolveTeam, "/teams", url.Values{"search": {name}})
	if err != nil {
		return 0, err
	}
	items, err := decodeList[apiTeamItem](ActionResolveTeam, raw)
	if err != nil {
		return 0, err
	}
	if len(items) == 0 || items[0].Team.ID == 0 {
		return 0, &TeamNotFoundError{Name: name}
	}
	return items[0].Team.ID, nil
}

// RecentMatches fetches the team's last finished fixtures and aggregates
// them in provider order.
func (c *Client) RecentMatches(ctx context.Context, q RecentMatchesQuery) (*domain.TeamRecord, error) {
	teamID, err := c.ResolveTeamID(ctx, q.Team)
	if err != nil {
		return nil, err
	}

	lastN := q.LastN
	if lastN <= 0 {
		lastN = DefaultLastN
	}
	params := url.Values{
		"team":   {strconv.Itoa(teamID)},
		"last":   {strconv.Itoa(lastN)},
		"status": {"FT"},
	}
	if q.Season > 0 {
		params.Set("season", strconv.Itoa(q.Season))
	}
	if q.LeagueID != nil {
		params.Set("league", strconv.Itoa(*q.LeagueID))
	}

	fixtures, err := c.fixtures(ctx, ActionRecentMatches, "/fixtures", params)
	if err != nil {
		return nil, err
	}

	record := domain.NewTeamRecord(q.Team, teamID)
	for _, f := range fixtures {
		home := f.isHome(teamID, q.Team)
		goalsFor, goalsAgainst := domain.Goals(f.Score.Fulltime.Away), domain.Goals(f.Score.Fulltime.Home)
		opponent, venue := f.Teams.Home.Name, domain.VenueAway
		if home {
			goalsFor, goalsAgainst = goalsAgainst, goalsFor
			opponent, venue = f.Teams.Away.Name, domain.VenueHome
		}
		record.AddMatch(f.Fixture.ID, f.Fixture.Date, opponent, venue, goalsFor, goalsAgainst)
	}
	return record, nil
}

// HeadToHead fetches recent meetings between two teams. Totals are from
// team1's perspective.
func (c *Client) HeadToHead(ctx context.Context, team1, team2 string) (*domain.HeadToHeadRecord, error) {
	id1, err := c.ResolveTeamID(ctx, team1)
	if err != nil {
		return nil, err
	}
	id2, err := c.ResolveTeamID(ctx, team2)
	if err != nil {
		return nil, err
	}

	params := url.Values{
		"h2h":  {fmt.Sprintf("%d-%d", id1, id2)},
		"last": {strconv.Itoa(c.h2hLast)},
	}
	fixtures, err := c.fixtures(ctx, ActionHeadToHead, "/fixtures/headtohead", params)
	if err != nil {
		return nil, err
	}

	record := domain.NewHeadToHeadRecord(team1, team2)
	for _, f := range fixtures {
		record.AddMatch(
			f.Fixture.ID,
			f.Fixture.Date,
			f.Teams.Home.Name,
			f.Teams.Away.Name,
			domain.Goals(f.Score.Fulltime.Home),
			domain.Goals(f.Score.Fulltime.Away),
			f.isHome(id1, team1),
		)
	}
	return record, nil
}

// UpcomingMatches lists the team's next scheduled fixtures.
func (c *Client) UpcomingMatches(ctx context.Context, team string, nextN int) ([]domain.UpcomingMatch, error) {
	teamID, err := c.ResolveTeamID(ctx, team)
	if err != nil {
		return nil, err
	}
	if nextN <= 0 {
		nextN = DefaultNextN
	}

	params := url.Values{
		"team": {strconv.Itoa(teamID)},
		"next": {strconv.Itoa(nextN)},
	}
	fixtures, err := c.fixtures(ctx, ActionUpcomingMatches, "/fixtures", params)
	if err != nil {
		return nil, err
	}

	out := make([]domain.UpcomingMatch, 0, len(fixtures))
	for _, f := range fixtures {
		out = append(out, domain.UpcomingMatch{
			FixtureID: f.Fixture.ID,
			Date:      f.Fixture.Date,
			HomeTeam:  f.Teams.Home.Name,
			AwayTeam:  f.Teams.Away.Name,
			League:    f.League.Name,
		})
	}
	return out, nil
}

// MatchStatistics passes the provider's per-team statistics for a fixture
// through untouched.
func (c *Client) MatchStatistics(ctx context.Context, fixtureID int) (json.RawMessage, error) {
	raw, err := c.get(ctx, ActionMatchStatistics, "/fixtures/statistics", url.Values{"fixture": {strconv.Itoa(fixtureID)}})
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return json.RawMessage("[]"), nil
	}
	return raw, nil
}

// LeagueFixtures lists finished fixtures of a league season, optionally
// bounded by a date range.
func (c *Client) LeagueFixtures(ctx context.Context, q FixturesQuery) ([]domain.FixtureSummary, error) {
	params := url.Values{
		"league": {strconv.Itoa(q.LeagueID)},
		"status": {"FT"},
	}
	if q.Season > 0 {
		params.Set("season", strconv.Itoa(q.Season))
	}
	if q.From != "" {
		params.Set("from", q.From)
	}
	if q.To != "" {
		params.Set("to", q.To)
	}

	fixtures, err := c.fixtures(ctx, ActionLeagueFixtures, "/fixtures", params)
	if err != nil {
		return nil, err
	}

	out := make([]domain.FixtureSummary, 0, len(fixtures))
	for _, f := range fixtures {
		out = append(out, domain.FixtureSummary{
			FixtureID: f.Fixture.ID,
			Date:      f.Fixture.Date,
			HomeTeam:  f.Teams.Home.Name,
			AwayTeam:  f.Teams.Away.Name,
			Score:     f.Score.Fulltime,
			Status:    f.Fixture.Status.Short,
		})
	}
	return out, nil
}

func (c *Client) fixtures(ctx context.Context, action Action, path string, params url.Values) ([]apiFixture, error) {
	raw, err := c.get(ctx, action, path, params)
	if err != nil {
		return nil, err
	}
	return decodeList[apiFixture](action, raw)
}
