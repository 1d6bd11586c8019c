package football

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/matchday/internal/domain"
)

// fakeAPI is a minimal api-sports v3 stand-in keyed by path.
type fakeAPI struct {
	mu       sync.Mutex
	teams    map[string]int
	fixtures map[string]string // path -> response array JSON
	status   int
	errors   string
	requests []*http.Request
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		teams:    map[string]int{},
		fixtures: map[string]string{},
		status:   http.StatusOK,
		errors:   "[]",
	}
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r)
	f.mu.Unlock()

	if r.Header.Get("x-apisports-key") != "test-key" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if f.status != http.StatusOK {
		w.WriteHeader(f.status)
		_, _ = w.Write([]byte(`{"message":"rate limited"}`))
		return
	}

	response := "[]"
	switch r.URL.Path {
	case "/teams":
		name := r.URL.Query().Get("search")
		if id, ok := f.teams[name]; ok {
			response = fmt.Sprintf(`[{"team":{"id":%d,"name":%q}}]`, id, name)
		}
	default:
		if body, ok := f.fixtures[r.URL.Path]; ok {
			response = body
		}
	}
	_, _ = fmt.Fprintf(w, `{"errors":%s,"results":1,"response":%s}`, f.errors, response)
}

func (f *fakeAPI) lastQuery(path string) map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.requests) - 1; i >= 0; i-- {
		if f.requests[i].URL.Path == path {
			out := map[string]string{}
			for k, v := range f.requests[i].URL.Query() {
				out[k] = v[0]
			}
			return out
		}
	}
	return nil
}

func fixtureJSON(id int, homeID int, home string, awayID int, away string, homeGoals, awayGoals any) string {
	return fmt.Sprintf(`{
		"fixture":{"id":%d,"date":"2024-05-%02dT19:00:00+00:00","status":{"short":"FT"}},
		"league":{"id":71,"name":"Serie A"},
		"teams":{"home":{"id":%d,"name":%q},"away":{"id":%d,"name":%q}},
		"score":{"fulltime":{"home":%v,"away":%v}}
	}`, id, id%28+1, homeID, home, awayID, away, homeGoals, awayGoals)
}

func fixtureList(items ...string) string {
	return "[" + strings.Join(items, ",") + "]"
}

func newTestClient(t *testing.T, api *fakeAPI) *Client {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	c, err := NewClient(ClientConfig{BaseURL: srv.URL + "/", APIKey: "test-key"})
	require.NoError(t, err)
	return c
}

func TestNewClient_MissingAPIKey(t *testing.T) {
	_, err := NewClient(ClientConfig{APIKey: "  "})

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestNewClient_Defaults(t *testing.T) {
	c, err := NewClient(ClientConfig{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.baseURL)
	assert.Equal(t, DefaultH2HLast, c.h2hLast)
}

func TestResolveTeamID(t *testing.T) {
	api := newFakeAPI()
	api.teams["Flamengo"] = 127
	c := newTestClient(t, api)

	id, err := c.ResolveTeamID(context.Background(), "Flamengo")
	require.NoError(t, err)
	assert.Equal(t, 127, id)

	_, err = c.ResolveTeamID(context.Background(), "Nowhere FC")
	var nf *TeamNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Nowhere FC", nf.Name)
}

func TestRecentMatches_ZeroFixtures(t *testing.T) {
	api := newFakeAPI()
	api.teams["Bahia"] = 118
	c := newTestClient(t, api)

	record, err := c.RecentMatches(context.Background(), RecentMatchesQuery{Team: "Bahia", Season: 2024})
	require.NoError(t, err)

	assert.Equal(t, 0, record.Statistics.TotalMatches)
	assert.Equal(t, 0.0, record.Statistics.AvgGoalsFor)
	assert.Equal(t, 0.0, record.Statistics.AvgGoalsAgainst)
	assert.Equal(t, 0.0, record.Statistics.PointsPct)
}

func TestRecentMatches_ThreeWinsTwoDraws(t *testing.T) {
	api := newFakeAPI()
	api.teams["Palmeiras"] = 121
	api.fixtures["/fixtures"] = fixtureList(
		fixtureJSON(1, 121, "Palmeiras", 128, "Santos", 2, 0),
		fixtureJSON(2, 118, "Bahia", 121, "Palmeiras", 0, 1),
		fixtureJSON(3, 121, "Palmeiras", 130, "Grêmio", 3, 1),
		fixtureJSON(4, 133, "Vasco", 121, "Palmeiras", 1, 1),
		fixtureJSON(5, 121, "Palmeiras", 154, "Fortaleza", 0, 0),
	)
	c := newTestClient(t, api)

	league := 71
	record, err := c.RecentMatches(context.Background(), RecentMatchesQuery{
		Team: "Palmeiras", LeagueID: &league, Season: 2024, LastN: 5,
	})
	require.NoError(t, err)

	assert.Equal(t, 121, record.TeamID)
	assert.Equal(t, 3, record.Statistics.Wins)
	assert.Equal(t, 2, record.Statistics.Draws)
	assert.Equal(t, 73.3, record.Statistics.PointsPct)
	assert.Equal(t, 1.4, record.Statistics.AvgGoalsFor)

	require.Len(t, record.Matches, 5)
	assert.Equal(t, 1, record.Matches[0].FixtureID)
	assert.Equal(t, domain.VenueAway, record.Matches[1].Venue)
	assert.Equal(t, "Bahia", record.Matches[1].Opponent)
	assert.Equal(t, "1-0", record.Matches[1].Score)

	q := api.lastQuery("/fixtures")
	assert.Equal(t, "121", q["team"])
	assert.Equal(t, "2024", q["season"])
	assert.Equal(t, "5", q["last"])
	assert.Equal(t, "FT", q["status"])
	assert.Equal(t, "71", q["league"])
}

func TestRecentMatches_SideDecidedByTeamID(t *testing.T) {
	// The search resolved "Atletico" but the provider spells it differently
	// in fixtures; the id still places the team on the away side.
	api := newFakeAPI()
	api.teams["Atletico"] = 1062
	api.fixtures["/fixtures"] = fixtureList(
		fixtureJSON(7, 127, "Flamengo", 1062, "Atletico-MG", 0, 2),
	)
	c := newTestClient(t, api)

	record, err := c.RecentMatches(context.Background(), RecentMatchesQuery{Team: "Atletico"})
	require.NoError(t, err)
	require.Len(t, record.Matches, 1)
	assert.Equal(t, domain.ResultWin, record.Matches[0].Result)
	assert.Equal(t, "Flamengo", record.Matches[0].Opponent)

	assert.Equal(t, "10", api.lastQuery("/fixtures")["last"])
	assert.NotContains(t, api.lastQuery("/fixtures"), "league")
}

func TestRecentMatches_NullScoresCountAsZero(t *testing.T) {
	api := newFakeAPI()
	api.teams["Bahia"] = 118
	api.fixtures["/fixtures"] = fixtureList(fixtureJSON(1, 118, "Bahia", 2, "X", "null", 1))
	c := newTestClient(t, api)

	record, err := c.RecentMatches(context.Background(), RecentMatchesQuery{Team: "Bahia"})
	require.NoError(t, err)
	assert.Equal(t, domain.ResultLoss, record.Matches[0].Result)
	assert.Equal(t, "0-1", record.Matches[0].Score)
}

func TestRecentMatches_TeamNotFound(t *testing.T) {
	c := newTestClient(t, newFakeAPI())

	_, err := c.RecentMatches(context.Background(), RecentMatchesQuery{Team: "Ghost"})
	var nf *TeamNotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestHeadToHead(t *testing.T) {
	api := newFakeAPI()
	api.teams["Flamengo"] = 127
	api.teams["Fluminense"] = 124
	api.fixtures["/fixtures/headtohead"] = fixtureList(
		fixtureJSON(1, 127, "Flamengo", 124, "Fluminense", 2, 1),
		fixtureJSON(2, 124, "Fluminense", 127, "Flamengo", 0, 3),
		fixtureJSON(3, 124, "Fluminense", 127, "Flamengo", 1, 1),
	)
	c := newTestClient(t, api)

	record, err := c.HeadToHead(context.Background(), "Flamengo", "Fluminense")
	require.NoError(t, err)

	assert.Equal(t, "Flamengo", record.Team1)
	assert.Equal(t, 2, record.Statistics.Team1Wins)
	assert.Equal(t, 0, record.Statistics.Team2Wins)
	assert.Equal(t, 1, record.Statistics.Draws)
	assert.Equal(t, 6, record.Statistics.Team1Goals)
	assert.Equal(t, 2, record.Statistics.Team2Goals)

	q := api.lastQuery("/fixtures/headtohead")
	assert.Equal(t, "127-124", q["h2h"])
	assert.Equal(t, "10", q["last"])
}

func TestHeadToHead_UnknownTeam(t *testing.T) {
	api := newFakeAPI()
	api.teams["Flamengo"] = 127
	c := newTestClient(t, api)

	_, err := c.HeadToHead(context.Background(), "Flamengo", "Ghost")
	var nf *TeamNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Ghost", nf.Name)
}

func TestUpcomingMatches(t *testing.T) {
	api := newFakeAPI()
	api.teams["Grêmio"] = 130
	api.fixtures["/fixtures"] = fixtureList(fixtureJSON(10, 130, "Grêmio", 131, "Internacional", "null", "null"))
	c := newTestClient(t, api)

	upcoming, err := c.UpcomingMatches(context.Background(), "Grêmio", 0)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "Internacional", upcoming[0].AwayTeam)
	assert.Equal(t, "Serie A", upcoming[0].League)
	assert.Equal(t, "5", api.lastQuery("/fixtures")["next"])
}

func TestMatchStatistics_PassThrough(t *testing.T) {
	api := newFakeAPI()
	api.fixtures["/fixtures/statistics"] = `[{"team":{"id":1},"statistics":[{"type":"Shots on Goal","value":5}]}]`
	c := newTestClient(t, api)

	raw, err := c.MatchStatistics(context.Background(), 99)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Len(t, decoded, 1)
	assert.Equal(t, "99", api.lastQuery("/fixtures/statistics")["fixture"])
}

func TestLeagueFixtures(t *testing.T) {
	api := newFakeAPI()
	api.fixtures["/fixtures"] = fixtureList(fixtureJSON(3, 1, "A", 2, "B", 2, 2))
	c := newTestClient(t, api)

	fixtures, err := c.LeagueFixtures(context.Background(), FixturesQuery{
		LeagueID: 71, Season: 2024, From: "2024-05-01", To: "2024-05-31",
	})
	require.NoError(t, err)
	require.Len(t, fixtures, 1)
	require.NotNil(t, fixtures[0].Score.Home)
	assert.Equal(t, 2, *fixtures[0].Score.Home)
	assert.Equal(t, "FT", fixtures[0].Status)

	q := api.lastQuery("/fixtures")
	assert.Equal(t, "71", q["league"])
	assert.Equal(t, "2024-05-01", q["from"])
	assert.Equal(t, "2024-05-31", q["to"])
}

func TestGatewayError_NonSuccessStatus(t *testing.T) {
	api := newFakeAPI()
	api.status = http.StatusTooManyRequests
	c := newTestClient(t, api)

	_, err := c.ResolveTeamID(context.Background(), "Flamengo")
	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, ActionResolveTeam, gwErr.Action)
	assert.Equal(t, http.StatusTooManyRequests, gwErr.Status)
	assert.Contains(t, gwErr.Error(), "rate limited")
}

func TestGatewayError_EnvelopeErrors(t *testing.T) {
	api := newFakeAPI()
	api.errors = `{"token":"Error/Missing application key."}`
	c := newTestClient(t, api)

	_, err := c.LeagueFixtures(context.Background(), FixturesQuery{LeagueID: 71})
	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Contains(t, gwErr.Detail, "Missing application key")
}

func TestGatewayError_UndecodableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>gateway</html>"))
	}))
	defer srv.Close()

	c, err := NewClient(ClientConfig{BaseURL: srv.URL, APIKey: "k"})
	require.NoError(t, err)

	_, err = c.ResolveTeamID(context.Background(), "x")
	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, "decode provider payload", gwErr.Detail)
}

func TestGatewayError_Transport(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewClient(ClientConfig{BaseURL: url, APIKey: "k"})
	require.NoError(t, err)

	_, err = c.ResolveTeamID(context.Background(), "x")
	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, 0, gwErr.Status)
}

type recordingObserver struct {
	events []CallEvent
}

func (r *recordingObserver) OnGatewayCall(e CallEvent) { r.events = append(r.events, e) }

func TestClient_ObserverSeesEveryCall(t *testing.T) {
	api := newFakeAPI()
	api.teams["Flamengo"] = 127
	srv := httptest.NewServer(api)
	defer srv.Close()

	obs := &recordingObserver{}
	c, err := NewClient(ClientConfig{BaseURL: srv.URL, APIKey: "test-key", Observer: obs})
	require.NoError(t, err)

	_, err = c.RecentMatches(context.Background(), RecentMatchesQuery{Team: "Flamengo"})
	require.NoError(t, err)

	require.Len(t, obs.events, 2)
	assert.Equal(t, ActionResolveTeam, obs.events[0].Action)
	assert.Equal(t, ActionRecentMatches, obs.events[1].Action)
	assert.True(t, obs.events[1].Success)
	assert.Equal(t, http.StatusOK, obs.events[1].Status)
}

func TestClient_ContextCancelled(t *testing.T) {
	c := newTestClient(t, newFakeAPI())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ResolveTeamID(ctx, "x")
	assert.True(t, errors.Is(err, context.Canceled))
}
