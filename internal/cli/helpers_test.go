package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/matchday/internal/contract"
	"github.com/alexanderramin/matchday/internal/domain"
	"github.com/alexanderramin/matchday/internal/football"
	"github.com/alexanderramin/matchday/internal/intelligence"
	"github.com/alexanderramin/matchday/internal/testutil"
)

var testNow = time.Date(2024, 7, 11, 12, 0, 0, 0, time.UTC)

// fakeAsk answers every question with result, or honours a cancelled ctx.
type fakeAsk struct {
	mu       sync.Mutex
	result   *contract.AskResult
	err      error
	block    bool
	requests []contract.AskRequest
}

func (f *fakeAsk) Ask(ctx context.Context, req contract.AskRequest) (*contract.AskResult, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	if f.block {
		<-ctx.Done()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.result, f.err
}

func (f *fakeAsk) asked() []contract.AskRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]contract.AskRequest(nil), f.requests...)
}

func answerResult(text string) *contract.AskResult {
	return contract.NewAnswerResult("req-1",
		&intelligence.QueryParameters{Teams: []string{"Flamengo"}, Season: 2024},
		&intelligence.FinalAnswer{
			Structured:   true,
			DirectAnswer: text,
			Confidence:   "alta",
		})
}

func failureResult(code contract.FailureCode, msg string) *contract.AskResult {
	return contract.NewFailureResult("req-2", nil, &contract.Failure{Code: code, Message: msg})
}

// fakeGateway serves canned records and remembers the queries it saw.
type fakeGateway struct {
	record   *domain.TeamRecord
	h2h      *domain.HeadToHeadRecord
	upcoming []domain.UpcomingMatch
	stats    json.RawMessage
	fixtures []domain.FixtureSummary
	err      error
	block    bool

	recentQuery   football.RecentMatchesQuery
	fixturesQuery football.FixturesQuery
	nextN         int
}

func (g *fakeGateway) ResolveTeamID(context.Context, string) (int, error) { return 127, g.err }

func (g *fakeGateway) RecentMatches(ctx context.Context, q football.RecentMatchesQuery) (*domain.TeamRecord, error) {
	g.recentQuery = q
	if g.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return g.record, g.err
}

func (g *fakeGateway) HeadToHead(context.Context, string, string) (*domain.HeadToHeadRecord, error) {
	return g.h2h, g.err
}

func (g *fakeGateway) UpcomingMatches(_ context.Context, _ string, nextN int) ([]domain.UpcomingMatch, error) {
	g.nextN = nextN
	return g.upcoming, g.err
}

func (g *fakeGateway) MatchStatistics(context.Context, int) (json.RawMessage, error) {
	return g.stats, g.err
}

func (g *fakeGateway) LeagueFixtures(_ context.Context, q football.FixturesQuery) ([]domain.FixtureSummary, error) {
	g.fixturesQuery = q
	return g.fixtures, g.err
}

type fakeHistory struct {
	questions []*domain.Question
	err       error
}

func (h *fakeHistory) Recent(_ context.Context, limit int) ([]*domain.Question, error) {
	if h.err != nil {
		return nil, h.err
	}
	if limit < len(h.questions) {
		return h.questions[:limit], nil
	}
	return h.questions, nil
}

func newTestApp(ask *fakeAsk, gw *fakeGateway) *App {
	app := &App{
		Defaults: Defaults{Season: 2022, LastN: 10, NextN: 5},
		Now:      func() time.Time { return testNow },
	}
	if ask != nil {
		app.Ask = ask
	}
	if gw != nil {
		app.Gateway = gw
	}
	return app
}

func sampleRecord() *domain.TeamRecord {
	return testutil.NewTestTeamRecord("Flamengo", 127, "2-0", "1-1", "0-1")
}

// execute runs the root command with args and returns what it printed.
func execute(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd(app)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

var errBoom = errors.New("boom")
