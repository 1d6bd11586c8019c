package cli

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/matchday/internal/domain"
	"github.com/alexanderramin/matchday/internal/testutil"
)

func sampleHistory() *fakeHistory {
	return &fakeHistory{questions: []*domain.Question{
		testutil.NewTestQuestion("Como está o Flamengo?", testutil.WithAskedAt(testNow.Add(-time.Minute))),
		testutil.NewTestQuestion("e amanhã?", testutil.WithAskedAt(testNow.Add(-time.Hour)),
			testutil.WithOutcome("no_team_identified"), testutil.WithSource("shell")),
		testutil.NewTestQuestion("Flamengo x Palmeiras", testutil.WithAskedAt(testNow.Add(-48*time.Hour))),
	}}
}

func TestHistoryCmd_Text(t *testing.T) {
	app := newTestApp(nil, nil)
	app.History = sampleHistory()

	out, err := execute(t, app, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "Como está o Flamengo?")
	assert.Contains(t, out, "no_team_identified")
}

func TestHistoryCmd_JSONHonoursLimit(t *testing.T) {
	app := newTestApp(nil, nil)
	app.History = sampleHistory()

	out, err := execute(t, app, "history", "-n", "2", "-o", "json")
	require.NoError(t, err)

	var rows []historyRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "Como está o Flamengo?", rows[0].Question)
	assert.Equal(t, "shell", rows[1].Source)
	assert.Equal(t, "no_team_identified", rows[1].Outcome)
}

func TestHistoryCmd_Errors(t *testing.T) {
	_, err := execute(t, newTestApp(nil, nil), "history")
	assert.ErrorContains(t, err, "not configured")

	app := newTestApp(nil, nil)
	app.History = &fakeHistory{err: errBoom}
	_, err = execute(t, app, "history")
	assert.ErrorIs(t, err, errBoom)
}

func TestLoadShellHistory_OldestFirstWithoutRepeats(t *testing.T) {
	// Recent returns newest first.
	h := &fakeHistory{questions: []*domain.Question{
		testutil.NewTestQuestion("c"),
		testutil.NewTestQuestion("b"),
		testutil.NewTestQuestion("b"),
		testutil.NewTestQuestion("  "),
		testutil.NewTestQuestion("a"),
	}}
	assert.Equal(t, []string{"a", "b", "c"}, loadShellHistory(context.Background(), h))
}

func TestLoadShellHistory_ErrorsAndNil(t *testing.T) {
	assert.Nil(t, loadShellHistory(context.Background(), nil))
	assert.Nil(t, loadShellHistory(context.Background(), &fakeHistory{err: errBoom}))
}

func TestServeCmd(t *testing.T) {
	var gotAddr string
	app := newTestApp(nil, nil)
	app.ServeAddr = ":8080"
	app.Serve = func(_ context.Context, addr string) error {
		gotAddr = addr
		return nil
	}

	_, err := execute(t, app, "serve")
	require.NoError(t, err)
	assert.Equal(t, ":8080", gotAddr)

	_, err = execute(t, app, "serve", "--addr", "127.0.0.1:9090")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9090", gotAddr)

	_, err = execute(t, newTestApp(nil, nil), "serve")
	assert.ErrorContains(t, err, "not configured")
}
