package testutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/matchday/internal/domain"
)

// Question options
type QuestionOption func(*domain.Question)

func WithAskedAt(t time.Time) QuestionOption {
	return func(q *domain.Question) {
		q.AskedAt = t
	}
}

func WithOutcome(outcome string) QuestionOption {
	return func(q *domain.Question) {
		q.Outcome = outcome
	}
}

func WithSource(source string) QuestionOption {
	return func(q *domain.Question) {
		q.Source = source
	}
}

func NewTestQuestion(text string, opts ...QuestionOption) *domain.Question {
	q := &domain.Question{
		ID:        uuid.NewString(),
		RequestID: uuid.NewString(),
		Text:      text,
		Source:    "cli",
		Outcome:   "answer",
		AskedAt:   time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// NewTestTeamRecord builds a record from scores written from the team's
// side, e.g. "2-0", "1-1". Matches alternate home and away.
func NewTestTeamRecord(team string, teamID int, scores ...string) *domain.TeamRecord {
	r := domain.NewTeamRecord(team, teamID)
	for i, s := range scores {
		gf, ga := mustScore(s)
		venue := domain.VenueHome
		if i%2 == 1 {
			venue = domain.VenueAway
		}
		r.AddMatch(i+1, fmt.Sprintf("2024-05-%02dT19:00:00+00:00", i+1), fmt.Sprintf("Opponent %d", i+1), venue, gf, ga)
	}
	return r
}

func mustScore(s string) (int, int) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		panic("testutil: bad score " + s)
	}
	gf, err1 := strconv.Atoi(parts[0])
	ga, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		panic("testutil: bad score " + s)
	}
	return gf, ga
}
