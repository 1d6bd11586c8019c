package service

import (
	"context"

	"github.com/alexanderramin/matchday/internal/domain"
	"github.com/alexanderramin/matchday/internal/football"
)

// Collector gathers gateway data for the teams named in a question.
type Collector struct {
	gateway football.Gateway
	lastN   int
}

func NewCollector(gateway football.Gateway, lastN int) *Collector {
	if lastN <= 0 {
		lastN = football.DefaultLastN
	}
	return &Collector{gateway: gateway, lastN: lastN}
}

// Collect fetches recent matches for each team in order, one call at a
// time. A failing team is recorded in place and does not stop the others.
// Exactly two teams add a trailing head-to-head entry.
func (c *Collector) Collect(ctx context.Context, teams []string, leagueID *int, season int) *domain.DataCollection {
	collection := &domain.DataCollection{}

	for _, team := range teams {
		record, err := c.gateway.RecentMatches(ctx, football.RecentMatchesQuery{
			Team:     team,
			LeagueID: leagueID,
			Season:   season,
			LastN:    c.lastN,
		})
		if err != nil {
			collection.AddTeamError(team, err)
			continue
		}
		collection.AddTeam(team, record)
	}

	if len(teams) == 2 {
		h2h, err := c.gateway.HeadToHead(ctx, teams[0], teams[1])
		if err != nil {
			collection.AddHeadToHeadError(err)
		} else {
			collection.AddHeadToHead(h2h)
		}
	}

	return collection
}
