package football

import (
	"bytes"
	"encoding/json"

	"github.com/alexanderramin/matchday/internal/domain"
)

// envelope is the common api-sports v3 response wrapper. Errors arrive as
// either an empty array or an object keyed by parameter.
type envelope struct {
	Errors   json.RawMessage `json:"errors"`
	Results  int             `json:"results"`
	Response json.RawMessage `json:"response"`
}

func (e envelope) errorDetail() string {
	raw := bytes.TrimSpace(e.Errors)
	switch string(raw) {
	case "", "[]", "{}", "null":
		return ""
	}
	return string(raw)
}

type apiTeam struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type apiTeamItem struct {
	Team apiTeam `json:"team"`
}

type apiFixture struct {
	Fixture struct {
		ID     int    `json:"id"`
		Date   string `json:"date"`
		Status struct {
			Short string `json:"short"`
		} `json:"status"`
	} `json:"fixture"`
	League struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"league"`
	Teams struct {
		Home apiTeam `json:"home"`
		Away apiTeam `json:"away"`
	} `json:"teams"`
	Score struct {
		Fulltime domain.Score `json:"fulltime"`
	} `json:"score"`
}

// isHome decides which side of the fixture the team played on. Provider
// ids are authoritative; the name is only compared when an id is missing.
func (f apiFixture) isHome(teamID int, teamName string) bool {
	home, away := f.Teams.Home, f.Teams.Away
	if teamID != 0 {
		if home.ID == teamID {
			return true
		}
		if away.ID == teamID {
			return false
		}
	}
	return home.Name == teamName
}
