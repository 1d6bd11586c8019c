package football

import "github.com/sirupsen/logrus"

// Action names a gateway operation. It labels errors, logs and metrics.
type Action string

const (
	ActionResolveTeam     Action = "resolve_team"
	ActionRecentMatches   Action = "recent_matches"
	ActionHeadToHead      Action = "head_to_head"
	ActionUpcomingMatches Action = "upcoming_matches"
	ActionMatchStatistics Action = "match_statistics"
	ActionLeagueFixtures  Action = "league_fixtures"
)

// CallEvent records one HTTP round trip to the provider.
type CallEvent struct {
	Action    Action
	Status    int
	LatencyMs int64
	Success   bool
}

// Observer receives an event for every provider request.
type Observer interface {
	OnGatewayCall(event CallEvent)
}

// LogObserver writes gateway events to a logrus logger at debug level,
// failures at warn.
type LogObserver struct {
	log logrus.FieldLogger
}

func NewLogObserver(log logrus.FieldLogger) *LogObserver {
	return &LogObserver{log: log}
}

func (o *LogObserver) OnGatewayCall(event CallEvent) {
	entry := o.log.WithFields(logrus.Fields{
		"action":     event.Action,
		"status":     event.Status,
		"latency_ms": event.LatencyMs,
	})
	if !event.Success {
		entry.Warn("football_call_failed")
		return
	}
	entry.Debug("football_call")
}

type MultiObserver []Observer

func (m MultiObserver) OnGatewayCall(event CallEvent) {
	for _, o := range m {
		if o != nil {
			o.OnGatewayCall(event)
		}
	}
}

type NoopObserver struct{}

func (NoopObserver) OnGatewayCall(CallEvent) {}
