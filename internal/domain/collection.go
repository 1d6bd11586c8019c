package domain

import "encoding/json"

type EntryKind string

const (
	EntryTeam       EntryKind = "team"
	EntryHeadToHead EntryKind = "head_to_head"
)

// CollectionEntry is the outcome of one gateway call made while collecting
// data for a question. Exactly one of Record, HeadToHead or Err is set.
type CollectionEntry struct {
	Kind       EntryKind
	Team       string
	Record     *TeamRecord
	HeadToHead *HeadToHeadRecord
	Err        string
}

// Failed reports whether the gateway call behind this entry failed.
func (e CollectionEntry) Failed() bool {
	return e.Err != ""
}

type errorPayload struct {
	Error string `json:"error"`
}

// MarshalJSON renders {"team": name, "data": ...} for team entries and
// {"type": "head_to_head", "data": ...} for the head-to-head entry, with
// data = {"error": msg} on failure.
func (e CollectionEntry) MarshalJSON() ([]byte, error) {
	var data any
	switch {
	case e.Failed():
		data = errorPayload{Error: e.Err}
	case e.Kind == EntryHeadToHead:
		data = e.HeadToHead
	default:
		data = e.Record
	}

	if e.Kind == EntryHeadToHead {
		return json.Marshal(struct {
			Type EntryKind `json:"type"`
			Data any       `json:"data"`
		}{Type: EntryHeadToHead, Data: data})
	}
	return json.Marshal(struct {
		Team string `json:"team"`
		Data any    `json:"data"`
	}{Team: e.Team, Data: data})
}

// DataCollection is the ordered list of gateway results for one question:
// one entry per team in question order, then an optional head-to-head entry.
type DataCollection struct {
	Entries []CollectionEntry
}

func (c *DataCollection) AddTeam(team string, record *TeamRecord) {
	c.Entries = append(c.Entries, CollectionEntry{Kind: EntryTeam, Team: team, Record: record})
}

func (c *DataCollection) AddTeamError(team string, err error) {
	c.Entries = append(c.Entries, CollectionEntry{Kind: EntryTeam, Team: team, Err: err.Error()})
}

func (c *DataCollection) AddHeadToHead(record *HeadToHeadRecord) {
	c.Entries = append(c.Entries, CollectionEntry{Kind: EntryHeadToHead, HeadToHead: record})
}

func (c *DataCollection) AddHeadToHeadError(err error) {
	c.Entries = append(c.Entries, CollectionEntry{Kind: EntryHeadToHead, Err: err.Error()})
}

// AllFailed reports whether nothing usable was collected. An empty
// collection counts as failed.
func (c *DataCollection) AllFailed() bool {
	if c == nil {
		return true
	}
	for _, e := range c.Entries {
		if !e.Failed() {
			return false
		}
	}
	return true
}

// Errors returns the error messages of failed entries, in order.
func (c *DataCollection) Errors() []string {
	var out []string
	for _, e := range c.Entries {
		if e.Failed() {
			out = append(out, e.Err)
		}
	}
	return out
}

func (c DataCollection) MarshalJSON() ([]byte, error) {
	if c.Entries == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.Entries)
}
