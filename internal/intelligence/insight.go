package intelligence

import (
	"encoding/json"
	"errors"

	"github.com/alexanderramin/matchday/internal/llm"
)

// BettingSuggestion is one market recommendation with its reasoning.
type BettingSuggestion struct {
	Market     string `json:"mercado"`
	Suggestion string `json:"sugestao"`
	Confidence string `json:"confianca"`
	Rationale  string `json:"justificativa"`
}

func (b *BettingSuggestion) UnmarshalJSON(data []byte) error {
	var aux struct {
		Market     looseText `json:"mercado"`
		Suggestion looseText `json:"sugestao"`
		Confidence looseText `json:"confianca"`
		Rationale  looseText `json:"justificativa"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*b = BettingSuggestion{
		Market:     string(aux.Market),
		Suggestion: string(aux.Suggestion),
		Confidence: string(aux.Confidence),
		Rationale:  string(aux.Rationale),
	}
	return nil
}

// MatchPrediction is the synthesizer's call on the match outcome.
type MatchPrediction struct {
	Favorite    string `json:"favorito"`
	Confidence  string `json:"confianca"`
	LikelyScore string `json:"placar_provavel"`
	Rationale   string `json:"justificativa"`
}

func (m *MatchPrediction) UnmarshalJSON(data []byte) error {
	var aux struct {
		Favorite    looseText `json:"favorito"`
		Confidence  looseText `json:"confianca"`
		LikelyScore looseText `json:"placar_provavel"`
		Rationale   looseText `json:"justificativa"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*m = MatchPrediction{
		Favorite:    string(aux.Favorite),
		Confidence:  string(aux.Confidence),
		LikelyScore: string(aux.LikelyScore),
		Rationale:   string(aux.Rationale),
	}
	return nil
}

// InsightRecord is the synthesizer's analysis of the collected data. The
// model is asked for a fixed shape but may deviate; unknown keys and
// sections with an unexpected shape are kept in Extra. When nothing
// structured could be recovered, FreeText carries the model's text.
type InsightRecord struct {
	PerformanceSummary map[string]any      `json:"resumo_desempenho,omitempty"`
	HeadToHead         map[string]any      `json:"confrontos_diretos,omitempty"`
	Prediction         *MatchPrediction    `json:"previsao_partida,omitempty"`
	BettingSuggestions []BettingSuggestion `json:"sugestoes_apostas,omitempty"`
	Patterns           []string            `json:"padroes_identificados,omitempty"`
	Alerts             []string            `json:"alertas,omitempty"`
	FreeText           string              `json:"free_text,omitempty"`
	Extra              map[string]any      `json:"-"`

	Stage llm.ParseStage `json:"-"`
}

func (r *InsightRecord) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var out InsightRecord
	var patterns, alerts looseList
	var free looseText
	decoded := map[string]bool{
		"resumo_desempenho":     decodeField(fields, "resumo_desempenho", &out.PerformanceSummary),
		"confrontos_diretos":    decodeField(fields, "confrontos_diretos", &out.HeadToHead),
		"previsao_partida":      decodeField(fields, "previsao_partida", &out.Prediction),
		"sugestoes_apostas":     decodeField(fields, "sugestoes_apostas", &out.BettingSuggestions),
		"padroes_identificados": decodeField(fields, "padroes_identificados", &patterns),
		"alertas":               decodeField(fields, "alertas", &alerts),
		"free_text":             decodeField(fields, "free_text", &free),
	}
	out.Patterns, out.Alerts, out.FreeText = patterns, alerts, string(free)

	// Unknown keys and known keys with an unexpected shape are kept as-is.
	for k, raw := range fields {
		if decoded[k] {
			continue
		}
		var v any
		if json.Unmarshal(raw, &v) == nil && v != nil {
			if out.Extra == nil {
				out.Extra = map[string]any{}
			}
			out.Extra[k] = v
		}
	}

	*r = out
	return nil
}

// MarshalJSON flattens Extra next to the known sections.
func (r InsightRecord) MarshalJSON() ([]byte, error) {
	type plain InsightRecord
	known, err := json.Marshal(plain(r))
	if err != nil || len(r.Extra) == 0 {
		return known, err
	}

	merged := make(map[string]any, len(r.Extra)+6)
	for k, v := range r.Extra {
		merged[k] = v
	}
	var base map[string]any
	if err := json.Unmarshal(known, &base); err != nil {
		return nil, err
	}
	for k, v := range base {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// Empty reports whether the record carries no analysis at all.
func (r *InsightRecord) Empty() bool {
	return len(r.PerformanceSummary) == 0 && len(r.HeadToHead) == 0 && r.Prediction == nil &&
		len(r.BettingSuggestions) == 0 && len(r.Patterns) == 0 && len(r.Alerts) == 0 &&
		r.FreeText == "" && len(r.Extra) == 0
}

func validateInsight(r InsightRecord) error {
	if r.Empty() {
		return errors.New("insight has no recognizable sections")
	}
	return nil
}

// decodeField unmarshals fields[key] into dst and reports success. dst is
// left untouched when the key is missing or has an unexpected shape.
func decodeField[T any](fields map[string]json.RawMessage, key string, dst *T) bool {
	raw, ok := fields[key]
	if !ok || len(raw) == 0 {
		return false
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	*dst = v
	return true
}
