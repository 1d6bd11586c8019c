package intelligence

import (
	"encoding/json"
	"errors"

	"github.com/alexanderramin/matchday/internal/domain"
	"github.com/alexanderramin/matchday/internal/llm"
)

// FinalAnswer is what the user sees. When the composer output could not be
// parsed, Structured is false and RawText, Insight and Collection carry
// everything that was produced upstream.
type FinalAnswer struct {
	DirectAnswer       string              `json:"resposta_direta,omitempty"`
	Statistics         map[string]any      `json:"estatisticas,omitempty"`
	BettingSuggestions []BettingSuggestion `json:"sugestoes_apostas,omitempty"`
	Confidence         string              `json:"confianca_analise,omitempty"`
	Observations       string              `json:"observacoes,omitempty"`

	Structured bool                   `json:"structured"`
	RawText    string                 `json:"resposta,omitempty"`
	Insight    *InsightRecord         `json:"analise_completa,omitempty"`
	Collection *domain.DataCollection `json:"dados_brutos,omitempty"`
	Note       string                 `json:"nota,omitempty"`

	Stage llm.ParseStage `json:"-"`
}

// composedAnswer is the wire shape the composer prompt asks for.
type composedAnswer struct {
	DirectAnswer       looseText       `json:"resposta_direta"`
	Statistics         json.RawMessage `json:"estatisticas"`
	BettingSuggestions json.RawMessage `json:"sugestoes_apostas"`
	Confidence         looseText       `json:"confianca_analise"`
	Observations       looseText       `json:"observacoes"`
}

func validateComposedAnswer(a composedAnswer) error {
	if a.DirectAnswer == "" {
		return errors.New("resposta_direta is required")
	}
	return nil
}

func (a composedAnswer) toFinal() *FinalAnswer {
	out := &FinalAnswer{
		DirectAnswer: string(a.DirectAnswer),
		Confidence:   string(a.Confidence),
		Observations: string(a.Observations),
		Structured:   true,
	}
	fields := map[string]json.RawMessage{
		"estatisticas":      a.Statistics,
		"sugestoes_apostas": a.BettingSuggestions,
	}
	decodeField(fields, "estatisticas", &out.Statistics)
	decodeField(fields, "sugestoes_apostas", &out.BettingSuggestions)
	return out
}
