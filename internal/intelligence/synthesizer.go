package intelligence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/matchday/internal/domain"
	"github.com/alexanderramin/matchday/internal/llm"
)

// SynthesizerService turns collected match data into an InsightRecord.
type SynthesizerService interface {
	// Synthesize never fails on model problems; it degrades to a free-text
	// insight. The error is reserved for context cancellation.
	Synthesize(ctx context.Context, question string, collection *domain.DataCollection, params *QueryParameters) (*InsightRecord, error)
}

type synthesizerService struct {
	client llm.LLMClient
}

// NewSynthesizerService creates a SynthesizerService backed by an LLM client.
func NewSynthesizerService(client llm.LLMClient) SynthesizerService {
	return &synthesizerService{client: client}
}

func (s *synthesizerService) Synthesize(ctx context.Context, question string, collection *domain.DataCollection, params *QueryParameters) (*InsightRecord, error) {
	prompt, err := buildSynthesizeUserPrompt(question, collection, params)
	if err != nil {
		return &InsightRecord{FreeText: "analysis unavailable: " + err.Error(), Stage: llm.StageRawText}, nil
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskSynthesize,
		SystemPrompt: synthesizeSystemPrompt,
		UserPrompt:   prompt,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return &InsightRecord{FreeText: "analysis unavailable: " + err.Error(), Stage: llm.StageRawText}, nil
	}

	parsed := llm.ExtractJSONTolerant[InsightRecord](resp.Text, validateInsight)
	if !parsed.OK() {
		return &InsightRecord{FreeText: resp.Text, Stage: llm.StageRawText}, nil
	}
	insight := parsed.Value
	insight.Stage = parsed.Stage
	return &insight, nil
}

func buildSynthesizeUserPrompt(question string, collection *domain.DataCollection, params *QueryParameters) (string, error) {
	data, err := json.MarshalIndent(collection, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding collection: %w", err)
	}
	ctxJSON, err := json.MarshalIndent(params, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding parameters: %w", err)
	}
	return fmt.Sprintf(`Pergunta original: %s

Dados coletados:
%s

Contexto da pergunta:
%s

Analise os dados e gere um relatório completo no formato JSON especificado.`, question, data, ctxJSON), nil
}
