package intelligence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/matchday/internal/domain"
	"github.com/alexanderramin/matchday/internal/llm"
)

// UnstructuredNote annotates a FinalAnswer built from raw model text.
const UnstructuredNote = "the answer could not be formatted as JSON; the raw text is shown instead"

// ComposerService writes the final answer from an insight.
type ComposerService interface {
	// Compose always returns an answer. Model failures produce an
	// unstructured answer that carries the insight and the collection.
	Compose(ctx context.Context, question string, insight *InsightRecord, collection *domain.DataCollection) *FinalAnswer
}

type composerService struct {
	client llm.LLMClient
}

// NewComposerService creates a ComposerService backed by an LLM client.
func NewComposerService(client llm.LLMClient) ComposerService {
	return &composerService{client: client}
}

func (s *composerService) Compose(ctx context.Context, question string, insight *InsightRecord, collection *domain.DataCollection) *FinalAnswer {
	insightJSON, err := json.MarshalIndent(insight, "", "  ")
	if err != nil {
		return unstructuredAnswer("", insight, collection, "encoding insight: "+err.Error())
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskCompose,
		SystemPrompt: composeSystemPrompt,
		UserPrompt:   fmt.Sprintf("Pergunta: %q\n\nAnálise:\n%s", question, insightJSON),
	})
	if err != nil {
		return unstructuredAnswer(fallbackText(insight), insight, collection, "composition unavailable: "+err.Error())
	}

	parsed := llm.ExtractJSONTolerant[composedAnswer](resp.Text, validateComposedAnswer)
	if !parsed.OK() {
		return unstructuredAnswer(resp.Text, insight, collection, UnstructuredNote)
	}

	answer := parsed.Value.toFinal()
	answer.Stage = parsed.Stage
	return answer
}

func unstructuredAnswer(raw string, insight *InsightRecord, collection *domain.DataCollection, note string) *FinalAnswer {
	return &FinalAnswer{
		Structured: false,
		RawText:    raw,
		Insight:    insight,
		Collection: collection,
		Note:       note,
		Stage:      llm.StageRawText,
	}
}

// fallbackText is what the user reads when the composer call itself failed.
func fallbackText(insight *InsightRecord) string {
	if insight == nil {
		return ""
	}
	if insight.FreeText != "" {
		return insight.FreeText
	}
	if insight.Prediction != nil && insight.Prediction.Rationale != "" {
		return insight.Prediction.Rationale
	}
	return ""
}
