package intelligence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/matchday/internal/llm"
)

func testInsight() *InsightRecord {
	return &InsightRecord{
		Prediction: &MatchPrediction{Favorite: "Flamengo", Confidence: "média", Rationale: "Flamengo venceu 4 dos últimos 5"},
		Alerts:     []string{"Dados do River Plate indisponíveis"},
		Stage:      llm.StageStrict,
	}
}

func TestComposerService_Structured(t *testing.T) {
	client := &mockLLMClient{response: "```json\n" + `{
		"resposta_direta": "O Flamengo é favorito.",
		"estatisticas": {"aproveitamento_flamengo": 80},
		"sugestoes_apostas": [{"mercado": "1X2", "sugestao": "Flamengo", "confianca": "média", "justificativa": "forma recente"}],
		"confianca_analise": "média",
		"observacoes": ["Sem dados do River Plate", "Jogo fora de casa"]
	}` + "\n```"}

	answer := NewComposerService(client).Compose(context.Background(), "Flamengo ganha?", testInsight(), testCollection())

	assert.True(t, answer.Structured)
	assert.Equal(t, llm.StageStrict, answer.Stage)
	assert.Equal(t, "O Flamengo é favorito.", answer.DirectAnswer)
	assert.Equal(t, float64(80), answer.Statistics["aproveitamento_flamengo"])
	require.Len(t, answer.BettingSuggestions, 1)
	assert.Equal(t, "1X2", answer.BettingSuggestions[0].Market)
	assert.Equal(t, "média", answer.Confidence)
	assert.Equal(t, "Sem dados do River Plate; Jogo fora de casa", answer.Observations)
	assert.Nil(t, answer.Insight)
	assert.Nil(t, answer.Collection)
}

func TestComposerService_PromptCarriesQuestionAndInsight(t *testing.T) {
	client := &mockLLMClient{response: `{"resposta_direta":"ok"}`}

	NewComposerService(client).Compose(context.Background(), "Flamengo ganha?", testInsight(), testCollection())

	require.Len(t, client.requests, 1)
	req := client.requests[0]
	assert.Equal(t, llm.TaskCompose, req.Task)
	assert.Contains(t, req.UserPrompt, "Flamengo ganha?")
	assert.Contains(t, req.UserPrompt, "previsao_partida")
	assert.NotContains(t, req.UserPrompt, "dados_brutos")
}

func TestComposerService_UnparseableFallsBack(t *testing.T) {
	raw := "O Flamengo deve vencer por 2 a 1."
	client := &mockLLMClient{response: raw}
	insight, collection := testInsight(), testCollection()

	answer := NewComposerService(client).Compose(context.Background(), "q", insight, collection)

	assert.False(t, answer.Structured)
	assert.Equal(t, llm.StageRawText, answer.Stage)
	assert.Equal(t, raw, answer.RawText)
	assert.Same(t, insight, answer.Insight)
	assert.Same(t, collection, answer.Collection)
	assert.Equal(t, UnstructuredNote, answer.Note)
}

func TestComposerService_MissingDirectAnswerFallsBack(t *testing.T) {
	client := &mockLLMClient{response: `{"estatisticas":{}}`}

	answer := NewComposerService(client).Compose(context.Background(), "q", testInsight(), testCollection())
	assert.False(t, answer.Structured)
	assert.Equal(t, `{"estatisticas":{}}`, answer.RawText)
}

func TestComposerService_LLMFailure(t *testing.T) {
	client := &mockLLMClient{err: llm.ErrProviderUnavailable}

	answer := NewComposerService(client).Compose(context.Background(), "q", testInsight(), testCollection())

	assert.False(t, answer.Structured)
	assert.Equal(t, "Flamengo venceu 4 dos últimos 5", answer.RawText)
	assert.Contains(t, answer.Note, "composition unavailable")
	assert.NotNil(t, answer.Collection)
}
