package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_NoDeadlineByDefault(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 0, cfg.TaskTimeout(TaskExtract))
	assert.Equal(t, 0, cfg.TaskTimeout(TaskSynthesize))
	assert.Equal(t, 0, cfg.TaskTimeout(TaskCompose))
}

func TestTaskTimeout_TaskOverridesGlobal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TimeoutMs = 9000
	cfg.Tasks[TaskSynthesize] = TaskConfig{Temperature: 0.3, MaxTokens: 2048, TimeoutMs: 30000}

	assert.Equal(t, 9000, cfg.TaskTimeout(TaskExtract))
	assert.Equal(t, 30000, cfg.TaskTimeout(TaskSynthesize))
}

func TestDefaultEndpoint(t *testing.T) {
	assert.Equal(t, "https://api.openai.com", DefaultEndpoint(ProviderOpenAI))
	assert.Equal(t, "http://localhost:11434", DefaultEndpoint(ProviderOllama))
	assert.True(t, IsValidProvider(ProviderOpenAI))
	assert.False(t, IsValidProvider("gemini"))
}
