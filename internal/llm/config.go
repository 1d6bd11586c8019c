package llm

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskExtract    TaskType = "extract"
	TaskSynthesize TaskType = "synthesize"
	TaskCompose    TaskType = "compose"
)

// Provider names the completion backend.
type Provider string

const (
	ProviderOllama Provider = "ollama"
	ProviderOpenAI Provider = "openai"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64 `koanf:"temperature"`
	MaxTokens   int     `koanf:"max_tokens"`
	TimeoutMs   int     `koanf:"timeout_ms"` // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Enabled   bool                    `koanf:"enabled"`
	LogCalls  bool                    `koanf:"log_calls"`
	Provider  Provider                `koanf:"provider"`
	Endpoint  string                  `koanf:"endpoint"`
	Model     string                  `koanf:"model"`
	APIKey    string                  `koanf:"api_key"`
	TimeoutMs int                     `koanf:"timeout_ms"` // 0 waits for the provider indefinitely
	Tasks     map[TaskType]TaskConfig `koanf:"tasks"`
}

// DefaultConfig returns an LLMConfig with sensible defaults.
// The default provider is a local Ollama instance.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:   true,
		LogCalls:  false,
		Provider:  ProviderOllama,
		Endpoint:  "http://localhost:11434",
		Model:     "llama3.2",
		TimeoutMs: 0,
		Tasks: map[TaskType]TaskConfig{
			TaskExtract:    {Temperature: 0.1, MaxTokens: 512},
			TaskSynthesize: {Temperature: 0.3, MaxTokens: 2048},
			TaskCompose:    {Temperature: 0.1, MaxTokens: 1024},
		},
	}
}

// DefaultEndpoint returns the conventional base URL for a provider.
func DefaultEndpoint(p Provider) string {
	switch p {
	case ProviderOpenAI:
		return "https://api.openai.com"
	default:
		return "http://localhost:11434"
	}
}

// TaskTimeout returns the effective timeout for a given task type in
// milliseconds. Zero means no deadline is applied.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

// IsValidProvider reports whether p names a supported backend.
func IsValidProvider(p Provider) bool {
	return p == ProviderOllama || p == ProviderOpenAI
}
