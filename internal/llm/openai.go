package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// openAIClient implements LLMClient against an OpenAI-compatible
// chat completions endpoint.
type openAIClient struct {
	cfg      LLMConfig
	http     *http.Client
	observer Observer
}

// NewOpenAIClient creates an LLMClient for the OpenAI chat completions API.
// Any server exposing the same /v1/chat/completions contract works.
func NewOpenAIClient(cfg LLMConfig, observer Observer) (LLMClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if observer == nil {
		observer = NoopObserver{}
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint(ProviderOpenAI)
	}
	cfg.Endpoint = strings.TrimRight(cfg.Endpoint, "/")
	return &openAIClient{cfg: cfg, http: newHTTPClient(), observer: observer}, nil
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
}

type openAIResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message openAIMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *openAIClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()
	temp, maxTok := c.cfg.taskParams(req)

	ctx, cancel := withTaskTimeout(ctx, c.cfg, req.Task)
	defer cancel()

	var messages []openAIMessage
	if req.SystemPrompt != "" {
		messages = append(messages, openAIMessage{Role: "system", Content: req.SystemPrompt})
	}
	messages = append(messages, openAIMessage{Role: "user", Content: req.UserPrompt})

	body := openAIRequest{
		Model:       c.cfg.Model,
		Messages:    messages,
		Temperature: temp,
		MaxTokens:   maxTok,
	}

	var resp openAIResponse
	err := postJSON(ctx, c.http, c.cfg.Endpoint+"/v1/chat/completions", c.authHeaders(), body, &resp)
	if err == nil {
		switch {
		case resp.Error != nil:
			err = fmt.Errorf("openai error: %s", resp.Error.Message)
		case len(resp.Choices) == 0:
			err = fmt.Errorf("openai returned no choices")
		}
	}
	if err != nil {
		return nil, finishCall(ctx, c.observer, c.cfg, req.Task, start, err)
	}
	finishCall(ctx, c.observer, c.cfg, req.Task, start, nil)

	model := resp.Model
	if model == "" {
		model = c.cfg.Model
	}
	return &GenerateResponse{
		Text:      resp.Choices[0].Message.Content,
		Model:     model,
		LatencyMs: time.Since(start).Milliseconds(),
	}, nil
}

func (c *openAIClient) Available(ctx context.Context) bool {
	return probe(ctx, c.http, c.cfg.Endpoint+"/v1/models", c.authHeaders())
}

func (c *openAIClient) authHeaders() map[string]string {
	return map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}
}
