package football

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://v3.football.api-sports.io"
	DefaultLastN   = 10
	DefaultH2HLast = 10
	DefaultNextN   = 5

	apiKeyHeader = "x-apisports-key"
	maxBodyBytes = 6 << 20
)

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
	Timeout    time.Duration // zero means no client-side deadline
	H2HLast    int
	Observer   Observer
}

// Client talks to the api-sports "API-Football" v3 REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	h2hLast    int
	observer   Observer
}

var _ Gateway = (*Client)(nil)

// NewClient validates cfg and returns a ready client. A missing API key is
// a *ConfigurationError wrapping ErrMissingAPIKey.
func NewClient(cfg ClientConfig) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, &ConfigurationError{Err: ErrMissingAPIKey}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, &ConfigurationError{Err: fmt.Errorf("invalid base url %q: %w", baseURL, err)}
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	observer := cfg.Observer
	if observer == nil {
		observer = NoopObserver{}
	}
	h2hLast := cfg.H2HLast
	if h2hLast <= 0 {
		h2hLast = DefaultH2HLast
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		h2hLast:    h2hLast,
		observer:   observer,
	}, nil
}

// get performs one GET against path and returns the envelope's response
// field. Every failure is a *GatewayError tagged with action.
func (c *Client) get(ctx context.Context, action Action, path string, query url.Values) (json.RawMessage, error) {
	start := time.Now()
	status, env, err := c.do(ctx, action, path, query)
	c.observer.OnGatewayCall(CallEvent{
		Action:    action,
		Status:    status,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	})
	if err != nil {
		return nil, err
	}
	return env.Response, nil
}

func (c *Client) do(ctx context.Context, action Action, path string, query url.Values) (int, envelope, error) {
	var env envelope

	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return 0, env, &GatewayError{Action: action, Detail: "build request", Err: err}
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, env, &GatewayError{Action: action, Detail: "send request: " + err.Error(), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, env, &GatewayError{Action: action, Status: resp.StatusCode, Detail: "read response body", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, env, &GatewayError{Action: action, Status: resp.StatusCode, Detail: abbreviate(raw)}
	}

	if len(strings.TrimSpace(string(raw))) == 0 {
		return resp.StatusCode, env, &GatewayError{Action: action, Status: resp.StatusCode, Detail: "empty response body"}
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return resp.StatusCode, env, &GatewayError{Action: action, Status: resp.StatusCode, Detail: "decode provider payload", Err: err}
	}
	if detail := env.errorDetail(); detail != "" {
		return resp.StatusCode, env, &GatewayError{Action: action, Status: resp.StatusCode, Detail: "provider errors: " + detail}
	}
	return resp.StatusCode, env, nil
}

func decodeList[T any](action Action, raw json.RawMessage) ([]T, error) {
	var out []T
	if len(raw) == 0 || string(raw) == "null" {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &GatewayError{Action: action, Detail: "decode response list", Err: err}
	}
	return out, nil
}

func abbreviate(raw []byte) string {
	const limit = 300
	s := strings.TrimSpace(string(raw))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
