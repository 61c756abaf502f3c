package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"choubo/internal/config"
	"choubo/internal/llm"
	"choubo/internal/port"
)

const defaultEndpoint = "https://api.deepseek.com/v1/chat/completions"

// Client talks to a hosted chat-completion API over a bearer key. The
// request timeout is hard-capped so a stalled remote call cannot hold a
// request open past the fallback budget.
type Client struct {
	apiKey   string
	endpoint string
	model    string
	client   *http.Client
}

// NewClient creates a remote API client from config.
func NewClient(cfg *config.RemoteLLMConfig) *Client {
	return newClient(cfg, cfg.Endpoint)
}

// NewClientWithEndpoint creates a client pointing at a custom endpoint (for testing).
func NewClientWithEndpoint(cfg *config.RemoteLLMConfig, endpoint string) *Client {
	return newClient(cfg, endpoint)
}

func newClient(cfg *config.RemoteLLMConfig, endpoint string) *Client {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	model := cfg.Model
	if model == "" {
		model = "deepseek-chat"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 25 * time.Second
	}
	return &Client{
		apiKey:   cfg.APIKey,
		endpoint: endpoint,
		model:    model,
		client:   &http.Client{Timeout: timeout},
	}
}

func (c *Client) Name() string { return "remote" }

// Configured reports whether an API key is present.
func (c *Client) Configured() bool { return c.apiKey != "" }

func (c *Client) Complete(ctx context.Context, input port.CompletionRequest) (*port.CompletionResult, error) {
	reqBody := map[string]interface{}{
		"model": c.model,
		"messages": []map[string]interface{}{
			{"role": "system", "content": input.System},
			{"role": "user", "content": input.Prompt},
		},
		"max_tokens":  4000,
		"temperature": 0,
		"stream":      false,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &llm.ProviderError{Provider: c.Name(), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &llm.ProviderError{Provider: c.Name(), Err: fmt.Errorf("reading response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("remote API error (status %d): %s", resp.StatusCode, string(respBody))
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := llm.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
			return nil, llm.NewRateLimitError(c.Name(), baseErr, retryAfter)
		}
		return nil, &llm.ProviderError{Provider: c.Name(), Err: baseErr}
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, &llm.ProviderError{Provider: c.Name(), Err: fmt.Errorf("unmarshaling response: %w", err)}
	}
	if len(parsed.Choices) == 0 {
		return nil, &llm.ProviderError{Provider: c.Name(), Err: fmt.Errorf("empty response from API: no choices")}
	}

	return &port.CompletionResult{
		Content:  parsed.Choices[0].Message.Content,
		Provider: c.Name(),
		Model:    c.model,
	}, nil
}
