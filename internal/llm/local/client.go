package local

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"choubo/internal/config"
	"choubo/internal/llm"
	"choubo/internal/port"
)

// Client talks to a locally hosted OpenAI-compatible runtime (Ollama,
// LM Studio). It implements port.CompletionProvider and exposes a cheap
// reachability probe against the model-listing endpoint.
type Client struct {
	baseURL     string
	model       string
	visionModel string
	client      *http.Client
	probeClient *http.Client
}

// NewClient creates a local runtime client from config.
func NewClient(cfg *config.LocalLLMConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	probeTimeout := time.Duration(cfg.ProbeTimeoutSecs) * time.Second
	if probeTimeout == 0 {
		probeTimeout = 5 * time.Second
	}
	return &Client{
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		model:       cfg.Model,
		visionModel: cfg.VisionModel,
		client:      &http.Client{Timeout: timeout},
		probeClient: &http.Client{Timeout: probeTimeout},
	}
}

func (c *Client) Name() string { return "local" }

// Reachable probes the /v1/models listing endpoint. A non-200 or any
// transport error means the runtime is down and the gateway should use
// the remote provider instead.
func (c *Client) Reachable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/models", nil)
	if err != nil {
		return false
	}
	resp, err := c.probeClient.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	return resp.StatusCode == http.StatusOK
}

func (c *Client) Complete(ctx context.Context, input port.CompletionRequest) (*port.CompletionResult, error) {
	model := c.model
	var userContent interface{} = input.Prompt
	if len(input.ImageData) > 0 {
		model = c.visionModel
		userContent = buildVisionBlocks(input)
	}

	reqBody := map[string]interface{}{
		"model": model,
		"messages": []map[string]interface{}{
			{"role": "system", "content": input.System},
			{"role": "user", "content": userContent},
		},
		"max_tokens":  4000,
		"temperature": 0,
		"stream":      false,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

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
		return nil, &llm.ProviderError{
			Provider: c.Name(),
			Err:      fmt.Errorf("local runtime error (status %d): %s", resp.StatusCode, string(respBody)),
		}
	}

	content, err := parseCompletion(respBody)
	if err != nil {
		return nil, &llm.ProviderError{Provider: c.Name(), Err: err}
	}

	return &port.CompletionResult{Content: content, Provider: c.Name(), Model: model}, nil
}

// buildVisionBlocks assembles the multi-part user message for a vision
// request: the image as a data URI followed by the text prompt.
func buildVisionBlocks(input port.CompletionRequest) []map[string]interface{} {
	mime := input.ImageMIME
	if mime == "" {
		mime = "image/jpeg"
	}
	encoded := base64.StdEncoding.EncodeToString(input.ImageData)
	dataURI := fmt.Sprintf("data:%s;base64,%s", mime, encoded)
	return []map[string]interface{}{
		{
			"type": "image_url",
			"image_url": map[string]interface{}{
				"url": dataURI,
			},
		},
		{
			"type": "text",
			"text": input.Prompt,
		},
	}
}

type apiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func parseCompletion(body []byte) (string, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from API: no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
