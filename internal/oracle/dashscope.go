package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultEndpoint = "https://dashscope.aliyuncs.com/api/v1/services/aigc/text-generation/generation"

// DashScope calls a DashScope-compatible text-generation endpoint.
type DashScope struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

type DashScopeOption func(*DashScope)

func WithEndpoint(endpoint string) DashScopeOption {
	return func(d *DashScope) {
		if endpoint != "" {
			d.endpoint = endpoint
		}
	}
}

func WithTimeout(timeout time.Duration) DashScopeOption {
	return func(d *DashScope) {
		if timeout > 0 {
			d.client.Timeout = timeout
		}
	}
}

func NewDashScope(apiKey, model string, opts ...DashScopeOption) *DashScope {
	d := &DashScope{
		apiKey:   apiKey,
		model:    model,
		endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *DashScope) Enabled() bool { return d.apiKey != "" }

type generateRequest struct {
	Model      string             `json:"model"`
	Input      generateInput      `json:"input"`
	Parameters generateParameters `json:"parameters"`
}

type generateInput struct {
	Prompt string `json:"prompt"`
}

type generateParameters struct {
	TopP        float64 `json:"top_p"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

type generateResponse struct {
	Output struct {
		Text string `json:"text"`
	} `json:"output"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (d *DashScope) Generate(ctx context.Context, prompt string) (string, error) {
	if d.apiKey == "" {
		return "", ErrDisabled
	}

	payload := generateRequest{
		Model: d.model,
		Input: generateInput{Prompt: prompt},
		Parameters: generateParameters{
			TopP:        0.8,
			Temperature: 0.5,
			MaxTokens:   2000,
		},
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+d.apiKey)

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("oracle call: %w", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("oracle status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if out.Output.Text == "" && out.Code != "" {
		return "", fmt.Errorf("oracle error %s: %s", out.Code, out.Message)
	}
	return out.Output.Text, nil
}
