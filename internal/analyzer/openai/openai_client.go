// Package openai implements analyzer.ModelClient against the OpenAI Chat
// Completions API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"claimcheck/internal/analyzer"
	"claimcheck/internal/config"
	"claimcheck/internal/domain"
)

// Audit verdicts must be deterministic-ish JSON, so completions run cold.
const temperature = 0.3

// Client calls the Chat Completions API with a JSON-object response format.
// It implements analyzer.ModelClient.
type Client struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewClient creates a model client from the analyzer config.
func NewClient(cfg *config.AnalyzerConfig) *Client {
	return NewClientWithEndpoint(cfg, cfg.Endpoint)
}

// NewClientWithEndpoint creates a client pointing at a custom API endpoint (for testing).
func NewClientWithEndpoint(cfg *config.AnalyzerConfig, endpoint string) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		apiKey:   cfg.APIKey,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// apiResponse models the Chat Completions response.
type apiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// apiError models the provider's error envelope, used to detect
// model-unavailable rejections.
type apiError struct {
	Error struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

// Complete runs a single low-temperature JSON-mode completion against model
// and returns the message content.
func (c *Client) Complete(ctx context.Context, model, system, user string) (string, error) {
	if c.apiKey == "" {
		return "", domain.ErrAnalyzerNotConfigured
	}

	reqBody := map[string]interface{}{
		"model": model,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
		"response_format": map[string]string{"type": "json_object"},
		"temperature":     temperature,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling analyzer API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("analyzer API error (status %d): %s", resp.StatusCode, string(respBody))
		if isModelRejection(resp.StatusCode, respBody) {
			return "", &analyzer.ModelUnavailableError{Model: model, Err: baseErr}
		}
		return "", baseErr
	}

	var parsed apiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("empty response from API: no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// isModelRejection reports whether an error response says the model identifier
// itself is unknown or inaccessible, as opposed to a transport or auth failure.
func isModelRejection(status int, body []byte) bool {
	if status != http.StatusNotFound && status != http.StatusBadRequest {
		return false
	}
	var ae apiError
	if err := json.Unmarshal(body, &ae); err != nil {
		return status == http.StatusNotFound
	}
	if ae.Error.Code == "model_not_found" {
		return true
	}
	msg := strings.ToLower(ae.Error.Message)
	return strings.Contains(msg, "model") || strings.Contains(msg, "not found")
}
