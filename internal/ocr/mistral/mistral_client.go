// Package mistral implements port.TextExtractor against the Mistral
// document-OCR API.
package mistral

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"claimcheck/internal/config"
	"claimcheck/internal/domain"
)

// Client calls the Mistral OCR endpoint with documents embedded as base64
// data URIs. It implements port.TextExtractor.
type Client struct {
	apiKey          string
	model           string
	endpoint        string
	maxEncodedBytes int64
	client          *http.Client
}

// NewClient creates an OCR client from the provider config.
func NewClient(cfg *config.OCRConfig) *Client {
	return NewClientWithEndpoint(cfg, cfg.Endpoint)
}

// NewClientWithEndpoint creates a client pointing at a custom API endpoint (for testing).
func NewClientWithEndpoint(cfg *config.OCRConfig, endpoint string) *Client {
	model := cfg.Model
	if model == "" {
		model = "mistral-ocr-latest"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	maxMB := cfg.MaxPayloadMB
	if maxMB == 0 {
		maxMB = 10
	}
	return &Client{
		apiKey:          cfg.APIKey,
		model:           model,
		endpoint:        endpoint,
		maxEncodedBytes: maxMB * 1024 * 1024,
		client:          &http.Client{Timeout: timeout},
	}
}

// apiRequest models the OCR request body.
type apiRequest struct {
	Model              string      `json:"model"`
	Document           apiDocument `json:"document"`
	IncludeImageBase64 bool        `json:"include_image_base64"`
}

type apiDocument struct {
	Type        string `json:"type"`
	DocumentURL string `json:"document_url"`
}

// apiResponse models the OCR success response.
type apiResponse struct {
	Pages []struct {
		Markdown string `json:"markdown"`
	} `json:"pages"`
}

// ExtractText reads the document at filePath and returns its OCR text, with
// each page's markdown joined by a blank line. The base64-encoded payload is
// size-checked before any network call; oversized documents fail with
// domain.ErrPayloadTooLarge. Non-200 responses surface the status code and raw
// body unretried.
func (c *Client) ExtractText(ctx context.Context, filePath string) (string, error) {
	if c.apiKey == "" {
		return "", domain.ErrOCRNotConfigured
	}

	fileBytes, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("reading document: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(fileBytes)
	if int64(len(encoded)) > c.maxEncodedBytes {
		return "", fmt.Errorf("%w: encoded document is %.1f MB (limit %d MB)",
			domain.ErrPayloadTooLarge,
			float64(len(encoded))/1024/1024,
			c.maxEncodedBytes/1024/1024,
		)
	}

	reqBody := apiRequest{
		Model: c.model,
		Document: apiDocument{
			Type:        "document_url",
			DocumentURL: fmt.Sprintf("data:%s;base64,%s", contentTypeFor(filePath), encoded),
		},
		IncludeImageBase64: false,
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
		return "", fmt.Errorf("calling OCR API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("OCR API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var ocr apiResponse
	if err := json.Unmarshal(respBody, &ocr); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}

	pages := make([]string, 0, len(ocr.Pages))
	for _, p := range ocr.Pages {
		pages = append(pages, p.Markdown)
	}
	return strings.Join(pages, "\n\n"), nil
}

// contentTypeFor derives the data-URI content type from the file extension,
// using the upload allow-list for the known types.
func contentTypeFor(filePath string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filePath), "."))
	switch domain.AllowedExtensions[ext] {
	case domain.FileTypePDF:
		return "application/pdf"
	case domain.FileTypeJPG:
		return "image/jpeg"
	case domain.FileTypePNG:
		return "image/png"
	default:
		return "image/" + ext
	}
}
