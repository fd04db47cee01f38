package mistral

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claimcheck/internal/config"
	"claimcheck/internal/domain"
)

func testConfig() *config.OCRConfig {
	return &config.OCRConfig{
		APIKey:       "test-key",
		Model:        "mistral-ocr-latest",
		TimeoutSecs:  5,
		MaxPayloadMB: 10,
	}
}

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestExtractText_JoinsPages(t *testing.T) {
	var gotAuth string
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pages":[{"markdown":"# Page 1"},{"markdown":"# Page 2"}]}`))
	}))
	defer srv.Close()

	c := NewClientWithEndpoint(testConfig(), srv.URL)
	path := writeTempFile(t, "claim.pdf", []byte("%PDF-1.4 test"))

	text, err := c.ExtractText(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, "# Page 1\n\n# Page 2", text)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "mistral-ocr-latest", gotBody["model"])

	doc := gotBody["document"].(map[string]interface{})
	assert.Equal(t, "document_url", doc["type"])
	assert.True(t, strings.HasPrefix(doc["document_url"].(string), "data:application/pdf;base64,"))
}

func TestExtractText_ImageContentType(t *testing.T) {
	var gotURI string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotURI = body["document"].(map[string]interface{})["document_url"].(string)
		_, _ = w.Write([]byte(`{"pages":[]}`))
	}))
	defer srv.Close()

	c := NewClientWithEndpoint(testConfig(), srv.URL)

	_, err := c.ExtractText(context.Background(), writeTempFile(t, "receipt.jpg", []byte("jpeg")))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(gotURI, "data:image/jpeg;base64,"))

	_, err = c.ExtractText(context.Background(), writeTempFile(t, "receipt.jpeg", []byte("jpeg")))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(gotURI, "data:image/jpeg;base64,"))

	_, err = c.ExtractText(context.Background(), writeTempFile(t, "eob.png", []byte("png")))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(gotURI, "data:image/png;base64,"))
}

func TestExtractText_EmptyPages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"pages":[]}`))
	}))
	defer srv.Close()

	c := NewClientWithEndpoint(testConfig(), srv.URL)
	text, err := c.ExtractText(context.Background(), writeTempFile(t, "blank.pdf", []byte("x")))

	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestExtractText_MissingAPIKey(t *testing.T) {
	cfg := testConfig()
	cfg.APIKey = ""
	c := NewClientWithEndpoint(cfg, "http://unused.invalid")

	_, err := c.ExtractText(context.Background(), writeTempFile(t, "claim.pdf", []byte("x")))
	assert.ErrorIs(t, err, domain.ErrOCRNotConfigured)
}

func TestExtractText_PayloadTooLarge_NoNetworkCall(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.MaxPayloadMB = 1
	c := NewClientWithEndpoint(cfg, srv.URL)

	// 1 MB of raw bytes encodes to ~1.33 MB of base64, over the 1 MB limit.
	path := writeTempFile(t, "big.pdf", make([]byte, 1024*1024))

	_, err := c.ExtractText(context.Background(), path)

	assert.ErrorIs(t, err, domain.ErrPayloadTooLarge)
	assert.False(t, called, "size guard must reject before any network call")
}

func TestExtractText_APIErrorSurfacesStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid document"}`))
	}))
	defer srv.Close()

	c := NewClientWithEndpoint(testConfig(), srv.URL)
	_, err := c.ExtractText(context.Background(), writeTempFile(t, "claim.pdf", []byte("x")))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 422")
	assert.Contains(t, err.Error(), `{"message":"invalid document"}`)
}

func TestExtractText_MissingFile(t *testing.T) {
	c := NewClientWithEndpoint(testConfig(), "http://unused.invalid")
	_, err := c.ExtractText(context.Background(), filepath.Join(t.TempDir(), "nope.pdf"))
	assert.Error(t, err)
}
