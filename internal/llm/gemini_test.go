package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := newGeminiClient(context.Background(), Config{})
	require.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestGeminiClient_Generate(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Japan is the top market."}]}}]}`))
	}))
	defer server.Close()

	client, err := newGeminiClient(context.Background(), Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	text, err := client.Generate(context.Background(), "analyze")
	require.NoError(t, err)
	assert.Equal(t, "Japan is the top market.", text)
	assert.True(t, strings.HasSuffix(gotPath, "models/"+DefaultGeminiModel+":generateContent"), "path %s", gotPath)
}

func TestGeminiClient_GenerateServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`))
	}))
	defer server.Close()

	client, err := newGeminiClient(context.Background(), Config{APIKey: "bad", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "analyze")
	require.Error(t, err)
}
