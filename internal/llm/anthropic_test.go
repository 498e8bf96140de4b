package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAnthropicClient_RequiresKey(t *testing.T) {
	_, err := newAnthropicClient(Config{})
	require.ErrorIs(t, err, ErrMissingAPIKey)

	client, err := newAnthropicClient(Config{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, defaultAnthropicModel, client.model)
	assert.Equal(t, defaultMaxTokens, client.tokens)
}

func TestAnthropicClient_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"Sales are "},{"type":"tool_use"},{"type":"text","text":"growing."}]}`))
	}))
	defer server.Close()

	client, err := newAnthropicClient(Config{APIKey: "test-key", BaseURL: server.URL + "/"})
	require.NoError(t, err)

	text, err := client.Generate(context.Background(), "analyze")
	require.NoError(t, err)
	assert.Equal(t, "Sales are growing.", text)
}

func TestAnthropicClient_GenerateServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, err := newAnthropicClient(Config{APIKey: "k", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}
