package llm

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// APIError is a non-200 reply from a REST provider.
type APIError struct {
	Provider string
	Status   int
	Body     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.Status, e.Body)
}

// restEndpoint holds what the REST providers share.
type restEndpoint struct {
	client   *http.Client
	provider string
	baseURL  string
	model    string
	temp     float64
	tokens   int
	headers  map[string]string
}

func newRestEndpoint(provider, defaultURL, defaultModel string, cfg Config) (restEndpoint, error) {
	if cfg.APIKey == "" {
		return restEndpoint{}, fmt.Errorf("%s: %w", provider, ErrMissingAPIKey)
	}
	return restEndpoint{
		client:   cfg.httpClient(),
		provider: provider,
		baseURL:  strings.TrimSuffix(cmp.Or(cfg.BaseURL, defaultURL), "/"),
		model:    cmp.Or(cfg.Model, defaultModel),
		temp:     cfg.temperature(),
		tokens:   cfg.maxTokens(),
		headers:  map[string]string{"Content-Type": "application/json"},
	}, nil
}

// post sends in as JSON to path and decodes a 200 reply into out.
func (e restEndpoint) post(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", e.provider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build %s request: %w", e.provider, err)
	}
	for k, v := range e.headers {
		req.Header.Set(k, v)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s request: %w", e.provider, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s reply: %w", e.provider, err)
	}
	if resp.StatusCode != http.StatusOK {
		return &APIError{Provider: e.provider, Status: resp.StatusCode, Body: string(body)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s reply: %w", e.provider, err)
	}
	return nil
}

// chatMessage is a single user or assistant turn.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
