package llm

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// Client generates prose from a single prompt.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Config selects and tunes a provider.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string // overrides the provider endpoint, used by tests and proxies
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// ErrMissingAPIKey is returned when a provider is configured without a key.
var ErrMissingAPIKey = errors.New("API key is required")

const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 1024
	defaultTimeout     = 60 * time.Second
)

func (c Config) temperature() float64 {
	if c.Temperature == 0 {
		return defaultTemperature
	}
	return c.Temperature
}

func (c Config) maxTokens() int {
	if c.MaxTokens == 0 {
		return defaultMaxTokens
	}
	return c.MaxTokens
}

func (c Config) httpClient() *http.Client {
	timeout := c.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}
