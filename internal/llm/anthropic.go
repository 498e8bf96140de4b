package llm

import (
	"context"
	"strings"
)

const (
	anthropicBaseURL      = "https://api.anthropic.com/v1"
	anthropicVersion      = "2023-06-01"
	defaultAnthropicModel = "claude-3-5-haiku-latest"
)

type anthropicRequest struct {
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

type anthropicReply struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// anthropicClient talks to the messages endpoint.
type anthropicClient struct {
	restEndpoint
}

func newAnthropicClient(cfg Config) (*anthropicClient, error) {
	ep, err := newRestEndpoint("anthropic", anthropicBaseURL, defaultAnthropicModel, cfg)
	if err != nil {
		return nil, err
	}
	ep.headers["x-api-key"] = cfg.APIKey
	ep.headers["anthropic-version"] = anthropicVersion
	return &anthropicClient{ep}, nil
}

// Generate joins the text blocks of the reply.
func (c *anthropicClient) Generate(ctx context.Context, prompt string) (string, error) {
	var reply anthropicReply
	err := c.post(ctx, "/messages", anthropicRequest{
		Model:       c.model,
		MaxTokens:   c.tokens,
		Temperature: c.temp,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
	}, &reply)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, block := range reply.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}
