package llm

import (
	"context"
)

const (
	openAIBaseURL      = "https://api.openai.com/v1"
	defaultOpenAIModel = "gpt-4o-mini"
)

type openAIRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type openAIReply struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// openAIClient talks to the chat completions endpoint.
type openAIClient struct {
	restEndpoint
}

func newOpenAIClient(cfg Config) (*openAIClient, error) {
	ep, err := newRestEndpoint("OpenAI", openAIBaseURL, defaultOpenAIModel, cfg)
	if err != nil {
		return nil, err
	}
	ep.headers["Authorization"] = "Bearer " + cfg.APIKey
	return &openAIClient{ep}, nil
}

// Generate returns the first choice, or "" when the reply has none.
func (c *openAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	var reply openAIReply
	err := c.post(ctx, "/chat/completions", openAIRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: c.temp,
		MaxTokens:   c.tokens,
	}, &reply)
	if err != nil || len(reply.Choices) == 0 {
		return "", err
	}
	return reply.Choices[0].Message.Content, nil
}
