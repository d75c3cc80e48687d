package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// ErrSynthesisFailed wraps any error from the completion service.
var ErrSynthesisFailed = errors.New("failed to generate README with AI")

const (
	MaxTokens   = 2000
	Temperature = 0.7

	// Fallback is returned when the service answers without content.
	Fallback = "Failed to generate README content"
)

// SystemPrompt is the persona sent with every README request.
const SystemPrompt = "You are an expert technical writer specializing in creating comprehensive, " +
	"well-structured README files for GitHub repositories. Generate README content that follows " +
	"best practices and includes all essential sections."

type Client struct {
	client *openai.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return &Client{client: openai.NewClientWithConfig(cfg)}
}

// Synthesize sends one chat completion and returns the generated text, or
// Fallback when the service returns nothing.
func (c *Client) Synthesize(ctx context.Context, prompt, model, system string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   MaxTokens,
		Temperature: Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSynthesisFailed, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return Fallback, nil
	}
	return resp.Choices[0].Message.Content, nil
}
