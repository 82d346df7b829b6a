// Package openai provides a DraftGenerator implementation using an
// OpenAI-compatible chat-completion endpoint.
package openai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/ersonp/feedback-curator/internal/domain/ports"
	"github.com/ersonp/feedback-curator/internal/infrastructure/config"
)

const defaultModel = "gpt-4o-mini"

// Client implements the DraftGenerator interface using OpenAI.
type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates a new OpenAI draft generator.
func NewClient(cfg config.ModelConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}

	model := cfg.Endpoint
	if model == "" {
		model = defaultModel
	}

	return &Client{
		client: openai.NewClient(cfg.APIKey),
		model:  model,
	}, nil
}

// Model returns the model identifier drafts are generated with.
func (c *Client) Model() string {
	return c.model
}

func (c *Client) request(prompt string) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: 0.7,
		MaxTokens:   1024,
	}
}

// Generate streams the completion first; when the stream yields no text it
// makes exactly one blocking attempt.
func (c *Client) Generate(ctx context.Context, prompt string) (*ports.Draft, error) {
	draft := &ports.Draft{}

	text, streamErr := c.generateStream(ctx, prompt)
	attempt := ports.Attempt{Route: ports.RouteStream, Chars: len(text)}
	if streamErr != nil {
		attempt.Err = streamErr.Error()
	}
	draft.Attempts = append(draft.Attempts, attempt)

	if text != "" {
		draft.Text = text
		draft.Route = ports.RouteStream
		return draft, nil
	}

	resp, err := c.client.CreateChatCompletion(ctx, c.request(prompt))
	fallback := ports.Attempt{Route: ports.RouteBlocking}
	if err != nil {
		fallback.Err = err.Error()
		draft.Attempts = append(draft.Attempts, fallback)
		return draft, fmt.Errorf("calling OpenAI: %w", err)
	}
	if len(resp.Choices) == 0 {
		fallback.Err = "no choices returned"
		draft.Attempts = append(draft.Attempts, fallback)
		draft.Route = ports.RouteBlocking
		return draft, nil
	}

	choice := resp.Choices[0]
	text = strings.TrimSpace(choice.Message.Content)
	fallback.Chars = len(text)
	draft.Attempts = append(draft.Attempts, fallback)

	draft.Text = text
	draft.Route = ports.RouteBlocking
	if choice.FinishReason == openai.FinishReasonContentFilter {
		draft.Blocked = true
		draft.Reason = string(choice.FinishReason)
	}
	return draft, nil
}

func (c *Client) generateStream(ctx context.Context, prompt string) (string, error) {
	stream, err := c.client.CreateChatCompletionStream(ctx, c.request(prompt))
	if err != nil {
		return "", err
	}
	defer stream.Close()

	var sb strings.Builder
	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return strings.TrimSpace(sb.String()), err
		}
		if len(resp.Choices) > 0 {
			sb.WriteString(resp.Choices[0].Delta.Content)
		}
	}
	return strings.TrimSpace(sb.String()), nil
}
