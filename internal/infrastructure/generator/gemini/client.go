// Package gemini provides a DraftGenerator implementation using the Google
// GenAI SDK, against either the Gemini API or a Vertex AI endpoint.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/ersonp/feedback-curator/internal/domain/ports"
	"github.com/ersonp/feedback-curator/internal/infrastructure/config"
)

// Client implements the DraftGenerator interface using google.golang.org/genai.
type Client struct {
	client   *genai.Client
	endpoint string
}

// NewClient creates a new Gemini draft generator. When a project is
// configured the client routes through Vertex AI (required for tuned
// endpoints); otherwise it uses the Gemini API with an API key.
func NewClient(ctx context.Context, cfg config.ModelConfig) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("model endpoint is required")
	}

	cc := &genai.ClientConfig{}
	if cfg.Project != "" {
		cc.Backend = genai.BackendVertexAI
		cc.Project = cfg.Project
		cc.Location = cfg.Location
	} else {
		if cfg.APIKey == "" {
			return nil, errors.New("model API key is required (set GEMINI_API_KEY)")
		}
		cc.Backend = genai.BackendGeminiAPI
		cc.APIKey = cfg.APIKey
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &Client{client: client, endpoint: cfg.Endpoint}, nil
}

// Model returns the endpoint identifier drafts are generated with.
func (c *Client) Model() string {
	return c.endpoint
}

// generationConfig asks for plain text and disables the safety throttles the
// reviewer workflow handles itself (a blocked draft is surfaced, not hidden).
func generationConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0.7),
		MaxOutputTokens:  1024,
		ResponseMIMEType: "text/plain",
		SafetySettings: []*genai.SafetySetting{
			{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdOff},
			{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdOff},
			{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdOff},
			{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdOff},
		},
	}
}

// Generate tries the streaming call first and collects the chunks; when that
// yields no text it makes exactly one non-streaming attempt. Callers only
// ever see the fully resolved draft.
func (c *Client) Generate(ctx context.Context, prompt string) (*ports.Draft, error) {
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	cfg := generationConfig()
	draft := &ports.Draft{}

	text, streamErr := c.generateStream(ctx, contents, cfg)
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

	resp, err := c.client.Models.GenerateContent(ctx, c.endpoint, contents, cfg)
	fallback := ports.Attempt{Route: ports.RouteBlocking}
	if err != nil {
		fallback.Err = err.Error()
		draft.Attempts = append(draft.Attempts, fallback)
		return draft, fmt.Errorf("generating draft: %w", err)
	}

	text = collectText(resp)
	fallback.Chars = len(text)
	draft.Attempts = append(draft.Attempts, fallback)

	draft.Text = text
	draft.Route = ports.RouteBlocking
	draft.Blocked, draft.Reason = blockInfo(resp)
	return draft, nil
}

// generateStream runs the streaming call and joins the chunk texts. A
// streaming failure is not fatal; the caller falls through to the blocking
// call.
func (c *Client) generateStream(ctx context.Context, contents []*genai.Content, cfg *genai.GenerateContentConfig) (string, error) {
	var sb strings.Builder
	for chunk, err := range c.client.Models.GenerateContentStream(ctx, c.endpoint, contents, cfg) {
		if err != nil {
			return strings.TrimSpace(sb.String()), err
		}
		if chunk == nil {
			continue
		}
		// Chunks are continuations; append the raw part text so word
		// boundaries survive.
		for _, cand := range chunk.Candidates {
			if cand == nil || cand.Content == nil {
				continue
			}
			for _, part := range cand.Content.Parts {
				if part != nil {
					sb.WriteString(part.Text)
				}
			}
		}
	}
	return strings.TrimSpace(sb.String()), nil
}

// collectText scrapes every text part out of a response. Responses from
// tuned endpoints sometimes carry text only in candidate parts, so this is
// more thorough than the first-candidate shortcut.
func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var chunks []string
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part != nil && part.Text != "" {
				chunks = append(chunks, part.Text)
			}
		}
	}
	return strings.TrimSpace(strings.Join(chunks, "\n"))
}

// blockInfo reports whether a response was suppressed by a safety filter and
// a short deduplicated reason string.
func blockInfo(resp *genai.GenerateContentResponse) (bool, string) {
	if resp == nil {
		return false, ""
	}

	var reasons []string
	seen := make(map[string]bool)
	add := func(r string) {
		if r != "" && !seen[r] {
			seen[r] = true
			reasons = append(reasons, r)
		}
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		add(string(resp.PromptFeedback.BlockReason))
	}
	for _, cand := range resp.Candidates {
		if cand == nil {
			continue
		}
		switch cand.FinishReason {
		case genai.FinishReasonSafety, genai.FinishReasonBlocklist, genai.FinishReasonProhibitedContent:
			add(string(cand.FinishReason))
		}
		for _, rating := range cand.SafetyRatings {
			if rating != nil && rating.Blocked {
				add(fmt.Sprintf("%s:%s", rating.Category, rating.Probability))
			}
		}
	}

	return len(reasons) > 0, strings.Join(reasons, ", ")
}
