package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const geminiDefaultModel = "gemini-pro"

// Generator produces suggestion text from a prompt. Both the Gemini
// and OpenAI clients implement it, so callers never depend on a
// provider directly.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Client implements the Generator interface using the Gemini API.
type Client struct {
	genaiClient *genai.Client
	model       *genai.GenerativeModel
}

// Ensure Client implements Generator.
var _ Generator = (*Client)(nil)

// NewClient creates a new Gemini client with the default model.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Client{
		genaiClient: client,
		model:       client.GenerativeModel(geminiDefaultModel),
	}, nil
}

// Close closes the underlying API client.
func (c *Client) Close() error {
	return c.genaiClient.Close()
}

// GenerateText sends a prompt to Gemini and returns the generated
// text, trimmed. Non-text parts of the response are skipped.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates returned")
	}

	text := candidateText(resp.Candidates[0])
	if text == "" {
		return "", fmt.Errorf("candidate contained no text")
	}
	return text, nil
}

func candidateText(c *genai.Candidate) string {
	if c.Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range c.Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return strings.TrimSpace(sb.String())
}
