package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"

	"github.com/raementor/raementor/internal/config"
)

// ResponsesClient generates text through an OpenAI-compatible Responses API
type ResponsesClient struct {
	client openai.Client
	model  string
}

// NewResponsesClient creates a generation client.
// It returns ErrNotConfigured when no API key is set.
func NewResponsesClient(cfg config.GenerationConfig) (*ResponsesClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("generation: %w", ErrNotConfigured)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimRight(cfg.BaseURL, "/")+"/"))
	}

	return &ResponsesClient{
		client: openai.NewClient(opts...),
		model:  cfg.Model,
	}, nil
}

// Generate sends a single prompt and returns the generated text
func (c *ResponsesClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Responses.New(ctx, responses.ResponseNewParams{
		Input: responses.ResponseNewParamsInputUnion{OfString: openai.String(prompt)},
		Model: shared.ResponsesModel(c.model),
	})
	if err != nil {
		return "", err
	}

	out, err := ParseOutput([]byte(resp.RawJSON()))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	return out.Text, nil
}

// Model returns the generation model identifier
func (c *ResponsesClient) Model() string {
	return c.model
}
