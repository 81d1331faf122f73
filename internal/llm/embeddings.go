package llm

import (
	"context"
	"fmt"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/raementor/raementor/internal/config"
)

// EmbeddingClient calls an OpenAI-compatible embeddings endpoint
type EmbeddingClient struct {
	client *goopenai.Client
	model  goopenai.EmbeddingModel
}

// NewEmbeddingClient creates an embedding client.
// It returns ErrNotConfigured when no API key is set.
func NewEmbeddingClient(cfg config.EmbeddingConfig) (*EmbeddingClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("embedding: %w", ErrNotConfigured)
	}

	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &EmbeddingClient{
		client: goopenai.NewClientWithConfig(clientCfg),
		model:  goopenai.EmbeddingModel(cfg.Model),
	}, nil
}

// EmbedBatch embeds all texts in one request. Vectors are returned in input
// order; a slot stays nil when the response omits its index.
func (c *EmbeddingClient) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	resp, err := c.client.CreateEmbeddings(ctx, goopenai.EmbeddingRequest{
		Input: texts,
		Model: c.model,
	})
	if err != nil {
		return nil, err
	}

	embeddings := make([][]float32, len(texts))
	for _, data := range resp.Data {
		if data.Index < 0 || data.Index >= len(texts) {
			return nil, fmt.Errorf("embedding index %d out of range for %d inputs", data.Index, len(texts))
		}
		embeddings[data.Index] = data.Embedding
	}

	return embeddings, nil
}

// Model returns the embedding model identifier
func (c *EmbeddingClient) Model() string {
	return string(c.model)
}
