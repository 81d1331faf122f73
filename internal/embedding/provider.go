package embedding

import (
	"context"
	"fmt"

	"github.com/raementor/raementor/internal/config"
	"github.com/raementor/raementor/internal/llm"
)

// ErrNotConfigured is returned when the selected provider has no credential
var ErrNotConfigured = llm.ErrNotConfigured

// Provider is the interface for embedding providers
type Provider interface {
	// EmbedBatch generates embeddings for multiple texts in one request
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Name returns the provider name
	Name() string

	// Model returns the embedding model identifier
	Model() string
}

// OpenAIProvider wraps an OpenAI-compatible embeddings endpoint
type OpenAIProvider struct {
	client *llm.EmbeddingClient
}

// NewOpenAIProvider creates a new OpenAI-compatible embedding provider
func NewOpenAIProvider(cfg config.EmbeddingConfig) (*OpenAIProvider, error) {
	client, err := llm.NewEmbeddingClient(cfg)
	if err != nil {
		return nil, err
	}
	return &OpenAIProvider{client: client}, nil
}

func (p *OpenAIProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return p.client.EmbedBatch(ctx, texts)
}

func (p *OpenAIProvider) Name() string {
	return "openai"
}

func (p *OpenAIProvider) Model() string {
	return p.client.Model()
}

// OllamaProvider wraps Ollama client as embedding provider
type OllamaProvider struct {
	client *llm.Client
}

// NewOllamaProvider creates a new Ollama embedding provider
func NewOllamaProvider(cfg config.OllamaConfig) *OllamaProvider {
	return &OllamaProvider{client: llm.NewClient(cfg)}
}

func (p *OllamaProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return p.client.EmbedBatch(ctx, texts)
}

func (p *OllamaProvider) Name() string {
	return "ollama"
}

func (p *OllamaProvider) Model() string {
	return p.client.GetEmbeddingModel()
}

// NewProvider creates an embedding provider based on configuration
func NewProvider(cfg *config.Config) (Provider, error) {
	switch cfg.Embedding.Provider {
	case config.ProviderOpenAI, "":
		p, err := NewOpenAIProvider(cfg.Embedding)
		if err != nil {
			return nil, err
		}
		return p, nil
	case config.ProviderOllama:
		return NewOllamaProvider(cfg.Ollama), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.Embedding.Provider)
	}
}
