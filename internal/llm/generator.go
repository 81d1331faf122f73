package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/raementor/raementor/internal/config"
)

// ErrNotConfigured is returned when a remote client lacks its credential
var ErrNotConfigured = errors.New("client not configured")

// Generator turns a prompt into generated text
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ModelOf returns the model a generator talks to, or "" when it does not say
func ModelOf(g Generator) string {
	if m, ok := g.(interface{ Model() string }); ok {
		return m.Model()
	}
	return ""
}

// NewGenerator creates the generation client selected by configuration
func NewGenerator(cfg *config.Config) (Generator, error) {
	switch cfg.Generation.Provider {
	case config.ProviderOpenAI, "":
		client, err := NewResponsesClient(cfg.Generation)
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.ProviderOllama:
		return NewClient(cfg.Ollama), nil
	default:
		return nil, fmt.Errorf("unknown generation provider: %s", cfg.Generation.Provider)
	}
}
