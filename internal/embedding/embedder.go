package embedding

import (
	"context"
	"errors"
	"fmt"
)

// ErrMalformedResponse is returned when the provider answers with the wrong
// number of vectors or with empty vectors
var ErrMalformedResponse = errors.New("malformed embedding response")

// DocumentChunk is a chunk of the reference document with its embedding
type DocumentChunk struct {
	Text      string    `json:"text"`
	Embedding []float32 `json:"embedding"`
}

// Embedder turns chunk texts and queries into vectors. Every call is a single
// batched request; there are no retries.
type Embedder struct {
	provider Provider
}

// NewEmbedder creates a new embedder
func NewEmbedder(provider Provider) *Embedder {
	return &Embedder{provider: provider}
}

// Name returns the underlying provider name
func (e *Embedder) Name() string {
	return e.provider.Name()
}

// Model returns the embedding model identifier
func (e *Embedder) Model() string {
	return e.provider.Model()
}

// EmbedChunks embeds all texts in one request and pairs each text with its vector
func (e *Embedder) EmbedChunks(ctx context.Context, texts []string) ([]DocumentChunk, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	vectors, err := e.embed(ctx, texts)
	if err != nil {
		return nil, err
	}

	chunks := make([]DocumentChunk, len(texts))
	for i, text := range texts {
		chunks[i] = DocumentChunk{Text: text, Embedding: vectors[i]}
	}
	return chunks, nil
}

// EmbedQuery embeds a single query text
func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (e *Embedder) embed(ctx context.Context, texts []string) ([][]float32, error) {
	vectors, err := e.provider.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%s embedding request failed: %w", e.provider.Name(), err)
	}

	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("%w: got %d vectors for %d texts", ErrMalformedResponse, len(vectors), len(texts))
	}
	for i, v := range vectors {
		if len(v) == 0 {
			return nil, fmt.Errorf("%w: empty vector at index %d", ErrMalformedResponse, i)
		}
	}

	return vectors, nil
}
