package retriever

import (
	"context"
	"fmt"
)

// Ranker answers top-k similarity queries against a MemoryStore
type Ranker struct {
	store *MemoryStore
}

// NewRanker creates a ranker over the given store
func NewRanker(store *MemoryStore) *Ranker {
	return &Ranker{store: store}
}

// Search builds the store if needed, embeds the query and returns the k most
// similar chunks with their scores
func (r *Ranker) Search(ctx context.Context, query string, k int) ([]ScoredChunk, error) {
	if err := r.store.EnsureBuilt(ctx); err != nil {
		return nil, err
	}

	embedder := r.store.Embedder()
	if embedder == nil {
		return nil, ErrEmbeddingUnavailable
	}

	chunks := r.store.Chunks()
	if len(chunks) == 0 {
		return nil, ErrEmptyStore
	}

	queryEmbedding, err := embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	return Rank(chunks, queryEmbedding, k), nil
}

// TopK returns the texts of the k chunks most similar to query
func (r *Ranker) TopK(ctx context.Context, query string, k int) ([]string, error) {
	results, err := r.Search(ctx, query, k)
	if err != nil {
		return nil, err
	}

	texts := make([]string, len(results))
	for i, result := range results {
		texts[i] = result.Text
	}
	return texts, nil
}

// Count returns the number of stored chunks
func (r *Ranker) Count() int {
	return r.store.Count()
}
