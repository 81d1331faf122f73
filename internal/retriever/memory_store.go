package retriever

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/raementor/raementor/internal/embedding"
)

// MemoryStore is a lazily built in-memory vector store over the reference
// document. It is either empty or fully populated.
type MemoryStore struct {
	mu       sync.RWMutex
	chunks   []embedding.DocumentChunk
	indexer  DocumentIndexer
	embedder *embedding.Embedder
	group    singleflight.Group
	logger   *slog.Logger
}

// NewMemoryStore creates an empty store. A nil embedder disables retrieval.
func NewMemoryStore(idx DocumentIndexer, embedder *embedding.Embedder, logger *slog.Logger) *MemoryStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemoryStore{
		indexer:  idx,
		embedder: embedder,
		logger:   logger,
	}
}

// EnsureBuilt indexes and embeds the document on first use. Concurrent callers
// share a single build. A failed build leaves the store empty and is retried
// by the next caller.
func (m *MemoryStore) EnsureBuilt(ctx context.Context) error {
	if m.Count() > 0 {
		return nil
	}
	if m.embedder == nil {
		return ErrEmbeddingUnavailable
	}

	// The build outlives the request that happened to trigger it
	buildCtx := context.WithoutCancel(ctx)
	_, err, _ := m.group.Do("build", func() (any, error) {
		if m.Count() > 0 {
			return nil, nil
		}
		return nil, m.build(buildCtx)
	})
	return err
}

func (m *MemoryStore) build(ctx context.Context) error {
	result, err := m.indexer.Index()
	if err != nil {
		return fmt.Errorf("failed to index document: %w", err)
	}
	if len(result.Chunks) == 0 {
		m.logger.Warn("reference document produced no chunks", "path", result.Document.Path)
		return nil
	}

	chunks, err := m.embedder.EmbedChunks(ctx, result.Chunks)
	if err != nil {
		return fmt.Errorf("failed to embed document: %w", err)
	}

	m.mu.Lock()
	m.chunks = chunks
	m.mu.Unlock()

	m.logger.Info("vector store built",
		"document", result.Document.Name,
		"chunks", len(chunks),
		"provider", m.embedder.Name(),
		"elapsed", result.ElapsedTime,
	)
	return nil
}

// Chunks returns a copy of the stored chunks in document order
func (m *MemoryStore) Chunks() []embedding.DocumentChunk {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]embedding.DocumentChunk, len(m.chunks))
	copy(out, m.chunks)
	return out
}

// Count returns the number of stored chunks
func (m *MemoryStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.chunks)
}

// Embedder returns the embedder, or nil when retrieval is disabled
func (m *MemoryStore) Embedder() *embedding.Embedder {
	return m.embedder
}
