package retriever

import (
	"errors"

	"github.com/raementor/raementor/internal/indexer"
)

var (
	// ErrEmbeddingUnavailable is returned when no embedding provider is configured
	ErrEmbeddingUnavailable = errors.New("embedding provider unavailable")
	// ErrEmptyStore is returned when the store holds no chunks after building
	ErrEmptyStore = errors.New("vector store is empty")
)

// DefaultTopK is the number of chunks returned when k is not positive
const DefaultTopK = 3

// ScoredChunk represents a chunk with its similarity to the query
type ScoredChunk struct {
	Score float64 `json:"score"`
	Text  string  `json:"text"`
}

// DocumentIndexer produces the chunks of the reference document
type DocumentIndexer interface {
	Index() (*indexer.IndexResult, error)
}
