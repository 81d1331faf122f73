package indexer

import (
	"fmt"
	"io"
	"time"

	"github.com/raementor/raementor/internal/config"
)

// Indexer loads and chunks the reference document
type Indexer struct {
	config config.DocumentConfig
}

// NewIndexer creates a new indexer
func NewIndexer(cfg config.DocumentConfig) *Indexer {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	return &Indexer{config: cfg}
}

// Path returns the configured document path
func (idx *Indexer) Path() string {
	return idx.config.Path
}

// Index reads the configured document and splits it into chunks
func (idx *Indexer) Index() (*IndexResult, error) {
	startTime := time.Now()

	doc, text, err := LoadDocument(idx.config.Path)
	if err != nil {
		return nil, err
	}
	doc.IndexedAt = time.Now().Format(time.RFC3339)

	return &IndexResult{
		Document:    doc,
		Chunks:      Chunk(text, idx.config.ChunkSize),
		ElapsedTime: time.Since(startTime).String(),
	}, nil
}

// IndexStats returns statistics about indexed content
type IndexStats struct {
	TotalChunks  int     `json:"total_chunks"`
	TotalChars   int     `json:"total_chars"`
	LongestChunk int     `json:"longest_chunk"`
	AverageChars float64 `json:"average_chars_per_chunk"`
}

// GetStats returns statistics for an index result
func GetStats(result *IndexResult) *IndexStats {
	stats := &IndexStats{TotalChunks: len(result.Chunks)}

	for _, chunk := range result.Chunks {
		n := len([]rune(chunk))
		stats.TotalChars += n
		if n > stats.LongestChunk {
			stats.LongestChunk = n
		}
	}

	if stats.TotalChunks > 0 {
		stats.AverageChars = float64(stats.TotalChars) / float64(stats.TotalChunks)
	}

	return stats
}

// PrintStats writes indexing statistics to w
func PrintStats(w io.Writer, result *IndexResult) {
	stats := GetStats(result)

	fmt.Fprintf(w, "\nIndexing Statistics\n")
	fmt.Fprintf(w, "----------------------------------------\n")
	fmt.Fprintf(w, "   Document: %s (%s, %d bytes)\n", result.Document.Name, result.Document.Format, result.Document.Size)
	fmt.Fprintf(w, "   Total Chunks: %d\n", stats.TotalChunks)
	fmt.Fprintf(w, "   Total Characters: %d\n", stats.TotalChars)
	fmt.Fprintf(w, "   Longest Chunk: %d\n", stats.LongestChunk)
	fmt.Fprintf(w, "   Avg Chars/Chunk: %.1f\n", stats.AverageChars)
	fmt.Fprintf(w, "   Time Elapsed: %s\n", result.ElapsedTime)
}
