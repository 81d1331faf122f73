package retriever

import (
	"math"
	"sort"

	"github.com/raementor/raementor/internal/embedding"
)

// CosineSimilarity calculates the cosine similarity between two vectors.
// It is 0 when either vector has zero magnitude. With unequal lengths the dot
// product covers the shared prefix while each norm covers its whole vector.
func CosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dotProduct float64
	for i := 0; i < n; i++ {
		dotProduct += float64(a[i]) * float64(b[i])
	}

	normA := norm(a)
	normB := norm(b)
	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (normA * normB)
}

func norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// Rank scores every chunk against the query and returns the k best,
// highest score first. Equal scores keep document order.
func Rank(chunks []embedding.DocumentChunk, query []float32, k int) []ScoredChunk {
	if k <= 0 {
		k = DefaultTopK
	}

	scored := make([]ScoredChunk, len(chunks))
	for i, chunk := range chunks {
		scored[i] = ScoredChunk{
			Score: CosineSimilarity(query, chunk.Embedding),
			Text:  chunk.Text,
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k]
}
