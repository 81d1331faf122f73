package indexer

import "strings"

// DefaultChunkSize is the maximum chunk length in characters
const DefaultChunkSize = 1000

// Chunk splits text into paragraphs on blank lines and slices any paragraph
// longer than maxChars into consecutive maxChars-sized pieces.
// Lengths are counted in characters (runes), not bytes.
func Chunk(text string, maxChars int) []string {
	if maxChars <= 0 {
		maxChars = DefaultChunkSize
	}

	var chunks []string
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		chunks = append(chunks, slice(para, maxChars)...)
	}

	// No paragraph survived but there is content: slice the raw text
	if len(chunks) == 0 && strings.TrimSpace(text) != "" {
		chunks = slice(text, maxChars)
	}

	return chunks
}

// slice cuts s into pieces of at most size runes
func slice(s string, size int) []string {
	runes := []rune(s)
	if len(runes) <= size {
		return []string{s}
	}

	pieces := make([]string, 0, (len(runes)+size-1)/size)
	for i := 0; i < len(runes); i += size {
		end := i + size
		if end > len(runes) {
			end = len(runes)
		}
		pieces = append(pieces, string(runes[i:end]))
	}
	return pieces
}
