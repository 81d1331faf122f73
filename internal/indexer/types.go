package indexer

// Document describes the loaded reference document
type Document struct {
	Path      string `json:"path"`
	Name      string `json:"name"`
	Format    string `json:"format"` // text, pdf
	Size      int64  `json:"size"`
	IndexedAt string `json:"indexed_at"`
}

// IndexResult represents the result of indexing the reference document
type IndexResult struct {
	Document    *Document `json:"document"`
	Chunks      []string  `json:"chunks"`
	ElapsedTime string    `json:"elapsed_time"`
}
