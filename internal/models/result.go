// ABOUTME: Transient retrieval results produced by the ranking pipeline
// ABOUTME: RankedResult carries a cosine score, ResolvedDocument adds fetched content
package models

// RankedResult is a scored index entry. Similarity is the raw cosine value,
// not clamped; for normalized inputs it falls in [-1, 1].
type RankedResult struct {
	ID         string                 `json:"id"`
	Title      string                 `json:"title"`
	Type       DocumentType           `json:"type"`
	Category   string                 `json:"category"`
	Similarity float64                `json:"similarity"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// ResolvedDocument is a ranked result whose full text was fetched from its
// backing catalog. Results that fail to resolve never become ResolvedDocuments.
type ResolvedDocument struct {
	ID         string       `json:"id"`
	Title      string       `json:"title"`
	Type       DocumentType `json:"type"`
	Similarity float64      `json:"similarity"`
	Content    string       `json:"content"`
}
