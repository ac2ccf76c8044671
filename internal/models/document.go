// ABOUTME: Embedding index models for the precomputed document corpus
// ABOUTME: Defines DocumentEmbedding and EmbeddingIndex with consistency validation
package models

import (
	"errors"
	"fmt"
)

// DocumentType identifies which catalog a document belongs to
type DocumentType string

const (
	// DocumentTypeBlog is a public blog post, resolved through the blog catalog
	DocumentTypeBlog DocumentType = "blog"
	// DocumentTypePrivate is a private document, resolved through the private catalog
	DocumentTypePrivate DocumentType = "private"
)

// Valid reports whether the document type is one of the known catalogs
func (t DocumentType) Valid() bool {
	return t == DocumentTypeBlog || t == DocumentTypePrivate
}

// DocumentEmbedding is one entry of the precomputed embedding index
type DocumentEmbedding struct {
	ID        string                 `json:"id"`
	Title     string                 `json:"title"`
	Type      DocumentType           `json:"type"`
	Category  string                 `json:"category"`
	Embedding []float64              `json:"embedding"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// EmbeddingIndex is the static embedding artifact, loaded once per session
// and read-only afterwards
type EmbeddingIndex struct {
	TotalDocuments int                 `json:"totalDocuments"`
	Embeddings     []DocumentEmbedding `json:"embeddings"`
}

// Dimension returns the vector dimension shared by all index entries,
// or 0 for an empty index
func (idx *EmbeddingIndex) Dimension() int {
	if len(idx.Embeddings) == 0 {
		return 0
	}
	return len(idx.Embeddings[0].Embedding)
}

// Validate checks the index invariants: at least one document, unique IDs,
// known types, and one uniform vector dimension across all entries
func (idx *EmbeddingIndex) Validate() error {
	if len(idx.Embeddings) == 0 {
		return errors.New("index contains no embeddings")
	}

	dim := len(idx.Embeddings[0].Embedding)
	seen := make(map[string]bool, len(idx.Embeddings))

	for i, doc := range idx.Embeddings {
		if doc.ID == "" {
			return fmt.Errorf("embedding %d: missing id", i)
		}
		if seen[doc.ID] {
			return fmt.Errorf("embedding %d: duplicate id %q", i, doc.ID)
		}
		seen[doc.ID] = true

		if !doc.Type.Valid() {
			return fmt.Errorf("embedding %q: unknown type %q", doc.ID, doc.Type)
		}
		if len(doc.Embedding) == 0 {
			return fmt.Errorf("embedding %q: vector cannot be empty", doc.ID)
		}
		if len(doc.Embedding) != dim {
			return fmt.Errorf("embedding %q: dimension mismatch: expected %d, got %d",
				doc.ID, dim, len(doc.Embedding))
		}
	}

	return nil
}
