// ABOUTME: Tests for embedding index models and validation
// ABOUTME: Covers uniqueness, type, and dimension invariants
package models

import (
	"strings"
	"testing"
)

func TestDocumentTypeValid(t *testing.T) {
	tests := []struct {
		docType DocumentType
		want    bool
	}{
		{DocumentTypeBlog, true},
		{DocumentTypePrivate, true},
		{DocumentType("portfolio"), false},
		{DocumentType(""), false},
	}

	for _, tt := range tests {
		if got := tt.docType.Valid(); got != tt.want {
			t.Errorf("DocumentType(%q).Valid() = %v, want %v", tt.docType, got, tt.want)
		}
	}
}

func validIndex() *EmbeddingIndex {
	return &EmbeddingIndex{
		TotalDocuments: 2,
		Embeddings: []DocumentEmbedding{
			{ID: "blog-1", Title: "First", Type: DocumentTypeBlog, Embedding: []float64{1, 0}},
			{ID: "notes", Title: "Notes", Type: DocumentTypePrivate, Embedding: []float64{0, 1}},
		},
	}
}

func TestEmbeddingIndexValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*EmbeddingIndex)
		wantErr string
	}{
		{
			name:   "valid index",
			mutate: func(idx *EmbeddingIndex) {},
		},
		{
			name:    "empty index",
			mutate:  func(idx *EmbeddingIndex) { idx.Embeddings = nil },
			wantErr: "no embeddings",
		},
		{
			name:    "missing id",
			mutate:  func(idx *EmbeddingIndex) { idx.Embeddings[1].ID = "" },
			wantErr: "missing id",
		},
		{
			name:    "duplicate id",
			mutate:  func(idx *EmbeddingIndex) { idx.Embeddings[1].ID = "blog-1" },
			wantErr: "duplicate id",
		},
		{
			name:    "unknown type",
			mutate:  func(idx *EmbeddingIndex) { idx.Embeddings[0].Type = "wiki" },
			wantErr: "unknown type",
		},
		{
			name:    "empty vector",
			mutate:  func(idx *EmbeddingIndex) { idx.Embeddings[1].Embedding = nil },
			wantErr: "vector cannot be empty",
		},
		{
			name:    "inconsistent dimension",
			mutate:  func(idx *EmbeddingIndex) { idx.Embeddings[1].Embedding = []float64{1, 2, 3} },
			wantErr: "dimension mismatch",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := validIndex()
			tt.mutate(idx)

			err := idx.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestEmbeddingIndexDimension(t *testing.T) {
	if got := validIndex().Dimension(); got != 2 {
		t.Errorf("Dimension() = %d, want 2", got)
	}

	empty := &EmbeddingIndex{}
	if got := empty.Dimension(); got != 0 {
		t.Errorf("empty Dimension() = %d, want 0", got)
	}
}
