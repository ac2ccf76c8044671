// ABOUTME: Tests for embedding index loading and the retrieval context
// ABOUTME: Uses temp site directories with real JSON artifacts
package index

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/efan/sitechat/internal/models"
)

const validArtifact = `{
	"totalDocuments": 2,
	"embeddings": [
		{"id": "blog-1", "title": "Intro to Go", "type": "blog", "category": "Programming", "embedding": [0.1, 0.2, 0.3]},
		{"id": "resume", "title": "Resume", "type": "private", "embedding": [0.4, 0.5, 0.6]}
	]
}`

func writeArtifact(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, ArtifactName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing artifact: %v", err)
	}
	return dir
}

func TestLoad(t *testing.T) {
	dir := writeArtifact(t, validArtifact)

	idx, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(idx.Embeddings) != 2 {
		t.Fatalf("len(Embeddings) = %d, want 2", len(idx.Embeddings))
	}
	if idx.Dimension() != 3 {
		t.Errorf("Dimension() = %d, want 3", idx.Dimension())
	}
	if idx.Embeddings[0].ID != "blog-1" || idx.Embeddings[0].Type != models.DocumentTypeBlog {
		t.Errorf("first entry = %+v", idx.Embeddings[0])
	}
}

func TestLoad_Failures(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "invalid JSON",
			content: `{"embeddings": [`,
			wantErr: "parsing index artifact",
		},
		{
			name:    "empty index",
			content: `{"totalDocuments": 0, "embeddings": []}`,
			wantErr: "invalid index artifact",
		},
		{
			name: "inconsistent dimensions",
			content: `{"embeddings": [
				{"id": "a", "title": "A", "type": "blog", "embedding": [1, 2]},
				{"id": "b", "title": "B", "type": "blog", "embedding": [1, 2, 3]}
			]}`,
			wantErr: "dimension mismatch",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeArtifact(t, tt.content)

			_, err := Load(dir)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_MissingArtifact(t *testing.T) {
	_, err := Load(t.TempDir())
	if err == nil {
		t.Fatal("expected error for missing artifact, got nil")
	}
	if !strings.Contains(err.Error(), "reading index artifact") {
		t.Errorf("error = %q, want reading failure", err)
	}
}

func TestRetrievalContext(t *testing.T) {
	dir := writeArtifact(t, validArtifact)
	idx, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	loaded := NewRetrievalContext(idx)
	if !loaded.Loaded() {
		t.Error("Loaded() = false for loaded context")
	}
	if loaded.Index() != idx {
		t.Error("Index() must return the wrapped index")
	}

	empty := EmptyRetrievalContext()
	if empty.Loaded() {
		t.Error("Loaded() = true for empty context")
	}
	if empty.Index() != nil {
		t.Error("Index() must be nil for empty context")
	}

	var nilCtx *RetrievalContext
	if nilCtx.Loaded() {
		t.Error("Loaded() = true for nil context")
	}
	if nilCtx.Index() != nil {
		t.Error("Index() must be nil for nil context")
	}
}
