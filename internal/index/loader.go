// ABOUTME: Loader for the precomputed embedding index artifact
// ABOUTME: Reads embeddings.json once per session; failure degrades to no-RAG
package index

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/efan/sitechat/internal/models"
)

// ArtifactName is the well-known location of the embedding index,
// relative to the site root
const ArtifactName = "embeddings.json"

// Load reads and validates the embedding index from the site directory.
// It is called once per session; there is no retry or background refresh.
// Callers must treat an error as "RAG unavailable", not as fatal.
func Load(siteDir string) (*models.EmbeddingIndex, error) {
	return LoadFile(filepath.Join(siteDir, ArtifactName))
}

// LoadFile reads and validates the embedding index from an explicit path
func LoadFile(path string) (*models.EmbeddingIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading index artifact: %w", err)
	}

	var idx models.EmbeddingIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("parsing index artifact: %w", err)
	}

	if err := idx.Validate(); err != nil {
		return nil, fmt.Errorf("invalid index artifact: %w", err)
	}

	return &idx, nil
}
