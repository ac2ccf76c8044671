// ABOUTME: Cosine similarity ranking over the in-memory embedding index
// ABOUTME: Scores a query vector against every document and returns the top-K
package rank

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/efan/sitechat/internal/models"
)

// DefaultTopK is the number of documents retrieved per question when the
// caller does not override it
const DefaultTopK = 3

// ErrDimensionMismatch is returned when the query vector length differs from
// a document vector length. Mismatches are never coerced by truncation or
// padding; the similarity would be meaningless.
var ErrDimensionMismatch = errors.New("vector dimension mismatch")

// CosineSimilarity computes the cosine similarity of two equal-length vectors
// in a single pass: accumulated dot product and squared norms, square-rooted
// at the end. If either vector has zero norm the similarity is defined as 0,
// so no NaN can reach a sort comparator.
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// Rank scores the query vector against every document in the index and
// returns at most topK results, sorted by descending similarity. The sort is
// stable: ties keep their index order. A dimension mismatch against any
// document fails the whole ranking.
func Rank(query []float64, index *models.EmbeddingIndex, topK int) ([]models.RankedResult, error) {
	if index == nil {
		return nil, errors.New("index is nil")
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	results := make([]models.RankedResult, 0, len(index.Embeddings))
	for _, doc := range index.Embeddings {
		similarity, err := CosineSimilarity(query, doc.Embedding)
		if err != nil {
			return nil, fmt.Errorf("document %q: %w", doc.ID, err)
		}
		results = append(results, models.RankedResult{
			ID:         doc.ID,
			Title:      doc.Title,
			Type:       doc.Type,
			Category:   doc.Category,
			Similarity: similarity,
			Metadata:   doc.Metadata,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if len(results) > topK {
		results = results[:topK]
	}

	return results, nil
}
