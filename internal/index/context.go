// ABOUTME: RetrievalContext holds the session's immutable index snapshot
// ABOUTME: Replaces mutable isEmbeddingsLoaded/embeddingsData globals with an explicit object
package index

import "github.com/efan/sitechat/internal/models"

// RetrievalContext is the read-only retrieval state for one session: the
// loaded index, or nothing if loading failed. It is never mutated after
// construction, so it is safe to share across goroutines without locking.
type RetrievalContext struct {
	index *models.EmbeddingIndex
}

// NewRetrievalContext wraps a successfully loaded index
func NewRetrievalContext(idx *models.EmbeddingIndex) *RetrievalContext {
	return &RetrievalContext{index: idx}
}

// EmptyRetrievalContext is the no-RAG state used when the index artifact is
// missing or invalid; the chat keeps working in ungrounded mode
func EmptyRetrievalContext() *RetrievalContext {
	return &RetrievalContext{}
}

// Loaded reports whether an index is available for retrieval
func (rc *RetrievalContext) Loaded() bool {
	return rc != nil && rc.index != nil
}

// Index returns the loaded index, or nil when retrieval is unavailable
func (rc *RetrievalContext) Index() *models.EmbeddingIndex {
	if rc == nil {
		return nil
	}
	return rc.index
}
