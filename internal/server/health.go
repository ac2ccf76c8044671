// ABOUTME: Liveness and readiness endpoints
// ABOUTME: Readiness reports whether the embedding index loaded for this session
package server

import (
	"net/http"

	"github.com/efan/sitechat/internal/index"
)

// HealthHandler serves /health and /ready
type HealthHandler struct {
	retrieval *index.RetrievalContext
}

// NewHealthHandler creates the health handler
func NewHealthHandler(retrieval *index.RetrievalContext) *HealthHandler {
	return &HealthHandler{retrieval: retrieval}
}

// RegisterRoutes registers the health routes
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("GET /ready", h.handleReady)
}

type healthResponse struct {
	Status string `json:"status"`
}

type readyResponse struct {
	Status         string `json:"status"`
	IndexLoaded    bool   `json:"indexLoaded"`
	TotalDocuments int    `json:"totalDocuments"`
}

func (h *HealthHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// handleReady reports ready even without an index: the chat degrades to
// ungrounded answers rather than failing
func (h *HealthHandler) handleReady(w http.ResponseWriter, r *http.Request) {
	resp := readyResponse{Status: "ok", IndexLoaded: h.retrieval.Loaded()}
	if resp.IndexLoaded {
		resp.TotalDocuments = len(h.retrieval.Index().Embeddings)
	}
	writeJSON(w, http.StatusOK, resp)
}
