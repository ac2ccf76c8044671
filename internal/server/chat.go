// ABOUTME: Server-side chat endpoint running the full RAG pipeline per request
// ABOUTME: POST /api/chat {question} answers with text, sources, and grounding flag
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/efan/sitechat/internal/chat"
	"github.com/efan/sitechat/internal/llm"
	"github.com/efan/sitechat/internal/log"
)

// ChatHandler answers visitor questions through the retrieval pipeline
type ChatHandler struct {
	pipeline *chat.Pipeline
	logger   log.Logger
}

// NewChatHandler creates the chat handler
func NewChatHandler(pipeline *chat.Pipeline, logger log.Logger) *ChatHandler {
	return &ChatHandler{pipeline: pipeline, logger: logger}
}

// RegisterRoutes registers the chat route
func (h *ChatHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/chat", h.handle)
}

// chatRequest is the chat endpoint's request body
type chatRequest struct {
	Question string `json:"question"`
}

// chatResponse extends the answer with the success envelope
type chatResponse struct {
	Success  bool          `json:"success"`
	Answer   string        `json:"answer"`
	Sources  []chat.Source `json:"sources,omitempty"`
	Grounded bool          `json:"grounded"`
}

func (h *ChatHandler) handle(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	answer, err := h.pipeline.Ask(r.Context(), req.Question)
	if err != nil {
		if errors.Is(err, chat.ErrEmptyQuestion) {
			writeError(w, http.StatusBadRequest, "question is required")
			return
		}

		status := http.StatusBadGateway
		var apiErr *llm.APIError
		if !errors.As(err, &apiErr) {
			status = http.StatusInternalServerError
		}
		h.logger.Error("chat turn failed", "error", err)
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Success:  true,
		Answer:   answer.Text,
		Sources:  answer.Sources,
		Grounded: answer.Grounded,
	})
}
