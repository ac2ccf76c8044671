// ABOUTME: Provider proxy endpoint keeping the API credential server-side
// ABOUTME: Accepts {action, query|prompt} and passes upstream failure statuses through
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/efan/sitechat/internal/config"
	"github.com/efan/sitechat/internal/llm"
	"github.com/efan/sitechat/internal/log"
)

// ProxyHandler fronts the provider for untrusted callers. The credential
// stays inside this process; clients only ever see the envelope.
type ProxyHandler struct {
	client *llm.GeminiClient
	logger log.Logger
}

// NewProxyHandler creates the proxy handler. A missing credential is not
// fatal here: the handler answers 500 per request until one is configured,
// which matches the serverless behavior this replaces.
func NewProxyHandler(cfg *config.Config, logger log.Logger) *ProxyHandler {
	h := &ProxyHandler{logger: logger}
	if cfg.GeminiAPIKey != "" {
		client, err := llm.NewGeminiClient(llm.GeminiConfig{
			APIKey:         cfg.GeminiAPIKey,
			BaseURL:        cfg.GeminiBaseURL,
			EmbeddingModel: cfg.EmbeddingModel,
			ChatModel:      cfg.ChatModel,
			Timeout:        cfg.Timeout,
		})
		if err == nil {
			h.client = client
		}
	}
	return h
}

// RegisterRoutes registers the proxy route. Method dispatch is manual so
// wrong methods get the contract's 405 envelope instead of the mux default.
func (h *ProxyHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/proxy", h.handle)
}

func (h *ProxyHandler) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed. Use POST.")
		return
	}

	var req llm.ProxyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	if h.client == nil {
		h.logger.Error("proxy request without configured API key")
		writeError(w, http.StatusInternalServerError, "API key not configured on server")
		return
	}

	switch req.Action {
	case "embed":
		if req.Query == "" {
			writeError(w, http.StatusBadRequest, "query is required for embed")
			return
		}
		embedding, err := h.client.Embed(r.Context(), req.Query)
		if err != nil {
			h.writeUpstreamError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, llm.ProxyResponse{Success: true, Embedding: embedding})

	case "generate":
		if req.Prompt == "" {
			writeError(w, http.StatusBadRequest, "prompt is required for generate")
			return
		}
		answer, err := h.client.Generate(r.Context(), req.Prompt)
		if err != nil {
			h.writeUpstreamError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, llm.ProxyResponse{Success: true, Answer: answer})

	default:
		writeError(w, http.StatusBadRequest, `Invalid action. Use "embed" or "generate"`)
	}
}

// writeUpstreamError passes the upstream status through when there is one
// and falls back to 500 for transport-level failures
func (h *ProxyHandler) writeUpstreamError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := err.Error()

	var apiErr *llm.APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode != 0 {
			status = apiErr.StatusCode
		}
		message = apiErr.Message
	}

	h.logger.Error("upstream provider call failed", "status", status, "error", err)
	writeError(w, status, message)
}
