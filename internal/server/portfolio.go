// ABOUTME: Portfolio detail endpoint resolving project sections server-side
// ABOUTME: GET /api/portfolio/{id} returns the project with materialized section content
package server

import (
	"net/http"
	"strconv"

	"github.com/efan/sitechat/internal/content"
	"github.com/efan/sitechat/internal/log"
)

// PortfolioHandler serves resolved portfolio project details
type PortfolioHandler struct {
	resolver *content.Resolver
	logger   log.Logger
}

// NewPortfolioHandler creates the portfolio handler
func NewPortfolioHandler(resolver *content.Resolver, logger log.Logger) *PortfolioHandler {
	return &PortfolioHandler{resolver: resolver, logger: logger}
}

// RegisterRoutes registers the portfolio route
func (h *PortfolioHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/portfolio/{id}", h.handle)
}

// portfolioResponse is the resolved project detail
type portfolioResponse struct {
	Success    bool                      `json:"success"`
	ID         int                       `json:"id"`
	Title      string                    `json:"title"`
	TechStacks string                    `json:"techStacks"`
	Category   string                    `json:"category"`
	Sections   []content.ResolvedSection `json:"sections"`
}

func (h *PortfolioHandler) handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "project id must be numeric")
		return
	}

	project, err := h.resolver.Project(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, portfolioResponse{
		Success:    true,
		ID:         project.ID,
		Title:      project.Title,
		TechStacks: project.TechStacks,
		Category:   project.Category,
		Sections:   h.resolver.ResolveSections(project),
	})
}
