// ABOUTME: MCP tool handler implementations for the site assistant server
// ABOUTME: Wraps the chat pipeline with proper error handling for all 3 tools
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/efan/sitechat/internal/chat"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	pipeline *chat.Pipeline
}

// AskSite handles the ask_site tool
func (h *Handlers) AskSite(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question argument is required and must be a string"), nil
	}

	answer, err := h.pipeline.Ask(ctx, question)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("answering failed: %v", err)), nil
	}

	response := map[string]interface{}{
		"answer":   answer.Text,
		"grounded": answer.Grounded,
		"sources":  answer.Sources,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// SearchDocuments handles the search_documents tool
func (h *Handlers) SearchDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	maxResults := request.GetInt("max_results", 3)
	if maxResults <= 0 {
		maxResults = 3
	}

	results, err := h.pipeline.Search(ctx, query, maxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	type searchHit struct {
		ID         string  `json:"id"`
		Title      string  `json:"title"`
		Type       string  `json:"type"`
		Category   string  `json:"category"`
		Similarity float64 `json:"similarity"`
	}

	hits := make([]searchHit, 0, len(results))
	for _, result := range results {
		hits = append(hits, searchHit{
			ID:         result.ID,
			Title:      result.Title,
			Type:       string(result.Type),
			Category:   result.Category,
			Similarity: result.Similarity,
		})
	}

	responseJSON, err := json.Marshal(map[string]interface{}{"results": hits})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// ListDocuments handles the list_documents tool
func (h *Handlers) ListDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	retrieval := h.pipeline.Retrieval()
	if !retrieval.Loaded() {
		return mcp.NewToolResultError("embedding index not loaded"), nil
	}

	type docEntry struct {
		ID       string `json:"id"`
		Title    string `json:"title"`
		Type     string `json:"type"`
		Category string `json:"category"`
	}

	idx := retrieval.Index()
	docs := make([]docEntry, 0, len(idx.Embeddings))
	for _, doc := range idx.Embeddings {
		docs = append(docs, docEntry{
			ID:       doc.ID,
			Title:    doc.Title,
			Type:     string(doc.Type),
			Category: doc.Category,
		})
	}

	responseJSON, err := json.Marshal(map[string]interface{}{
		"totalDocuments": len(docs),
		"documents":      docs,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}
