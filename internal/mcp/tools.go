// ABOUTME: MCP tool definitions and registration for the site assistant server
// ABOUTME: Defines JSON schemas for the ask/search/list tools
package mcp

import (
	"github.com/efan/sitechat/internal/chat"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, pipeline *chat.Pipeline) *Handlers {
	handlers := &Handlers{pipeline: pipeline}

	// 1. ask_site - Answer a question from the site's knowledge base
	server.AddTool(mcp.Tool{
		Name:        "ask_site",
		Description: "Answer a question using the website's blog posts and documents. Retrieves the most relevant documents and generates a grounded answer with source attribution.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"question": map[string]interface{}{
					"type":        "string",
					"description": "Question to answer from the site content",
				},
			},
			Required: []string{"question"},
		},
	}, handlers.AskSite)

	// 2. search_documents - Semantic search over the embedding index
	server.AddTool(mcp.Tool{
		Name:        "search_documents",
		Description: "Search the site's embedding index by semantic similarity. Returns ranked documents with cosine similarity scores, without generating an answer.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query",
				},
				"max_results": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of results to return (default: 3)",
					"default":     3,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchDocuments)

	// 3. list_documents - List the indexed documents
	server.AddTool(mcp.Tool{
		Name:        "list_documents",
		Description: "List all documents in the site's embedding index with their titles, types, and categories.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ListDocuments)

	return handlers
}
