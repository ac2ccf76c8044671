// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents to query the site's knowledge base via stdio
package commands

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/efan/sitechat/internal/chat"
	"github.com/efan/sitechat/internal/config"
	"github.com/efan/sitechat/internal/content"
	"github.com/efan/sitechat/internal/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents.

Runs the site assistant as an MCP (Model Context Protocol) server
over stdio, exposing ask_site, search_documents, and list_documents
so agents can query the site's knowledge base.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an MCP client)
  sitechat mcp

  # Configure in an MCP client:
  # {
  #   "mcpServers": {
  #     "sitechat": {
  #       "command": "sitechat",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

func runMCP(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := buildLogger()

	provider, err := buildProvider(cfg)
	if err != nil {
		return err
	}

	retrieval := loadRetrieval(cfg, logger)
	resolver := content.NewResolver(cfg.SiteDir)
	pipeline := chat.NewPipeline(provider, retrieval, resolver, cfg.TopK, logger)

	server := mcpserver.NewMCPServer(
		"Site Assistant",
		versionInfo.Version,
	)
	mcp.RegisterTools(server, pipeline)

	log.Println("sitechat MCP server starting on stdio...")
	return mcpserver.ServeStdio(server)
}
