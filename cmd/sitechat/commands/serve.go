// ABOUTME: Serve command runs the HTTP server for the site and its assistant
// ABOUTME: Hosts static files, the provider proxy, and the chat API
package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/efan/sitechat/internal/chat"
	"github.com/efan/sitechat/internal/config"
	"github.com/efan/sitechat/internal/content"
	"github.com/efan/sitechat/internal/server"
)

var (
	serveAddr string
	serveSite string
)

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the site and assistant HTTP server",
		Long: `Run the HTTP server.

Serves the static site directory, the provider proxy endpoint
(POST /api/proxy), the chat endpoint (POST /api/chat), portfolio
details (GET /api/portfolio/{id}), and health probes.

The embedding index is loaded once at startup from
<site-dir>/embeddings.json; if it is missing the assistant still
answers, just without document retrieval.

Examples:
  sitechat serve
  sitechat serve --addr :8080 --site ./public`,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides SITECHAT_ADDR)")
	cmd.Flags().StringVar(&serveSite, "site", "", "Site directory (overrides SITECHAT_SITE_DIR)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}
	if serveSite != "" {
		cfg.SiteDir = serveSite
	}

	logger := buildLogger()

	provider, err := buildProvider(cfg)
	if err != nil {
		// The proxy endpoint reports its own 500s; the chat endpoint will
		// reject turns until a provider is configured
		logger.Warn("assistant provider not configured", "error", err)
	}

	retrieval := loadRetrieval(cfg, logger)
	resolver := content.NewResolver(cfg.SiteDir)
	pipeline := chat.NewPipeline(provider, retrieval, resolver, cfg.TopK, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(cfg, pipeline, resolver, logger)
	return srv.Run(ctx)
}
