// ABOUTME: HTTP server hosting the static site, the provider proxy, and the chat API
// ABOUTME: Wires routes with a recovery/request-id/logging/CORS middleware chain
package server

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/efan/sitechat/internal/chat"
	"github.com/efan/sitechat/internal/config"
	"github.com/efan/sitechat/internal/content"
	"github.com/efan/sitechat/internal/log"
)

const (
	// ShutdownTimeout is the maximum time to wait for graceful shutdown
	ShutdownTimeout = 10 * time.Second

	// ReadHeaderTimeout bounds header reads on keep-alive connections
	ReadHeaderTimeout = 10 * time.Second

	// ReadTimeout is the maximum duration for reading an entire request
	ReadTimeout = 30 * time.Second

	// WriteTimeout is the maximum duration for writing a response; generation
	// calls can be slow, so this stays generous
	WriteTimeout = 120 * time.Second

	// IdleTimeout is the keep-alive idle limit
	IdleTimeout = 120 * time.Second
)

// Server is the HTTP server for the site and its assistant endpoints
type Server struct {
	cfg     *config.Config
	mux     *http.ServeMux
	logger  log.Logger
	limiter *rate.Limiter

	proxy     *ProxyHandler
	chat      *ChatHandler
	portfolio *PortfolioHandler
	health    *HealthHandler
}

// NewServer creates the server with all routes registered. The pipeline may
// wrap either provider implementation; the proxy handler always needs the
// local credential and reports 500 when it is absent.
func NewServer(cfg *config.Config, pipeline *chat.Pipeline, resolver *content.Resolver, logger log.Logger) *Server {
	if logger == nil {
		logger = log.NewNop()
	}

	mux := http.NewServeMux()
	s := &Server{
		cfg:       cfg,
		mux:       mux,
		logger:    logger,
		limiter:   rate.NewLimiter(rate.Limit(cfg.ProxyRateRPS), cfg.ProxyRateBurst),
		proxy:     NewProxyHandler(cfg, logger),
		chat:      NewChatHandler(pipeline, logger),
		portfolio: NewPortfolioHandler(resolver, logger),
		health:    NewHealthHandler(pipeline.Retrieval()),
	}

	s.proxy.RegisterRoutes(mux)
	s.chat.RegisterRoutes(mux)
	s.portfolio.RegisterRoutes(mux)
	s.health.RegisterRoutes(mux)

	// Everything else is the static site itself
	mux.Handle("/", http.FileServer(http.Dir(cfg.SiteDir)))

	return s
}

// Handler returns the mux wrapped in the middleware chain.
// Order: recovery → request id → logging → CORS → rate limit → routes.
func (s *Server) Handler() http.Handler {
	return chain(s.mux,
		recoveryMiddleware(s.logger),
		requestIDMiddleware(),
		loggingMiddleware(s.logger),
		corsMiddleware(s.cfg.AllowedOrigin),
		rateLimitMiddleware(s.limiter),
	)
}

// Run starts the server and blocks until the context is cancelled, then
// shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: ReadHeaderTimeout,
		ReadTimeout:       ReadTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", s.cfg.Addr, "siteDir", s.cfg.SiteDir)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
