// ABOUTME: Shared utility functions for CLI commands
// ABOUTME: Logger setup, provider selection, and index loading used by serve/ask/mcp
package commands

import (
	"fmt"
	"log/slog"

	"github.com/efan/sitechat/internal/config"
	"github.com/efan/sitechat/internal/index"
	"github.com/efan/sitechat/internal/llm"
	"github.com/efan/sitechat/internal/log"
)

// buildLogger creates the logger honoring the global verbosity flags
func buildLogger() log.Logger {
	level := slog.LevelInfo
	if verboseFlag {
		level = slog.LevelDebug
	}
	if quietFlag {
		level = slog.LevelError
	}
	return log.New(log.Config{Level: level})
}

// buildProvider selects the provider implementation: a direct client when a
// local credential exists, otherwise the proxied client. Exactly one of the
// two ever holds the credential.
func buildProvider(cfg *config.Config) (llm.Provider, error) {
	if cfg.GeminiAPIKey != "" {
		return llm.NewGeminiClient(llm.GeminiConfig{
			APIKey:         cfg.GeminiAPIKey,
			BaseURL:        cfg.GeminiBaseURL,
			EmbeddingModel: cfg.EmbeddingModel,
			ChatModel:      cfg.ChatModel,
			Timeout:        cfg.Timeout,
		})
	}
	if cfg.ProxyURL != "" {
		return llm.NewProxyClient(cfg.ProxyURL, cfg.Timeout)
	}
	return nil, fmt.Errorf("no provider configured: set GEMINI_API_KEY or SITECHAT_PROXY_URL")
}

// loadRetrieval loads the embedding index once for this session. A missing
// or invalid artifact is not fatal: the assistant degrades to ungrounded
// answers, as the site does.
func loadRetrieval(cfg *config.Config, logger log.Logger) *index.RetrievalContext {
	idx, err := index.Load(cfg.SiteDir)
	if err != nil {
		logger.Warn("could not load embeddings, answering without document retrieval", "error", err)
		return index.EmptyRetrievalContext()
	}
	if dim := idx.Dimension(); dim != cfg.VectorDimension {
		logger.Warn("index dimension differs from configured dimension",
			"index", dim, "configured", cfg.VectorDimension)
	}
	logger.Info("loaded document embeddings", "documents", len(idx.Embeddings), "dimension", idx.Dimension())
	return index.NewRetrievalContext(idx)
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return string(runes[:maxLen-3]) + "..."
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}
