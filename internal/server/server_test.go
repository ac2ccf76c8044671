// ABOUTME: Shared test harness for the HTTP server tests
// ABOUTME: Builds a full server with a site fixture, fake provider, and fake upstream
package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/efan/sitechat/internal/chat"
	"github.com/efan/sitechat/internal/config"
	"github.com/efan/sitechat/internal/content"
	"github.com/efan/sitechat/internal/index"
	"github.com/efan/sitechat/internal/models"
)

// fakeProvider scripts the pipeline's provider for chat endpoint tests
type fakeProvider struct {
	embedding []float64
	embedErr  error
	answer    string
	genErr    error
}

func (f *fakeProvider) Embed(ctx context.Context, text string) ([]float64, error) {
	return f.embedding, f.embedErr
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string) (string, error) {
	return f.answer, f.genErr
}

// buildSite lays out the site fixture the resolver and file server read
func buildSite(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"index.html": "<html><body>home</body></html>",
		"assets/blog-posts.json": `[
			{"id": 1, "title": "Go Concurrency", "category": "Programming", "contentFile": "go-concurrency.md"}
		]`,
		"assets/private-documents.json": `[
			{"id": "resume", "title": "Resume", "contentFile": "private/resume.md"}
		]`,
		"assets/portfolio.json": `[
			{"id": 1, "title": "Churn Model", "techStacks": "Python", "category": "ML",
			 "methods": {"type": "text", "content": "Gradient boosting."}}
		]`,
		"blog-posts/go-concurrency.md": "Goroutines and channels.",
		"private/resume.md":            "Ten years of engineering.",
	}
	for name, body := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func testRetrieval() *index.RetrievalContext {
	return index.NewRetrievalContext(&models.EmbeddingIndex{
		TotalDocuments: 2,
		Embeddings: []models.DocumentEmbedding{
			{ID: "blog-1", Title: "Go Concurrency", Type: models.DocumentTypeBlog, Embedding: []float64{1, 0}},
			{ID: "resume", Title: "Resume", Type: models.DocumentTypePrivate, Embedding: []float64{0, 1}},
		},
	})
}

type serverOptions struct {
	apiKey    string
	baseURL   string
	provider  *fakeProvider
	retrieval *index.RetrievalContext
	rateRPS   float64
	rateBurst int
}

// newTestHandler builds the full middleware-wrapped handler
func newTestHandler(t *testing.T, opts serverOptions) http.Handler {
	t.Helper()

	if opts.provider == nil {
		opts.provider = &fakeProvider{embedding: []float64{1, 0}, answer: "ok"}
	}
	if opts.retrieval == nil {
		opts.retrieval = testRetrieval()
	}
	if opts.rateRPS == 0 {
		opts.rateRPS = 1000
	}
	if opts.rateBurst == 0 {
		opts.rateBurst = 1000
	}

	cfg := &config.Config{
		SiteDir:         buildSite(t),
		Addr:            "127.0.0.1:0",
		GeminiAPIKey:    opts.apiKey,
		GeminiBaseURL:   opts.baseURL,
		EmbeddingModel:  "text-embedding-004",
		ChatModel:       "gemini-2.5-flash",
		Timeout:         5 * time.Second,
		TopK:            2,
		VectorDimension: 2,
		AllowedOrigin:   "*",
		ProxyRateRPS:    opts.rateRPS,
		ProxyRateBurst:  opts.rateBurst,
	}

	resolver := content.NewResolver(cfg.SiteDir)
	pipeline := chat.NewPipeline(opts.provider, opts.retrieval, resolver, cfg.TopK, nil)
	return NewServer(cfg, pipeline, resolver, nil).Handler()
}

// newFakeUpstream starts an httptest server standing in for the provider API
func newFakeUpstream(t *testing.T, handler http.HandlerFunc) string {
	t.Helper()
	upstream := httptest.NewServer(handler)
	t.Cleanup(upstream.Close)
	return upstream.URL
}
