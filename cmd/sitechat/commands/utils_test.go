// ABOUTME: Tests for shared utility functions used by CLI commands
// ABOUTME: Verifies truncate, provider selection, index loading, and validation helpers

package commands

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/efan/sitechat/internal/config"
	"github.com/efan/sitechat/internal/llm"
	"github.com/efan/sitechat/internal/log"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{
			name:   "short string unchanged",
			input:  "hello",
			maxLen: 10,
			want:   "hello",
		},
		{
			name:   "exact length unchanged",
			input:  "hello",
			maxLen: 5,
			want:   "hello",
		},
		{
			name:   "long string truncated",
			input:  "hello world",
			maxLen: 8,
			want:   "hello...",
		},
		{
			name:   "very short maxLen",
			input:  "hello",
			maxLen: 2,
			want:   "he",
		},
		{
			name:   "empty string",
			input:  "",
			maxLen: 10,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, tt.maxLen)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestValidatePositiveInt(t *testing.T) {
	if err := validatePositiveInt(3, "top-k"); err != nil {
		t.Errorf("validatePositiveInt(3) = %v, want nil", err)
	}
	if err := validatePositiveInt(0, "top-k"); err == nil {
		t.Error("validatePositiveInt(0) should fail")
	}
	if err := validatePositiveInt(-1, "top-k"); err == nil {
		t.Error("validatePositiveInt(-1) should fail")
	}
}

func TestBuildProvider(t *testing.T) {
	base := &config.Config{Timeout: 30 * time.Second}

	t.Run("direct client with API key", func(t *testing.T) {
		cfg := *base
		cfg.GeminiAPIKey = "key"

		provider, err := buildProvider(&cfg)
		if err != nil {
			t.Fatalf("buildProvider: %v", err)
		}
		if _, ok := provider.(*llm.GeminiClient); !ok {
			t.Errorf("provider type = %T, want *llm.GeminiClient", provider)
		}
	})

	t.Run("proxy client with proxy URL", func(t *testing.T) {
		cfg := *base
		cfg.ProxyURL = "https://example.com/api/proxy"

		provider, err := buildProvider(&cfg)
		if err != nil {
			t.Fatalf("buildProvider: %v", err)
		}
		if _, ok := provider.(*llm.ProxyClient); !ok {
			t.Errorf("provider type = %T, want *llm.ProxyClient", provider)
		}
	})

	t.Run("API key wins over proxy URL", func(t *testing.T) {
		cfg := *base
		cfg.GeminiAPIKey = "key"
		cfg.ProxyURL = "https://example.com/api/proxy"

		provider, err := buildProvider(&cfg)
		if err != nil {
			t.Fatalf("buildProvider: %v", err)
		}
		if _, ok := provider.(*llm.GeminiClient); !ok {
			t.Errorf("provider type = %T, want *llm.GeminiClient", provider)
		}
	})

	t.Run("neither configured", func(t *testing.T) {
		cfg := *base
		if _, err := buildProvider(&cfg); err == nil {
			t.Error("buildProvider should fail without credentials")
		}
	})
}

func TestLoadRetrieval(t *testing.T) {
	logger := log.NewNop()

	t.Run("valid artifact", func(t *testing.T) {
		dir := t.TempDir()
		artifact := `{"totalDocuments": 1, "embeddings": [
			{"id": "blog-1", "title": "Post", "type": "blog", "embedding": [0.1, 0.2]}
		]}`
		if err := os.WriteFile(filepath.Join(dir, "embeddings.json"), []byte(artifact), 0o644); err != nil {
			t.Fatalf("writing artifact: %v", err)
		}

		cfg := &config.Config{SiteDir: dir, VectorDimension: 2}
		retrieval := loadRetrieval(cfg, logger)
		if !retrieval.Loaded() {
			t.Error("retrieval should be loaded from a valid artifact")
		}
	})

	t.Run("missing artifact degrades", func(t *testing.T) {
		cfg := &config.Config{SiteDir: t.TempDir(), VectorDimension: 768}
		retrieval := loadRetrieval(cfg, logger)
		if retrieval.Loaded() {
			t.Error("retrieval should degrade to empty without an artifact")
		}
	})
}
