// ABOUTME: Centralized configuration for the sitechat server and CLI
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the site assistant
type Config struct {
	// Site settings
	SiteDir string
	Addr    string

	// Provider settings
	GeminiAPIKey   string
	GeminiBaseURL  string
	EmbeddingModel string
	ChatModel      string
	Timeout        time.Duration

	// When set, the CLI talks to a hosted proxy instead of calling the
	// provider directly; no credential is needed on this side
	ProxyURL string

	// Retrieval settings
	TopK            int
	VectorDimension int

	// Proxy endpoint settings
	AllowedOrigin  string
	ProxyRateRPS   float64
	ProxyRateBurst int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		SiteDir:         getEnv("SITECHAT_SITE_DIR", "site"),
		Addr:            getEnv("SITECHAT_ADDR", "127.0.0.1:8080"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiBaseURL:   getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		EmbeddingModel:  getEnv("SITECHAT_EMBEDDING_MODEL", "text-embedding-004"),
		ChatModel:       getEnv("SITECHAT_CHAT_MODEL", "gemini-2.5-flash"),
		Timeout:         getEnvDuration("SITECHAT_TIMEOUT", 30*time.Second),
		ProxyURL:        os.Getenv("SITECHAT_PROXY_URL"),
		TopK:            getEnvInt("SITECHAT_TOP_K", 3),
		VectorDimension: getEnvInt("VECTOR_DIMENSION", 768),
		AllowedOrigin:   getEnv("ALLOWED_ORIGIN", "*"),
		ProxyRateRPS:    getEnvFloat("PROXY_RATE_RPS", 5),
		ProxyRateBurst:  getEnvInt("PROXY_RATE_BURST", 10),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.TopK <= 0 {
		return fmt.Errorf("SITECHAT_TOP_K must be positive, got %d", c.TopK)
	}
	if c.VectorDimension <= 0 {
		return fmt.Errorf("VECTOR_DIMENSION must be positive, got %d", c.VectorDimension)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("SITECHAT_TIMEOUT must be positive, got %s", c.Timeout)
	}
	if c.ProxyRateRPS <= 0 {
		return fmt.Errorf("PROXY_RATE_RPS must be positive, got %f", c.ProxyRateRPS)
	}
	if c.ProxyRateBurst <= 0 {
		return fmt.Errorf("PROXY_RATE_BURST must be positive, got %d", c.ProxyRateBurst)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
