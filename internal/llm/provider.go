// ABOUTME: Provider abstraction for the embedding and generation endpoints
// ABOUTME: Implemented by the direct Gemini client and the proxied client
package llm

import (
	"context"
	"fmt"
)

// Operation names the two provider calls, used in error reporting
const (
	OpEmbed    = "embed"
	OpGenerate = "generate"
)

// Provider is the capability the chat pipeline depends on. The direct
// implementation holds the provider credential locally; the proxied
// implementation never sees a credential at all.
type Provider interface {
	// Embed requests a fixed-dimension embedding for arbitrary text
	Embed(ctx context.Context, text string) ([]float64, error)

	// Generate requests a single-turn completion for the given prompt
	Generate(ctx context.Context, prompt string) (string, error)
}

// APIError is a failed provider call: a non-success status or a malformed
// payload. StatusCode is 0 when the request never produced an HTTP response.
type APIError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s request failed (status %d): %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s request failed: %s", e.Op, e.Message)
}
