// ABOUTME: Direct Gemini REST client for embeddings and text generation
// ABOUTME: Carries the provider credential as a query parameter, per the provider contract
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	// DefaultBaseURL is the Gemini REST endpoint root
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	// DefaultEmbeddingModel produces 768-dimension vectors, matching the
	// precomputed index artifact
	DefaultEmbeddingModel = "text-embedding-004"
	// DefaultChatModel is the generation model
	DefaultChatModel = "gemini-2.5-flash"
)

// GeminiConfig holds configuration for the direct client
type GeminiConfig struct {
	APIKey         string
	BaseURL        string
	EmbeddingModel string
	ChatModel      string
	Timeout        time.Duration
}

// GeminiClient calls the provider REST endpoints directly with a local
// credential. Nothing in this client retries; every failure surfaces to the
// caller exactly once.
type GeminiClient struct {
	apiKey         string
	baseURL        string
	embeddingModel string
	chatModel      string
	client         *http.Client
}

// NewGeminiClient creates a direct client. The API key is required; other
// fields fall back to defaults.
func NewGeminiClient(cfg GeminiConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = DefaultEmbeddingModel
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = DefaultChatModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &GeminiClient{
		apiKey:         cfg.APIKey,
		baseURL:        cfg.BaseURL,
		embeddingModel: cfg.EmbeddingModel,
		chatModel:      cfg.ChatModel,
		client:         &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Request/response shapes of the provider wire format
type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type embedContentRequest struct {
	Content geminiContent `json:"content"`
}

type embedContentResponse struct {
	Embedding struct {
		Values []float64 `json:"values"`
	} `json:"embedding"`
}

type generateContentRequest struct {
	Contents []geminiContent `json:"contents"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

type geminiErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Embed requests an embedding for the given text
func (c *GeminiClient) Embed(ctx context.Context, text string) ([]float64, error) {
	body := embedContentRequest{
		Content: geminiContent{Parts: []geminiPart{{Text: text}}},
	}

	data, err := c.post(ctx, OpEmbed, c.endpoint(c.embeddingModel, "embedContent"), body)
	if err != nil {
		return nil, err
	}

	var resp embedContentResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, &APIError{Op: OpEmbed, Message: fmt.Sprintf("malformed response: %v", err)}
	}
	if len(resp.Embedding.Values) == 0 {
		return nil, &APIError{Op: OpEmbed, Message: "malformed response: missing embedding.values"}
	}

	return resp.Embedding.Values, nil
}

// Generate requests a completion for the given prompt. An empty or
// malformed candidate array is an explicit error, never silent empty text.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	body := generateContentRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}

	data, err := c.post(ctx, OpGenerate, c.endpoint(c.chatModel, "generateContent"), body)
	if err != nil {
		return "", err
	}

	var resp generateContentResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", &APIError{Op: OpGenerate, Message: fmt.Sprintf("malformed response: %v", err)}
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", &APIError{Op: OpGenerate, Message: "malformed response: no candidates returned"}
	}

	text := resp.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", &APIError{Op: OpGenerate, Message: "malformed response: empty candidate text"}
	}
	return text, nil
}

// endpoint builds the model method URL with the credential as a query
// parameter, exactly as the provider contract dictates
func (c *GeminiClient) endpoint(model, method string) string {
	return fmt.Sprintf("%s/v1/models/%s:%s?key=%s",
		c.baseURL, model, method, url.QueryEscape(c.apiKey))
}

func (c *GeminiClient) post(ctx context.Context, op, endpoint string, body interface{}) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &APIError{Op: op, Message: fmt.Sprintf("encoding request: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &APIError{Op: op, Message: fmt.Sprintf("building request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &APIError{Op: op, Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Op: op, StatusCode: resp.StatusCode, Message: fmt.Sprintf("reading response: %v", err)}
	}

	if resp.StatusCode != http.StatusOK {
		message := fmt.Sprintf("%s API failed", op)
		var errResp geminiErrorResponse
		if err := json.Unmarshal(data, &errResp); err == nil && errResp.Error.Message != "" {
			message = errResp.Error.Message
		}
		return nil, &APIError{Op: op, StatusCode: resp.StatusCode, Message: message}
	}

	return data, nil
}
