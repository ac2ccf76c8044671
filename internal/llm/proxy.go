// ABOUTME: Proxied provider client speaking the serverless proxy contract
// ABOUTME: Used in hosted contexts; the provider credential never reaches this side
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ProxyClient implements Provider against the proxy endpoint contract:
// POST {action:"embed",query} or {action:"generate",prompt}, answered with
// a {success, embedding|answer, error} envelope. It holds no credential.
type ProxyClient struct {
	endpoint string
	client   *http.Client
}

// NewProxyClient creates a client for the given proxy endpoint URL
func NewProxyClient(endpoint string, timeout time.Duration) (*ProxyClient, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("proxy endpoint URL is required")
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &ProxyClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

// ProxyRequest is the proxy endpoint's request body
type ProxyRequest struct {
	Action string `json:"action"`
	Query  string `json:"query,omitempty"`
	Prompt string `json:"prompt,omitempty"`
}

// ProxyResponse is the proxy endpoint's response envelope
type ProxyResponse struct {
	Success   bool      `json:"success"`
	Embedding []float64 `json:"embedding,omitempty"`
	Answer    string    `json:"answer,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Embed requests a query embedding through the proxy
func (c *ProxyClient) Embed(ctx context.Context, text string) ([]float64, error) {
	resp, err := c.call(ctx, OpEmbed, ProxyRequest{Action: "embed", Query: text})
	if err != nil {
		return nil, err
	}
	if len(resp.Embedding) == 0 {
		return nil, &APIError{Op: OpEmbed, Message: "malformed response: missing embedding"}
	}
	return resp.Embedding, nil
}

// Generate requests a completion through the proxy
func (c *ProxyClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.call(ctx, OpGenerate, ProxyRequest{Action: "generate", Prompt: prompt})
	if err != nil {
		return "", err
	}
	if resp.Answer == "" {
		return "", &APIError{Op: OpGenerate, Message: "malformed response: missing answer"}
	}
	return resp.Answer, nil
}

func (c *ProxyClient) call(ctx context.Context, op string, request ProxyRequest) (*ProxyResponse, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, &APIError{Op: op, Message: fmt.Sprintf("encoding request: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &APIError{Op: op, Message: fmt.Sprintf("building request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := c.client.Do(req)
	if err != nil {
		return nil, &APIError{Op: op, Message: err.Error()}
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &APIError{Op: op, StatusCode: httpResp.StatusCode, Message: fmt.Sprintf("reading response: %v", err)}
	}

	var resp ProxyResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, &APIError{Op: op, StatusCode: httpResp.StatusCode, Message: fmt.Sprintf("malformed response: %v", err)}
	}

	if httpResp.StatusCode != http.StatusOK || !resp.Success {
		message := resp.Error
		if message == "" {
			message = fmt.Sprintf("proxy %s failed", op)
		}
		return nil, &APIError{Op: op, StatusCode: httpResp.StatusCode, Message: message}
	}

	return &resp, nil
}
