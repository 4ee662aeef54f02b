// Package openrouter is a minimal client for the OpenRouter chat
// completions endpoint.
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/i474232898/greentrack/internal/common"
)

const (
	defaultBaseURL = "https://openrouter.ai/api/v1"
	sourceName     = "openrouter"
)

// Message mirrors the chat message structure.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionRequest is the payload sent to the API.
type ChatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

// ChatCompletionResponse captures the fields we read from a completion.
type ChatCompletionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// FirstContent returns the first choice's content, if any.
func (r ChatCompletionResponse) FirstContent() (string, bool) {
	if len(r.Choices) == 0 {
		return "", false
	}
	content := r.Choices[0].Message.Content
	return content, strings.TrimSpace(content) != ""
}

// Options configure a Client. APIKey is required.
type Options struct {
	APIKey     string
	BaseURL    string
	Referer    string
	Title      string
	HTTPClient *http.Client
}

// Client performs HTTP requests to OpenRouter.
type Client struct {
	apiKey     string
	baseURL    string
	referer    string
	title      string
	httpClient *http.Client
}

// NewClient constructs a client.
func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("openrouter api key cannot be empty")
	}
	baseURL := opts.BaseURL
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		apiKey:     opts.APIKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		referer:    opts.Referer,
		title:      opts.Title,
		httpClient: httpClient,
	}, nil
}

// CreateChatCompletion sends one completion request. Failures are returned
// as *common.TransportError.
func (c *Client) CreateChatCompletion(ctx context.Context, req ChatCompletionRequest) (ChatCompletionResponse, error) {
	var out ChatCompletionResponse

	payload, err := json.Marshal(req)
	if err != nil {
		return out, fmt.Errorf("encode chat completion request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return out, fmt.Errorf("build chat completion request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	if c.referer != "" {
		httpReq.Header.Set("HTTP-Referer", c.referer)
	}
	if c.title != "" {
		httpReq.Header.Set("X-Title", c.title)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return out, &common.TransportError{Source: sourceName, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return out, &common.TransportError{
			Source:     sourceName,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("chat completion failed: body=%s", strings.TrimSpace(string(body))),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, &common.TransportError{Source: sourceName, Err: fmt.Errorf("decode chat completion: %w", err)}
	}
	return out, nil
}
