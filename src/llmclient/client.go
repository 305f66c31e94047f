// Package llmclient is an HTTP client for OpenAI-compatible chat completion
// APIs, with retry logic and inline image attachment support.
package llmclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/autoreturn/autoreturn/src/aisdk"
)

const (
	defaultBaseURL = "https://openrouter.ai/api/v1"
	defaultTimeout = 60 * time.Second
)

var _ aisdk.Provider = (*Client)(nil)

// Client is the chat completions API client.
type Client struct {
	config     Config
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
	apiKey     string
	modelCache *ModelCache
}

// NewClient creates a new chat completions client.
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}
	if config.RetryCount == 0 {
		config.RetryCount = 3
	}
	if config.RetryDelay == 0 {
		config.RetryDelay = time.Second
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "llm_client")

	client := &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     logger,
		baseURL:    config.BaseURL,
		apiKey:     config.APIKey,
	}

	client.modelCache = NewModelCache(client, time.Hour)

	return client
}

// createChatCompletion sends a chat completion request.
func (c *Client) createChatCompletion(ctx context.Context, req *aisdk.ChatCompletionRequest, supportsImages bool) (*aisdk.ChatCompletionResponse, error) {
	logger := c.logger.With("method", "CreateChatCompletion", "model", req.Model)
	logger.Debug("sending chat completion request")

	wireReq := formatWireRequest(req, supportsImages)

	if c.logger.Enabled(ctx, slog.LevelDebug) {
		if debugBody, err := json.MarshalIndent(wireReq, "", "  "); err == nil {
			logger.Debug("formatted request", "body", string(debugBody))
		}
	}

	body, err := json.Marshal(wireReq)
	if err != nil {
		logger.Error("failed to marshal request", "error", err)
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := c.newRequest(ctx, "POST", "/chat/completions", body)
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequestWithRetry(httpReq)
	if err != nil {
		logger.Error("request failed", "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Error("received error response", "status_code", resp.StatusCode)
		return nil, c.handleError(resp)
	}

	var result aisdk.ChatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		logger.Error("failed to decode response", "error", err)
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	logger.Info("chat completion successful", "usage_total", result.Usage.TotalTokens)
	return &result, nil
}

// newRequest creates a new HTTP request with the appropriate headers.
func (c *Client) newRequest(ctx context.Context, method, path string, body []byte) (*http.Request, error) {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}

// doRequestWithRetry performs an HTTP request with retry logic.
func (c *Client) doRequestWithRetry(req *http.Request) (*http.Response, error) {
	var lastErr error

	logger := c.logger.With("method", "doRequestWithRetry", "url", req.URL.String())

	var bodyBytes []byte
	if req.Body != nil {
		var err error
		bodyBytes, err = io.ReadAll(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read request body: %w", err)
		}
	}

	for i := 0; i < c.config.RetryCount; i++ {
		reqCopy := req.Clone(req.Context())
		if bodyBytes != nil {
			reqCopy.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}

		resp, err := c.httpClient.Do(reqCopy)
		if err != nil {
			lastErr = err
			logger.Debug("request attempt failed", "attempt", i+1, "error", err)
			time.Sleep(c.config.RetryDelay * time.Duration(i+1))
			continue
		}

		// Client errors (4xx) are not retryable; return them for handleError.
		if resp.StatusCode < 500 {
			return resp, nil
		}

		resp.Body.Close()
		lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
		logger.Debug("server error, retrying", "attempt", i+1, "status_code", resp.StatusCode)
		time.Sleep(c.config.RetryDelay * time.Duration(i+1))
	}

	logger.Error("request failed after all retries", "retry_count", c.config.RetryCount, "error", lastErr)
	return nil, fmt.Errorf("request failed after %d retries: %w", c.config.RetryCount, lastErr)
}

// handleError processes error responses from the API.
func (c *Client) handleError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read error response: %w", err)
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			RequestID:  resp.Header.Get("X-Request-ID"),
		}
	}

	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Type:       errResp.Error.Type,
		Message:    errResp.Error.Message,
		Code:       errResp.Error.Code,
		Param:      errResp.Error.Param,
		Details:    errResp.Error.Details,
		RequestID:  resp.Header.Get("X-Request-ID"),
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if apiErr.Details == nil {
				apiErr.Details = make(map[string]interface{})
			}
			apiErr.Details["retry_after"] = retryAfter
		}
	}

	return apiErr
}

// wireContentPart is one element of a multimodal content array.
type wireContentPart struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *wireImageURL `json:"image_url,omitempty"`
}

type wireImageURL struct {
	URL string `json:"url"`
}

// wireMessage is the on-the-wire message shape. Content is either a plain
// string or an array of content parts when an attachment rides along.
type wireMessage struct {
	Role       string           `json:"role"`
	Content    interface{}      `json:"content"`
	Name       string           `json:"name,omitempty"`
	ToolCallID string           `json:"tool_call_id,omitempty"`
	ToolCalls  []aisdk.ToolCall `json:"tool_calls,omitempty"`
}

type wireRequest struct {
	Model       string            `json:"model"`
	Messages    []wireMessage     `json:"messages"`
	Temperature *float64          `json:"temperature,omitempty"`
	MaxTokens   *int              `json:"max_tokens,omitempty"`
	Stream      bool              `json:"stream,omitempty"`
	Tools       []*aisdk.ChatTool `json:"tools,omitempty"`
	ToolChoice  string            `json:"tool_choice,omitempty"`
}

// formatWireRequest converts the request to the OpenAI wire format. Image
// attachments become data-URL content parts when the model supports them;
// otherwise they degrade to a textual description so the turn still works.
func formatWireRequest(req *aisdk.ChatCompletionRequest, supportsImages bool) *wireRequest {
	messages := make([]wireMessage, 0, len(req.Messages))
	for _, msg := range req.Messages {
		if msg == nil {
			continue
		}

		wm := wireMessage{
			Role:       msg.Role,
			Content:    msg.Content,
			Name:       msg.Name,
			ToolCallID: msg.ToolCallID,
			ToolCalls:  msg.ToolCalls,
		}

		// Tool calls need a proper type and non-null arguments.
		for i := range wm.ToolCalls {
			if wm.ToolCalls[i].Type == "" {
				wm.ToolCalls[i].Type = "function"
			}
			if wm.ToolCalls[i].Function.Arguments == nil {
				wm.ToolCalls[i].Function.Arguments = json.RawMessage("{}")
			}
		}

		if msg.Attachment != nil {
			if supportsImages && msg.Attachment.Kind == aisdk.AttachmentImage {
				wm.Content = []wireContentPart{
					{Type: "text", Text: msg.Content},
					{Type: "image_url", ImageURL: &wireImageURL{URL: msg.Attachment.DataURL()}},
				}
			} else {
				wm.Content = msg.Content + "\n\n" + msg.Attachment.Describe()
			}
		}

		messages = append(messages, wm)
	}

	return &wireRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Stream:      false,
		Tools:       req.Tools,
		ToolChoice:  req.ToolChoice,
	}
}
