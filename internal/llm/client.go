package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"

	defaultBaseURL = "https://api.openai.com"
)

var ErrNotConfigured = errors.New("llm: api key not configured")

// ProviderError is a non-2xx answer from the provider.
type ProviderError struct {
	Status int
	Body   string
}

func (e *ProviderError) Error() string {
	body := e.Body
	if len(body) > 512 {
		body = body[:512]
	}
	return fmt.Sprintf("llm provider returned %d: %s", e.Status, body)
}

// ProviderStatus exposes the upstream status for error mapping.
func (e *ProviderError) ProviderStatus() int { return e.Status }

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Config struct {
	APIKey             string
	BaseURL            string
	ChatModel          string
	TranscriptionModel string
	Timeout            time.Duration
}

// Client talks to an OpenAI-compatible API. It never retries; callers see
// the first failure.
type Client struct {
	apiKey             string
	baseURL            string
	chatModel          string
	transcriptionModel string
	httpClient         *http.Client
}

func New(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	chat := cfg.ChatModel
	if chat == "" {
		chat = "gpt-4o-mini"
	}
	transcription := cfg.TranscriptionModel
	if transcription == "" {
		transcription = "whisper-1"
	}
	return &Client{
		apiKey:             cfg.APIKey,
		baseURL:            baseURL,
		chatModel:          chat,
		transcriptionModel: transcription,
		httpClient:         &http.Client{Timeout: timeout},
	}
}

func (c *Client) Configured() bool { return c != nil && c.apiKey != "" }

func (c *Client) ChatModel() string { return c.chatModel }

type CompletionOptions struct {
	Temperature float64
	MaxTokens   int
	JSON        bool
}

// DefaultCompletionOptions are the settings used for insight analysis.
var DefaultCompletionOptions = CompletionOptions{Temperature: 0.2, MaxTokens: 2000, JSON: true}

type chatRequest struct {
	Model            string          `json:"model"`
	Messages         []Message       `json:"messages"`
	Temperature      float64         `json:"temperature"`
	MaxTokens        int             `json:"max_tokens,omitempty"`
	ResponseFormat   *responseFormat `json:"response_format,omitempty"`
	PresencePenalty  float64         `json:"presence_penalty,omitempty"`
	FrequencyPenalty float64         `json:"frequency_penalty,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// Complete runs a chat completion and returns the first choice's content.
func (c *Client) Complete(ctx context.Context, messages []Message, opts CompletionOptions) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	body := chatRequest{
		Model:            c.chatModel,
		Messages:         messages,
		Temperature:      opts.Temperature,
		MaxTokens:        opts.MaxTokens,
		PresencePenalty:  0.1,
		FrequencyPenalty: 0.1,
	}
	if opts.JSON {
		body.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return "", fmt.Errorf("failed to encode completion request: %w", err)
	}

	raw, err := c.do(ctx, "/v1/chat/completions", "application/json", &buf)
	if err != nil {
		return "", err
	}

	var resp chatResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("failed to decode completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "{}", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *Client) do(ctx context.Context, path, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", contentType)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("llm request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read llm response: %w", err)
	}

	slog.Debug("llm call", "path", path, "status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ProviderError{Status: resp.StatusCode, Body: string(raw)}
	}
	return raw, nil
}
