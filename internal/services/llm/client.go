package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	defaultModel       = "claude-3-opus-20240229"
	defaultMaxTokens   = 1024
	defaultHTTPTimeout = 120 * time.Second
	defaultMaxRetries  = 2
)

// ErrNotConfigured reports a client without an API key.
var ErrNotConfigured = errors.New("llm api key not configured")

// Config captures the runtime settings required to talk to the Messages API.
type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	MaxTokens      int
	TimeoutSeconds int
}

// DefaultHTTPTimeout returns the default timeout used for LLM requests.
func DefaultHTTPTimeout() time.Duration {
	return defaultHTTPTimeout
}

// Client wraps the Anthropic Messages API for single-turn text prompts.
type Client struct {
	cfg        Config
	api        anthropic.Client
	httpClient *http.Client
	maxRetries int
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithMaxRetries overrides how often the SDK retries 408, 429, and 5xx responses.
func WithMaxRetries(retries int) Option {
	return func(c *Client) {
		if retries >= 0 {
			c.maxRetries = retries
		}
	}
}

// NewClient constructs an LLM client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg: Config{
			APIKey:         strings.TrimSpace(cfg.APIKey),
			BaseURL:        strings.TrimSpace(cfg.BaseURL),
			Model:          strings.TrimSpace(cfg.Model),
			MaxTokens:      cfg.MaxTokens,
			TimeoutSeconds: cfg.TimeoutSeconds,
		},
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: defaultMaxRetries,
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.Model == "" {
		client.cfg.Model = defaultModel
	}
	if client.cfg.MaxTokens <= 0 {
		client.cfg.MaxTokens = defaultMaxTokens
	}

	requestOpts := []option.RequestOption{
		option.WithAPIKey(client.cfg.APIKey),
		option.WithHTTPClient(client.httpClient),
		option.WithMaxRetries(client.maxRetries),
	}
	if base := client.cfg.BaseURL; base != "" {
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		requestOpts = append(requestOpts, option.WithBaseURL(base))
	}
	client.api = anthropic.NewClient(requestOpts...)
	return client
}

// Model returns the model name requests are sent to.
func (c *Client) Model() string {
	return c.cfg.Model
}

// Complete sends prompt as a single user message and returns the text of the
// first content block. A first block that is not text yields an empty string.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c == nil {
		return "", errors.New("llm client unavailable")
	}
	if c.cfg.APIKey == "" {
		return "", ErrNotConfigured
	}
	message, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.cfg.Model),
		MaxTokens: int64(c.cfg.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("llm request: http %d: %w", apiErr.StatusCode, err)
		}
		return "", fmt.Errorf("llm request: %w", err)
	}
	if len(message.Content) == 0 {
		return "", fmt.Errorf("llm response: no content blocks (stop_reason=%q)", message.StopReason)
	}
	first := message.Content[0]
	if first.Type != "text" {
		return "", nil
	}
	return first.Text, nil
}

// HealthCheck verifies the client is configured well enough to issue requests.
// It does not contact the API, so it is free to call before every run.
func (c *Client) HealthCheck(context.Context) error {
	if c == nil {
		return errors.New("llm client unavailable")
	}
	if c.cfg.APIKey == "" {
		return ErrNotConfigured
	}
	if c.cfg.Model == "" {
		return errors.New("llm model not configured")
	}
	return nil
}
