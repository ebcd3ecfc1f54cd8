// Package gateway sends assembled prompts to an OpenAI-compatible chat
// completion service and classifies its failures. OpenRouter is the default
// upstream.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	// DefaultModel is the completion model used when none is configured.
	DefaultModel = "openai/gpt-3.5-turbo"

	// DefaultBaseURL targets OpenRouter's OpenAI-compatible API.
	DefaultBaseURL = "https://openrouter.ai/api/v1"

	// DefaultTimeout bounds a single completion call. The call must fail
	// past it, never hang.
	DefaultTimeout = 30 * time.Second
)

// Config holds completion client configuration.
type Config struct {
	// APIKey is the bearer credential. Empty is allowed at construction;
	// Complete then fails with ErrNoAPIKey so the server can run degraded.
	APIKey string
	// Model is the completion model identifier.
	Model string
	// BaseURL is the chat-completions endpoint.
	BaseURL string
	// Timeout bounds each Complete call.
	Timeout time.Duration
}

// Client is the completion gateway.
type Client struct {
	cfg    Config
	client *openai.Client
}

// NewClient creates a gateway client. A missing credential is not an error
// here: questions can still be answered with a degraded payload.
func NewClient(cfg Config) *Client {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	c := &Client{cfg: cfg}
	if cfg.APIKey != "" {
		client := openai.NewClient(
			option.WithAPIKey(cfg.APIKey),
			option.WithBaseURL(cfg.BaseURL),
		)
		c.client = &client
	}
	return c
}

// Ready reports whether a credential is configured.
func (c *Client) Ready() bool {
	return c.client != nil
}

// Complete sends prompt to the completion service and returns the answer
// text. Failures come back classified: ErrNoAPIKey, ErrAuth, ErrUnreachable
// or ErrMalformedResponse.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c.client == nil {
		return "", ErrNoAPIKey
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model: openai.ChatModel(c.cfg.Model),
	})
	if err != nil {
		return "", classify(err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: no choices in reply", ErrMalformedResponse)
	}
	return resp.Choices[0].Message.Content, nil
}

// classify maps upstream failures onto the gateway error taxonomy.
func classify(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == 401 || apiErr.StatusCode == 403 {
			return fmt.Errorf("%w: %v", ErrAuth, err)
		}
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	return fmt.Errorf("%w: %v", ErrUnreachable, err)
}
