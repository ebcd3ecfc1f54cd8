package embedding

import (
	"context"
	"errors"
	"sync"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// ErrNoAPIKey indicates the embedding credential is not configured.
var ErrNoAPIKey = errors.New("embedding API key not set")

// Config holds embedding client configuration.
type Config struct {
	// APIKey is the bearer credential for the embeddings endpoint.
	APIKey string
	// Model is the embedding model identifier. Defaults to DefaultModel.
	Model string
	// BaseURL overrides the API endpoint for OpenAI-compatible hosts.
	// Empty means the openai-go default.
	BaseURL string
	// BatchSize caps texts per request. Defaults to DefaultBatchSize.
	BatchSize int
}

// OpenAIEmbedder generates embeddings through an OpenAI-compatible API.
// The underlying client is constructed lazily by EnsureReady so the serving
// process can start (and report readiness honestly) without a credential.
type OpenAIEmbedder struct {
	cfg Config

	mu     sync.Mutex
	client *openai.Client
}

// NewOpenAIEmbedder creates an embedder from cfg. No network or credential
// validation happens here; call EnsureReady to initialize the client.
func NewOpenAIEmbedder(cfg Config) *OpenAIEmbedder {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	return &OpenAIEmbedder{cfg: cfg}
}

// EnsureReady idempotently constructs the API client. It fails with
// ErrNoAPIKey when no credential is configured and is safe to call from
// concurrent requests.
func (e *OpenAIEmbedder) EnsureReady(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.client != nil {
		return nil
	}
	if e.cfg.APIKey == "" {
		return ErrNoAPIKey
	}

	opts := []option.RequestOption{option.WithAPIKey(e.cfg.APIKey)}
	if e.cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(e.cfg.BaseURL))
	}
	client := openai.NewClient(opts...)
	e.client = &client
	return nil
}

// Ready reports whether the client has been initialized. Exposed through the
// health endpoint for operational monitoring.
func (e *OpenAIEmbedder) Ready() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.client != nil
}
