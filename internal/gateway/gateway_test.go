package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionJSON(content string) map[string]any {
	return map[string]any{
		"id":     "cmpl-test",
		"object": "chat.completion",
		"model":  DefaultModel,
		"choices": []map[string]any{
			{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
			},
		},
	}
}

func TestComplete_NoAPIKey(t *testing.T) {
	c := NewClient(Config{})
	assert.False(t, c.Ready())

	_, err := c.Complete(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestComplete_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(completionJSON("the answer"))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL})
	require.True(t, c.Ready())

	answer, err := c.Complete(context.Background(), "question")
	require.NoError(t, err)
	assert.Equal(t, "the answer", answer)
}

func TestComplete_AuthFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "invalid api key", "type": "invalid_request_error"},
		})
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "bad-key", BaseURL: srv.URL})

	_, err := c.Complete(context.Background(), "question")
	assert.ErrorIs(t, err, ErrAuth)
}

func TestComplete_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "cmpl-test",
			"object":  "chat.completion",
			"choices": []any{},
		})
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL})

	_, err := c.Complete(context.Background(), "question")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestComplete_UnreachableHost(t *testing.T) {
	// Reserve a port, then close it so the connection is refused.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(Config{APIKey: "test-key", BaseURL: url, Timeout: 2 * time.Second})

	_, err := c.Complete(context.Background(), "question")
	assert.ErrorIs(t, err, ErrUnreachable)
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(Config{APIKey: "k"})
	assert.Equal(t, DefaultModel, c.cfg.Model)
	assert.Equal(t, DefaultBaseURL, c.cfg.BaseURL)
	assert.Equal(t, DefaultTimeout, c.cfg.Timeout)
}
