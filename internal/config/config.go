// Package config loads service configuration from environment variables.
// Local development reads a .env file via godotenv in main; production uses
// real environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all service settings.
type Config struct {
	// Port is the HTTP listen port.
	Port string
	// AllowedOrigins are the CORS origins ("*" allows all).
	AllowedOrigins []string

	// EmbeddingAPIKey is the embeddings credential (OPENAI_API_KEY).
	EmbeddingAPIKey string
	// EmbeddingModel is the embedding model identifier.
	EmbeddingModel string
	// EmbeddingBaseURL overrides the embeddings endpoint.
	EmbeddingBaseURL string

	// CompletionAPIKey is the completion credential (OPENROUTER_API_KEY).
	CompletionAPIKey string
	// CompletionModel is the completion model identifier.
	CompletionModel string
	// CompletionBaseURL is the chat-completions endpoint.
	CompletionBaseURL string
	// CompletionTimeout bounds each completion call.
	CompletionTimeout time.Duration

	// ChunkWords is the chunk size in words.
	ChunkWords int
	// TopK is the number of chunks retrieved per question.
	TopK int
	// MaxContextChars bounds the assembled prompt's context block.
	MaxContextChars int
	// MaxUploadBytes bounds the upload request body.
	MaxUploadBytes int64
}

// Load reads configuration from the environment, applying defaults.
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: splitOrigins(getEnv("ALLOWED_ORIGINS", "*")),

		EmbeddingAPIKey:  os.Getenv("OPENAI_API_KEY"),
		EmbeddingModel:   getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
		EmbeddingBaseURL: os.Getenv("EMBEDDING_BASE_URL"),

		CompletionAPIKey:  os.Getenv("OPENROUTER_API_KEY"),
		CompletionModel:   getEnv("COMPLETION_MODEL", "openai/gpt-3.5-turbo"),
		CompletionBaseURL: getEnv("COMPLETION_BASE_URL", "https://openrouter.ai/api/v1"),
		CompletionTimeout: getEnvDuration("COMPLETION_TIMEOUT", 30*time.Second),

		ChunkWords:      getEnvInt("CHUNK_WORDS", 500),
		TopK:            getEnvInt("TOP_K", 3),
		MaxContextChars: getEnvInt("MAX_CONTEXT_CHARS", 24000),
		MaxUploadBytes:  int64(getEnvInt("MAX_UPLOAD_BYTES", 20*1024*1024)),
	}
}

func splitOrigins(raw string) []string {
	if raw == "" || raw == "*" {
		return []string{"*"}
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		var i int
		if _, err := fmt.Sscanf(v, "%d", &i); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}
