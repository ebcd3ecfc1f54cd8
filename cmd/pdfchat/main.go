// Package main provides the pdfchat CLI: an HTTP question-answering server
// over uploaded PDF documents, plus offline inspection tooling.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/bull/pdfchat/internal/chunker"
	"github.com/bull/pdfchat/internal/config"
	"github.com/bull/pdfchat/internal/corpus"
	"github.com/bull/pdfchat/internal/embedding"
	"github.com/bull/pdfchat/internal/gateway"
	"github.com/bull/pdfchat/internal/httpapi"
	"github.com/bull/pdfchat/internal/ingest"
	"github.com/bull/pdfchat/internal/pdfext"
	"github.com/bull/pdfchat/internal/prompt"
	"github.com/bull/pdfchat/internal/retriever"
)

var rootCmd = &cobra.Command{
	Use:   "pdfchat",
	Short: "RAG question-answering over an uploaded PDF",
	Long:  "HTTP service that answers questions using an uploaded PDF as retrieval context.",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Starts the question-answering HTTP server.

Endpoints:
  POST /upload-pdf  upload a PDF and build the retrieval corpus
  POST /ask         answer a question, with retrieved context when loaded
  GET  /health      readiness and corpus status
  GET  /            service info

Environment variables:
  PORT                HTTP listen port (default: 8080)
  OPENAI_API_KEY      embeddings credential
  OPENROUTER_API_KEY  completion credential
  COMPLETION_MODEL    completion model (default: openai/gpt-3.5-turbo)
  ALLOWED_ORIGINS     comma-separated CORS origins (default: *)`,
	RunE: runServe,
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.pdf>",
	Short: "Extract and chunk a local PDF without serving",
	Long:  "Extracts text from a local PDF and prints chunk statistics. Requires no API keys.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(inspectCmd)
}

func main() {
	// Load .env file if present (local development), ignore if missing.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	logger := slog.Default()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	embedder := embedding.NewOpenAIEmbedder(embedding.Config{
		APIKey:  cfg.EmbeddingAPIKey,
		Model:   cfg.EmbeddingModel,
		BaseURL: cfg.EmbeddingBaseURL,
	})
	if err := embedder.EnsureReady(ctx); err != nil {
		// Degraded start: ingestion will fail until a key is provided, and
		// /health reports model_loaded false.
		logger.Warn("embedder not ready", "error", err)
	}

	completer := gateway.NewClient(gateway.Config{
		APIKey:  cfg.CompletionAPIKey,
		Model:   cfg.CompletionModel,
		BaseURL: cfg.CompletionBaseURL,
		Timeout: cfg.CompletionTimeout,
	})
	if !completer.Ready() {
		logger.Warn("completion credential not set, answers will report the missing key")
	}

	store := corpus.NewStore()
	pipeline := ingest.NewPipeline(
		ingest.ExtractorFunc(pdfext.ExtractText),
		chunker.New(cfg.ChunkWords),
		embedder,
		store,
		logger,
	)

	server, err := httpapi.NewServer(
		httpapi.Config{
			Port:           cfg.Port,
			AllowedOrigins: cfg.AllowedOrigins,
			MaxUploadBytes: cfg.MaxUploadBytes,
		},
		store,
		pipeline,
		retriever.New(store, embedder, cfg.TopK),
		prompt.New(cfg.MaxContextChars),
		completer,
		embedder,
		logger,
	)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return server.Shutdown(shutdownCtx)
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	text, err := pdfext.ExtractText(data)
	if err != nil {
		return fmt.Errorf("extract text: %w", err)
	}

	chunks := chunker.New(cfg.ChunkWords).Split(text)
	if len(chunks) == 0 {
		return fmt.Errorf("no text found in %s", args[0])
	}

	fmt.Printf("File:        %s\n", args[0])
	fmt.Printf("Characters:  %d\n", len(text))
	fmt.Printf("Words:       %d\n", chunker.WordCount(text))
	fmt.Printf("Chunk size:  %d words\n", cfg.ChunkWords)
	fmt.Printf("Chunks:      %d\n", len(chunks))
	for i, chunk := range chunks {
		preview := chunk
		if len(preview) > 60 {
			preview = preview[:60] + "..."
		}
		fmt.Printf("  [%d] %d words: %s\n", i, chunker.WordCount(chunk), preview)
	}
	return nil
}
