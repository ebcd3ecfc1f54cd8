// Package ingest orchestrates document upload: extract text, chunk, embed,
// and atomically install the new corpus.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bull/pdfchat/internal/chunker"
	"github.com/bull/pdfchat/internal/corpus"
	"github.com/bull/pdfchat/internal/embedding"
)

// Client-class ingestion failures; the HTTP layer maps them to 400s.
var (
	// ErrUnsupportedFile indicates the filename suffix is not .pdf.
	ErrUnsupportedFile = errors.New("file must be PDF")
	// ErrNoText indicates extraction produced no usable text.
	ErrNoText = errors.New("no text found in PDF")
)

// Extractor turns a document byte stream into plain text. The pipeline never
// looks inside the bytes itself.
type Extractor interface {
	ExtractText(data []byte) (string, error)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(data []byte) (string, error)

func (f ExtractorFunc) ExtractText(data []byte) (string, error) { return f(data) }

// Result contains statistics about a successful ingestion.
type Result struct {
	CorpusID        string
	Filename        string
	NumChunks       int
	TotalCharacters int
	Duration        time.Duration
}

// Pipeline wires extraction, chunking, embedding and corpus replacement.
type Pipeline struct {
	extractor Extractor
	chunker   *chunker.Chunker
	embedder  embedding.Embedder
	store     *corpus.Store
	logger    *slog.Logger
}

// NewPipeline creates an ingestion pipeline with the given components.
func NewPipeline(
	extractor Extractor,
	chunker *chunker.Chunker,
	embedder embedding.Embedder,
	store *corpus.Store,
	logger *slog.Logger,
) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		extractor: extractor,
		chunker:   chunker,
		embedder:  embedder,
		store:     store,
		logger:    logger,
	}
}

// Ingest processes one uploaded document and replaces the active corpus.
// Nothing is committed on failure: a bad upload leaves the previous corpus
// (or the unloaded state) untouched.
func (p *Pipeline) Ingest(ctx context.Context, filename string, data []byte) (*Result, error) {
	start := time.Now()

	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, filename)
	}

	text, err := p.extractor.ExtractText(data)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoText
	}

	chunks := p.chunker.Split(text)
	if len(chunks) == 0 {
		return nil, ErrNoText
	}
	p.logger.Info("chunked document", "filename", filename, "chunks", len(chunks))

	vectors, err := p.embedder.EmbedTexts(ctx, chunks)
	if err != nil {
		return nil, fmt.Errorf("embed chunks: %w", err)
	}

	id := uuid.New().String()
	if _, err := p.store.Replace(id, filename, chunks, vectors); err != nil {
		return nil, fmt.Errorf("replace corpus: %w", err)
	}

	result := &Result{
		CorpusID:        id,
		Filename:        filename,
		NumChunks:       len(chunks),
		TotalCharacters: len(text),
		Duration:        time.Since(start),
	}
	p.logger.Info("ingested document",
		"filename", filename,
		"corpus_id", id,
		"chunks", result.NumChunks,
		"characters", result.TotalCharacters,
		"duration", result.Duration,
	)
	return result, nil
}
