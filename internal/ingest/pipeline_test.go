package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bull/pdfchat/internal/chunker"
	"github.com/bull/pdfchat/internal/corpus"
)

// passthroughExtractor treats the uploaded bytes as already-extracted text.
var passthroughExtractor = ExtractorFunc(func(data []byte) (string, error) {
	return string(data), nil
})

// countingEmbedder produces a distinct 2-d vector per text.
type countingEmbedder struct {
	calls int
	fail  error
}

func (e *countingEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	e.calls++
	if e.fail != nil {
		return nil, e.fail
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{float32(i), float32(len(texts[i]))}
	}
	return out, nil
}

func (e *countingEmbedder) EnsureReady(ctx context.Context) error { return nil }
func (e *countingEmbedder) Ready() bool                           { return true }

func newTestPipeline(store *corpus.Store, emb *countingEmbedder) *Pipeline {
	return NewPipeline(passthroughExtractor, chunker.New(500), emb, store, nil)
}

func manyWords(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("word%d", i)
	}
	return strings.Join(words, " ")
}

func TestIngest_RejectsNonPDFSuffix(t *testing.T) {
	store := corpus.NewStore()
	p := newTestPipeline(store, &countingEmbedder{})

	_, err := p.Ingest(context.Background(), "notes.txt", []byte("some text"))
	assert.ErrorIs(t, err, ErrUnsupportedFile)
	assert.False(t, store.Loaded())
}

func TestIngest_AcceptsUppercaseSuffix(t *testing.T) {
	store := corpus.NewStore()
	p := newTestPipeline(store, &countingEmbedder{})

	_, err := p.Ingest(context.Background(), "REPORT.PDF", []byte("hello world"))
	require.NoError(t, err)
	assert.True(t, store.Loaded())
}

func TestIngest_BlankTextFails(t *testing.T) {
	store := corpus.NewStore()
	p := newTestPipeline(store, &countingEmbedder{})

	_, err := p.Ingest(context.Background(), "blank.pdf", []byte("   \n\t "))
	assert.ErrorIs(t, err, ErrNoText)
	assert.False(t, store.Loaded())
}

func TestIngest_ChunkCounts(t *testing.T) {
	store := corpus.NewStore()
	p := newTestPipeline(store, &countingEmbedder{})

	text := manyWords(1200)
	result, err := p.Ingest(context.Background(), "big.pdf", []byte(text))
	require.NoError(t, err)

	assert.Equal(t, 3, result.NumChunks)
	assert.Equal(t, len(text), result.TotalCharacters)
	assert.Equal(t, "big.pdf", result.Filename)
	assert.NotEmpty(t, result.CorpusID)
	assert.Equal(t, 3, store.ChunkCount())
}

func TestIngest_EmbeddingFailureLeavesPriorCorpus(t *testing.T) {
	store := corpus.NewStore()
	emb := &countingEmbedder{}
	p := newTestPipeline(store, emb)

	first, err := p.Ingest(context.Background(), "first.pdf", []byte("alpha beta gamma"))
	require.NoError(t, err)

	emb.fail = errors.New("rate limited")
	_, err = p.Ingest(context.Background(), "second.pdf", []byte("delta epsilon"))
	require.Error(t, err)

	active := store.Active()
	require.NotNil(t, active)
	assert.Equal(t, first.CorpusID, active.ID())
	assert.Equal(t, "first.pdf", active.Filename())
}

func TestIngest_ReplacesPriorCorpus(t *testing.T) {
	store := corpus.NewStore()
	p := newTestPipeline(store, &countingEmbedder{})

	_, err := p.Ingest(context.Background(), "first.pdf", []byte(manyWords(600)))
	require.NoError(t, err)
	require.Equal(t, 2, store.ChunkCount())

	second, err := p.Ingest(context.Background(), "second.pdf", []byte("tiny document"))
	require.NoError(t, err)

	assert.Equal(t, 1, store.ChunkCount())
	assert.Equal(t, second.CorpusID, store.Active().ID())
}

func TestIngest_ExtractorFailurePropagates(t *testing.T) {
	store := corpus.NewStore()
	boom := errors.New("corrupt file")
	p := NewPipeline(
		ExtractorFunc(func(data []byte) (string, error) { return "", boom }),
		chunker.New(500),
		&countingEmbedder{},
		store,
		nil,
	)

	_, err := p.Ingest(context.Background(), "bad.pdf", []byte("x"))
	assert.ErrorIs(t, err, boom)
	assert.False(t, store.Loaded())
}
