// Package retriever turns a question into the chunk texts most relevant to
// it, using the active corpus's nearest-neighbor index.
package retriever

import (
	"context"
	"fmt"

	"github.com/bull/pdfchat/internal/corpus"
	"github.com/bull/pdfchat/internal/embedding"
)

// DefaultTopK is the number of chunks retrieved per question.
const DefaultTopK = 3

// Result holds up to k retrieved chunks ordered by ascending distance to the
// question, with their corpus positions and squared L2 distances parallel to
// Chunks.
type Result struct {
	Chunks    []string
	Positions []int
	Distances []float32
}

// Retriever is read-only over corpus state. The embedder must be the same
// one used at ingestion time; vectors from different models are not
// comparable.
type Retriever struct {
	store    *corpus.Store
	embedder embedding.Embedder
	topK     int
}

// New creates a Retriever. topK values <= 0 fall back to DefaultTopK.
func New(store *corpus.Store, embedder embedding.Embedder, topK int) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Retriever{store: store, embedder: embedder, topK: topK}
}

// Retrieve returns the chunks nearest to question. With no corpus loaded it
// returns an empty result without invoking the embedder: retrieval is
// optional context here, not a precondition. The whole operation runs
// against a single corpus snapshot, so a concurrent upload cannot tear it.
func (r *Retriever) Retrieve(ctx context.Context, question string) (Result, error) {
	snapshot := r.store.Active()
	if snapshot == nil {
		return Result{}, nil
	}

	vectors, err := r.embedder.EmbedTexts(ctx, []string{question})
	if err != nil {
		return Result{}, fmt.Errorf("embed question: %w", err)
	}

	hits, err := snapshot.Index().Search(vectors[0], r.topK)
	if err != nil {
		return Result{}, fmt.Errorf("search index: %w", err)
	}

	var out Result
	for _, hit := range hits {
		// The index guarantees positions in range; the guard only matters
		// if corpus and index ever desynchronize.
		if hit.Position >= snapshot.ChunkCount() {
			continue
		}
		out.Chunks = append(out.Chunks, snapshot.ChunkAt(hit.Position))
		out.Positions = append(out.Positions, hit.Position)
		out.Distances = append(out.Distances, hit.Distance)
	}
	return out, nil
}
