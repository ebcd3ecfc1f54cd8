// Package corpus holds the single active document corpus: chunk texts, their
// embedding vectors, and the nearest-neighbor index built over them. Exactly
// one corpus is active at a time; a successful upload replaces it wholesale.
package corpus

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/bull/pdfchat/internal/vecindex"
)

// ErrLengthMismatch is returned when chunks and vectors are not parallel.
var ErrLengthMismatch = errors.New("chunks and vectors length mismatch")

// Corpus is one immutable generation of loaded document state. The index's
// position ordering is the sole mapping back to chunk text, so chunks are
// never reordered after construction.
type Corpus struct {
	id       string
	filename string
	loadedAt time.Time
	chunks   []string
	index    *vecindex.Flat
}

// ID returns the generation identifier assigned at ingestion.
func (c *Corpus) ID() string { return c.id }

// Filename returns the uploaded document's name.
func (c *Corpus) Filename() string { return c.filename }

// LoadedAt returns when this generation was installed.
func (c *Corpus) LoadedAt() time.Time { return c.loadedAt }

// ChunkCount returns the number of chunks in this generation.
func (c *Corpus) ChunkCount() int { return len(c.chunks) }

// ChunkAt returns the chunk text at position i.
func (c *Corpus) ChunkAt(i int) string { return c.chunks[i] }

// Index returns the nearest-neighbor index over this generation's vectors.
func (c *Corpus) Index() *vecindex.Flat { return c.index }

// Store owns the active corpus. Replace swaps generations atomically, so a
// concurrent reader sees either the fully-old or the fully-new corpus, never
// a mix; readers take one Active() snapshot and use it for their whole
// operation.
type Store struct {
	active atomic.Pointer[Corpus]
}

// NewStore creates an empty store with no corpus loaded.
func NewStore() *Store {
	return &Store{}
}

// Replace validates that chunks and vectors are parallel, builds a fresh
// index, and only then installs the new generation. Any failure leaves the
// previously active corpus (or the unloaded state) untouched.
func (s *Store) Replace(id, filename string, chunks []string, vectors [][]float32) (*Corpus, error) {
	if len(chunks) != len(vectors) {
		return nil, fmt.Errorf("%w: %d chunks, %d vectors", ErrLengthMismatch, len(chunks), len(vectors))
	}

	index, err := vecindex.Build(vectors)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}

	c := &Corpus{
		id:       id,
		filename: filename,
		loadedAt: time.Now().UTC(),
		chunks:   chunks,
		index:    index,
	}
	s.active.Store(c)
	return c, nil
}

// Active returns the current corpus snapshot, or nil when none is loaded.
func (s *Store) Active() *Corpus {
	return s.active.Load()
}

// Loaded reports whether a corpus is active.
func (s *Store) Loaded() bool {
	return s.active.Load() != nil
}

// ChunkCount returns the active corpus's chunk count, or 0 when unloaded.
func (s *Store) ChunkCount() int {
	if c := s.active.Load(); c != nil {
		return c.ChunkCount()
	}
	return 0
}
