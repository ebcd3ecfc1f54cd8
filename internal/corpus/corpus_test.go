package corpus

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bull/pdfchat/internal/vecindex"
)

func TestStore_EmptyState(t *testing.T) {
	s := NewStore()
	assert.False(t, s.Loaded())
	assert.Equal(t, 0, s.ChunkCount())
	assert.Nil(t, s.Active())
}

func TestReplace_InstallsCorpus(t *testing.T) {
	s := NewStore()

	c, err := s.Replace("gen-1", "doc.pdf", []string{"a", "b"}, [][]float32{{1, 0}, {0, 1}})
	require.NoError(t, err)

	assert.True(t, s.Loaded())
	assert.Equal(t, 2, s.ChunkCount())
	assert.Equal(t, "gen-1", c.ID())
	assert.Equal(t, "doc.pdf", c.Filename())
	assert.Equal(t, "a", c.ChunkAt(0))
	assert.Equal(t, "b", c.ChunkAt(1))
	assert.Equal(t, 2, c.Index().Size())
	assert.False(t, c.LoadedAt().IsZero())
}

func TestReplace_LengthMismatch(t *testing.T) {
	s := NewStore()

	_, err := s.Replace("gen-1", "doc.pdf", []string{"a", "b"}, [][]float32{{1}})
	assert.ErrorIs(t, err, ErrLengthMismatch)
	assert.False(t, s.Loaded())
}

func TestReplace_FailureLeavesPriorCorpus(t *testing.T) {
	s := NewStore()

	_, err := s.Replace("gen-1", "first.pdf", []string{"a"}, [][]float32{{1, 2}})
	require.NoError(t, err)

	// Index build fails on mismatched dimensions; gen-1 must survive.
	_, err = s.Replace("gen-2", "second.pdf", []string{"x", "y"}, [][]float32{{1, 2}, {3}})
	require.ErrorIs(t, err, vecindex.ErrDimensionMismatch)

	active := s.Active()
	require.NotNil(t, active)
	assert.Equal(t, "gen-1", active.ID())
	assert.Equal(t, "first.pdf", active.Filename())
}

func TestReplace_FullyDiscardsPriorCorpus(t *testing.T) {
	s := NewStore()

	_, err := s.Replace("gen-1", "big.pdf", []string{"a", "b", "c"}, [][]float32{{1}, {2}, {3}})
	require.NoError(t, err)

	_, err = s.Replace("gen-2", "small.pdf", []string{"z"}, [][]float32{{9}})
	require.NoError(t, err)

	assert.Equal(t, 1, s.ChunkCount())
	assert.Equal(t, "gen-2", s.Active().ID())
}

// TestReplace_AtomicSwap hammers Replace from one goroutine while readers
// verify every snapshot is internally consistent: the chunk at each position
// must carry the generation tag of the snapshot it came from, and chunk
// count must match index size.
func TestReplace_AtomicSwap(t *testing.T) {
	s := NewStore()

	makeGen := func(gen, n int) (string, []string, [][]float32) {
		id := fmt.Sprintf("gen-%d", gen)
		chunks := make([]string, n)
		vectors := make([][]float32, n)
		for i := range chunks {
			chunks[i] = fmt.Sprintf("%s chunk %d", id, i)
			vectors[i] = []float32{float32(gen), float32(i)}
		}
		return id, chunks, vectors
	}

	done := make(chan struct{})
	var wg sync.WaitGroup

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				c := s.Active()
				if c == nil {
					continue
				}
				if c.ChunkCount() != c.Index().Size() {
					t.Errorf("torn corpus: %d chunks, index size %d", c.ChunkCount(), c.Index().Size())
					return
				}
				for i := 0; i < c.ChunkCount(); i++ {
					want := fmt.Sprintf("%s chunk %d", c.ID(), i)
					if c.ChunkAt(i) != want {
						t.Errorf("torn corpus: position %d is %q, want %q", i, c.ChunkAt(i), want)
						return
					}
				}
			}
		}()
	}

	for gen := 0; gen < 200; gen++ {
		id, chunks, vectors := makeGen(gen, 1+gen%5)
		_, err := s.Replace(id, "doc.pdf", chunks, vectors)
		require.NoError(t, err)
	}
	close(done)
	wg.Wait()
}
