// Package vecindex provides an exact nearest-neighbor index over embedding
// vectors of one fixed dimensionality. Corpora here are a single document's
// chunks (hundreds to low thousands of vectors), so a brute-force scan with
// squared L2 distance beats any approximate structure on both simplicity and
// recall.
package vecindex

import (
	"fmt"
	"sort"
)

// Result is one nearest-neighbor hit. Position is a 0-based index into the
// vector sequence the index was built from; mapping it back to chunk text is
// the caller's job.
type Result struct {
	Position int
	Distance float32
}

// Flat is an exact squared-L2 index. Immutable after Build; safe for
// concurrent searches.
type Flat struct {
	dim     int
	vectors [][]float32
}

// Build constructs an index over vectors. All vectors must share the length
// of the first one (ErrDimensionMismatch otherwise) and the sequence must be
// non-empty (ErrEmptyCorpus). The slice is retained; callers must not mutate
// it afterwards.
func Build(vectors [][]float32) (*Flat, error) {
	if len(vectors) == 0 {
		return nil, ErrEmptyCorpus
	}
	dim := len(vectors[0])
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("%w: vector %d has %d dimensions, want %d", ErrDimensionMismatch, i, len(v), dim)
		}
	}
	return &Flat{dim: dim, vectors: vectors}, nil
}

// Size returns the number of indexed vectors.
func (f *Flat) Size() int {
	return len(f.vectors)
}

// Dimension returns the vector dimensionality.
func (f *Flat) Dimension() int {
	return f.dim
}

// Search returns the min(k, Size()) indexed vectors nearest to query,
// ordered by ascending squared L2 distance. Equal distances order by
// position, so results are deterministic for a fixed build. Positions are
// always within [0, Size()).
func (f *Flat) Search(query []float32, k int) ([]Result, error) {
	if len(query) != f.dim {
		return nil, fmt.Errorf("%w: query has %d dimensions, want %d", ErrDimensionMismatch, len(query), f.dim)
	}
	if k <= 0 {
		return nil, nil
	}

	results := make([]Result, len(f.vectors))
	for i, v := range f.vectors {
		results[i] = Result{Position: i, Distance: squaredL2(query, v)}
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Distance != results[j].Distance {
			return results[i].Distance < results[j].Distance
		}
		return results[i].Position < results[j].Position
	})

	if k < len(results) {
		results = results[:k]
	}
	return results, nil
}

// squaredL2 accumulates in float64 to limit rounding drift across
// high-dimensional vectors.
func squaredL2(a, b []float32) float32 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return float32(sum)
}
