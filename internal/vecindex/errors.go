package vecindex

import "errors"

var (
	// ErrEmptyCorpus is returned when building an index over zero vectors.
	ErrEmptyCorpus = errors.New("empty corpus")
	// ErrDimensionMismatch is returned when vector lengths disagree.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
