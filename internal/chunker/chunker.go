// Package chunker splits extracted document text into word-bounded chunks
// suitable for embedding and retrieval.
package chunker

import "strings"

// DefaultWordsPerChunk is the chunk size used when none is configured.
const DefaultWordsPerChunk = 500

// Chunker splits plain text into fixed-size word windows.
// Chunk boundaries never fall inside a word and whitespace runs are
// collapsed to single spaces, so joining a chunk's words reproduces the
// original word sequence exactly.
type Chunker struct {
	wordsPerChunk int
}

// New creates a Chunker producing chunks of wordsPerChunk words each.
// Values <= 0 fall back to DefaultWordsPerChunk.
func New(wordsPerChunk int) *Chunker {
	if wordsPerChunk <= 0 {
		wordsPerChunk = DefaultWordsPerChunk
	}
	return &Chunker{wordsPerChunk: wordsPerChunk}
}

// WordsPerChunk returns the configured chunk size.
func (c *Chunker) WordsPerChunk() int {
	return c.wordsPerChunk
}

// Split breaks text into consecutive chunks of exactly wordsPerChunk words,
// except the final chunk which holds the remainder. Empty or all-whitespace
// input yields an empty slice; callers treat that as an ingestion failure,
// not a valid zero-chunk corpus.
func (c *Chunker) Split(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	chunks := make([]string, 0, (len(words)+c.wordsPerChunk-1)/c.wordsPerChunk)
	for i := 0; i < len(words); i += c.wordsPerChunk {
		end := min(i+c.wordsPerChunk, len(words))
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}
	return chunks
}

// WordCount reports how many whitespace-separated words text contains.
// Used by the inspect CLI for chunk statistics.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
