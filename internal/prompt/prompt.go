// Package prompt builds the instruction sent to the completion service,
// optionally augmented with retrieved context.
package prompt

import "strings"

// DefaultMaxContextChars bounds the total context block. At the rough
// 4-characters-per-token estimate this is ~6000 tokens, leaving headroom
// under typical completion-model input limits.
const DefaultMaxContextChars = 24000

// Assembler wraps retrieved chunks and a question into a single prompt.
type Assembler struct {
	maxContextChars int
}

// New creates an Assembler. maxContextChars <= 0 falls back to
// DefaultMaxContextChars.
func New(maxContextChars int) *Assembler {
	if maxContextChars <= 0 {
		maxContextChars = DefaultMaxContextChars
	}
	return &Assembler{maxContextChars: maxContextChars}
}

// Assemble returns the prompt and the number of context chunks actually
// included. With no context the prompt is the question verbatim. Chunks are
// taken in rank order; once the running context size would exceed the budget
// the remaining (lower-ranked) chunks are dropped whole, never split
// mid-chunk. At least the top-ranked chunk is always included so retrieval
// is never silently discarded.
func (a *Assembler) Assemble(question string, contextChunks []string) (string, int) {
	if len(contextChunks) == 0 {
		return question, 0
	}

	used := 0
	total := 0
	for _, chunk := range contextChunks {
		cost := len(chunk)
		if used > 0 {
			cost += 2 // blank-line separator
		}
		if used > 0 && total+cost > a.maxContextChars {
			break
		}
		total += cost
		used++
	}

	var sb strings.Builder
	sb.WriteString("Based on the following information, answer the question in detail:\n\nInformation:\n\n")
	sb.WriteString(strings.Join(contextChunks[:used], "\n\n"))
	sb.WriteString("\n\nQuestion: ")
	sb.WriteString(question)
	sb.WriteString("\n\nAnswer:")
	return sb.String(), used
}
