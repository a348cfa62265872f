package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoPairs is returned when a pairwise average has no candidate pairs; the
// average of zero samples is undefined.
var ErrNoPairs = errors.New("no candidate pairs to average")

// TargetTokenNotFoundError reports that the target word's leading sub-token is
// absent from a sentence's decoded token sequence, usually a tokenizer
// sub-word mismatch.
type TargetTokenNotFoundError struct {
	ExampleIndex int
	Word         string
	Sentence     string
}

func (e *TargetTokenNotFoundError) Error() string {
	return fmt.Sprintf("target token %q not found in example %d: %q",
		e.Word, e.ExampleIndex, e.Sentence)
}

// NoParaphraseError reports an idiom group with no paraphrase examples; the
// paraphrase word lookup structurally requires at least one.
type NoParaphraseError struct {
	PairID int
	Word   string
}

func (e *NoParaphraseError) Error() string {
	return fmt.Sprintf("no paraphrase found for idiom group pair_id=%d (word %q)",
		e.PairID, e.Word)
}

// EmbeddingSourceError reports an unavailable or malformed embedding source
// (remote provider or on-disk cache). Fatal for the run; no retry.
type EmbeddingSourceError struct {
	Source string
	Err    error
}

func (e *EmbeddingSourceError) Error() string {
	return fmt.Sprintf("embedding source %s: %v", e.Source, e.Err)
}

func (e *EmbeddingSourceError) Unwrap() error { return e.Err }

// JoinSentence renders a token sequence for diagnostics.
func JoinSentence(tokens []string) string { return strings.Join(tokens, " ") }
