// Package extract locates the embedding vector a comparison needs: the target
// word's vector in word mode, or a pooled sentence vector in sentence mode.
package extract

import (
	"idiomprobe/internal/domain"
	"idiomprobe/internal/vectormath"
)

// WordVector returns the embedding of the target word in one example. The word
// is located by the first exact match of its leading sub-token in the decoded
// token sequence; sub-word tokenization can legitimately make that match fail,
// which surfaces as a TargetTokenNotFoundError rather than an index panic.
func WordVector(exampleIndex int, ex domain.Example, decodedTokens []string, tokenVectors [][]float64) ([]float64, error) {
	if len(ex.Word) == 0 {
		return nil, &domain.TargetTokenNotFoundError{
			ExampleIndex: exampleIndex,
			Sentence:     domain.JoinSentence(ex.Sentence),
		}
	}
	target := ex.Word[0]
	for i, tok := range decodedTokens {
		if tok == target {
			return tokenVectors[i], nil
		}
	}
	return nil, &domain.TargetTokenNotFoundError{
		ExampleIndex: exampleIndex,
		Word:         target,
		Sentence:     domain.JoinSentence(ex.Sentence),
	}
}

// SentenceVector collapses a sentence's token vectors into one vector using
// the given reducer, defaulting to mean pooling.
func SentenceVector(tokenVectors [][]float64, reducer vectormath.Reducer) []float64 {
	if reducer == nil {
		reducer = vectormath.MeanPool
	}
	return reducer(tokenVectors)
}
