// Package metrics computes the per-group category-pair averages and the
// per-pair sentence similarities.
package metrics

import (
	"idiomprobe/internal/domain"
	"idiomprobe/internal/vectormath"
)

// GroupVectors carries the extracted word embeddings of one idiom group,
// bucketed by category. Random may be empty.
type GroupVectors struct {
	Figurative [][]float64
	Literal    [][]float64
	Paraphrase [][]float64
	Random     [][]float64
}

// CalculateGroup computes the six category-pair averages for both measures:
// cosine similarity (inverse of cosine distance) and Euclidean distance.
func CalculateGroup(pairID int, word, paraphraseWord string, idiomSentences []string, v GroupVectors) domain.GroupMetrics {
	return domain.GroupMetrics{
		PairID:         pairID,
		Word:           word,
		ParaphraseWord: paraphraseWord,
		IdiomSentences: idiomSentences,
		Cosine:         categoryAverages(vectormath.CosineDistance, true, v),
		Euclidean:      categoryAverages(vectormath.EuclideanDistance, false, v),
	}
}

// categoryAverages runs the five unconditional category pairings plus
// fig_to_random when a control set exists. A pairing with no candidate pairs
// (empty or singleton category) comes back as the N/A sentinel.
func categoryAverages(fn vectormath.DistanceFunc, inverse bool, v GroupVectors) domain.CategoryScores {
	scores := domain.CategoryScores{
		FigToLiteral:        average(fn, inverse, v.Figurative, v.Literal),
		LiteralToLiteral:    average(fn, inverse, v.Literal, nil),
		FigToFig:            average(fn, inverse, v.Figurative, nil),
		FigToParaphrase:     average(fn, inverse, v.Figurative, v.Paraphrase),
		LiteralToParaphrase: average(fn, inverse, v.Literal, v.Paraphrase),
	}
	if len(v.Random) > 0 {
		scores.FigToRandom = average(fn, inverse, v.Figurative, v.Random)
	}
	return scores
}

func average(fn vectormath.DistanceFunc, inverse bool, setA, setB [][]float64) domain.Stat {
	avg, err := vectormath.PairwiseAverage(fn, inverse, setA, setB)
	if err != nil {
		return domain.StatNA()
	}
	return domain.StatOf(avg)
}

// PairSimilarity computes the sentence-mode result for one paraphrase pair:
// the cosine similarity of the two pooled sentence vectors alongside the gold
// label and the classifier's judgment.
func PairSimilarity(index int, ex domain.Example, vec1, vec2 []float64) domain.PairResult {
	return domain.PairResult{
		Index:            index,
		Sentence1:        domain.JoinSentence(ex.Sentence1),
		Sentence2:        domain.JoinSentence(ex.Sentence2),
		Paraphrase:       ex.Label,
		Judgment:         ex.ClassifierJudgment,
		CosineSimilarity: 1 - vectormath.CosineDistance(vec1, vec2),
	}
}
