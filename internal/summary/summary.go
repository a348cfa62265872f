// Package summary aggregates per-group metric results into run-level
// statistics and contrastive advantage deltas.
package summary

import "idiomprobe/internal/domain"

// SummarizeWords computes the run-level word-mode summary: the mean of each
// cosine category across groups and the three advantage deltas.
//
// Each delta is the average of per-group differences, never the difference of
// two averages; with unequal per-group sample counts the two disagree. Groups
// where either side of a difference is N/A contribute nothing to that delta,
// and an empty sample list yields the N/A sentinel.
func SummarizeWords(results []domain.GroupMetrics) domain.WordSummary {
	var (
		litToLit, figToLit, figToFig []float64
		figToPara, litToPara         []float64
		figToRand                    []float64
		litSimAdv, figParaAdv        []float64
		figFigAdv                    []float64
	)
	for _, r := range results {
		c := r.Cosine
		collect(&litToLit, c.LiteralToLiteral)
		collect(&figToLit, c.FigToLiteral)
		collect(&figToFig, c.FigToFig)
		collect(&figToPara, c.FigToParaphrase)
		collect(&litToPara, c.LiteralToParaphrase)
		collect(&figToRand, c.FigToRandom)
		collectDiff(&litSimAdv, c.LiteralToLiteral, c.FigToLiteral)
		collectDiff(&figParaAdv, c.FigToParaphrase, c.LiteralToParaphrase)
		collectDiff(&figFigAdv, c.FigToFig, c.LiteralToLiteral)
	}
	return domain.WordSummary{
		LiteralToLiteral:         domain.StatMean(litToLit),
		FigToLiteral:             domain.StatMean(figToLit),
		FigToFig:                 domain.StatMean(figToFig),
		FigToParaphrase:          domain.StatMean(figToPara),
		LiteralToParaphrase:      domain.StatMean(litToPara),
		FigToRandom:              domain.StatMean(figToRand),
		LiteralSimAdvantage:      domain.StatMean(litSimAdv),
		FigToParaphraseAdvantage: domain.StatMean(figParaAdv),
		FigToFigAdvantage:        domain.StatMean(figFigAdv),
	}
}

func collect(dst *[]float64, s domain.Stat) {
	if s.Valid() {
		*dst = append(*dst, s.Value())
	}
}

func collectDiff(dst *[]float64, a, b domain.Stat) {
	if a.Valid() && b.Valid() {
		*dst = append(*dst, a.Value()-b.Value())
	}
}

// SummarizePairs partitions the sentence-pair results into the four confusion
// quadrants of the paraphrase-judgment task plus the two label-only
// partitions, and averages the cosine similarity inside each. Every partition
// applies the N/A policy independently.
func SummarizePairs(results []domain.PairResult) domain.PairSummary {
	var tp, tn, fn, fp, pos, neg []float64
	for _, r := range results {
		switch {
		case r.Paraphrase && r.Judgment:
			tp = append(tp, r.CosineSimilarity)
		case !r.Paraphrase && !r.Judgment:
			tn = append(tn, r.CosineSimilarity)
		case r.Paraphrase && !r.Judgment:
			fn = append(fn, r.CosineSimilarity)
		default:
			fp = append(fp, r.CosineSimilarity)
		}
		if r.Paraphrase {
			pos = append(pos, r.CosineSimilarity)
		} else {
			neg = append(neg, r.CosineSimilarity)
		}
	}
	return domain.PairSummary{
		CorrectParaphrases:    domain.StatMean(tp),
		CorrectNonParaphrases: domain.StatMean(tn),
		MissedParaphrases:     domain.StatMean(fn),
		SpuriousParaphrases:   domain.StatMean(fp),
		Paraphrases:           domain.StatMean(pos),
		NonParaphrases:        domain.StatMean(neg),
	}
}
