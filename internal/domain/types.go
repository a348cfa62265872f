package domain

// ComparisonType selects which comparison pipeline a run executes.
type ComparisonType string

const (
	// ComparisonWords compares word-level embeddings across usage categories.
	ComparisonWords ComparisonType = "words"
	// ComparisonPairs compares aggregated sentence embeddings for paraphrase pairs.
	ComparisonPairs ComparisonType = "para_pairs"
)

// Example is one labeled sentence instance from the inspection dataset.
// Examples are immutable once loaded; the core only reads them by index.
type Example struct {
	// Sentence is the ordered token sequence of the sentence (word mode).
	Sentence []string
	// Word is the target word, possibly a short token sequence.
	Word []string
	// PairID identifies the idiom/paraphrase group the example belongs to.
	PairID int
	// Figurative marks idiomatic (true) versus literal (false) usage.
	Figurative bool

	// Paraphrase-pair fields (sentence mode).
	Sentence1 []string
	Sentence2 []string
	// Label is the gold paraphrase judgment.
	Label bool
	// ClassifierJudgment is the predicted paraphrase judgment.
	ClassifierJudgment bool
}

// EmbeddingSet is the four-part embedding shape produced by a Provider or
// loaded from a cache: per-token vectors, the encoded inputs they were computed
// from, alignment indices, and pooled per-sentence vectors.
type EmbeddingSet struct {
	// TokenVectors[i][j] is the embedding of token j of sentence i.
	TokenVectors [][][]float64 `json:"token_vectors"`
	// TokenIDs[i] is the encoded input (vocabulary ids) of sentence i.
	TokenIDs [][]int `json:"token_ids"`
	// AlignmentIndices maps sentence positions back to dataset rows. For the
	// flattened paraphrase layout, rows 2k and 2k+1 belong to pair k.
	AlignmentIndices []int `json:"alignment_indices"`
	// Pooled[i] is the provider's pooled vector for sentence i, if any.
	Pooled [][]float64 `json:"pooled"`
}

// CategorySets are the derived index lists for one idiom group. Indices point
// into the full example list. Sets are disjoint in practice (different word or
// figurative condition) but that is not enforced by construction.
type CategorySets struct {
	// Figurative holds the group members themselves.
	Figurative []int
	// Literal holds same-pair, same-word, non-figurative usages.
	Literal []int
	// Paraphrase holds same-pair examples with a different target word.
	Paraphrase []int
	// Random holds the control set drawn from one sentinel pair id; may be empty.
	Random []int
	// RandomPairID is the sentinel id the control set was drawn from (0 if none).
	RandomPairID int
}

// CategoryScores holds the six per-group category-pair averages for one
// distance measure. FigToRandom is only computed when the random control set
// is non-empty; every field is a Stat so an empty category surfaces as N/A
// rather than a fake zero.
type CategoryScores struct {
	FigToLiteral        Stat
	LiteralToLiteral    Stat
	FigToFig            Stat
	FigToParaphrase     Stat
	LiteralToParaphrase Stat
	FigToRandom         Stat
}

// GroupMetrics is the metric result for one idiom group: the two per-measure
// score sets plus the metadata used for reporting.
type GroupMetrics struct {
	PairID         int
	Word           string
	ParaphraseWord string
	// IdiomSentences are the decoded figurative sentences of the group.
	IdiomSentences []string
	Cosine         CategoryScores
	Euclidean      CategoryScores
}

// PairResult is the sentence-mode result for one paraphrase pair.
type PairResult struct {
	Index            int
	Sentence1        string
	Sentence2        string
	Paraphrase       bool
	Judgment         bool
	CosineSimilarity float64
}

// WordSummary is the run-level aggregate for word mode: the mean of each
// cosine category across groups plus the three advantage deltas, each computed
// as the average of per-group differences.
type WordSummary struct {
	LiteralToLiteral    Stat
	FigToLiteral        Stat
	FigToFig            Stat
	FigToParaphrase     Stat
	LiteralToParaphrase Stat
	FigToRandom         Stat

	// LiteralSimAdvantage is mean(literal_to_literal - fig_to_literal).
	LiteralSimAdvantage Stat
	// FigToParaphraseAdvantage is mean(fig_to_paraphrase - literal_to_paraphrase).
	FigToParaphraseAdvantage Stat
	// FigToFigAdvantage is mean(fig_to_fig - literal_to_literal).
	FigToFigAdvantage Stat
}

// PairSummary is the run-level aggregate for sentence mode: mean cosine
// similarity inside each confusion quadrant of the paraphrase-judgment task
// plus the two label-only partitions.
type PairSummary struct {
	CorrectParaphrases    Stat
	CorrectNonParaphrases Stat
	MissedParaphrases     Stat
	SpuriousParaphrases   Stat
	Paraphrases           Stat
	NonParaphrases        Stat
}
