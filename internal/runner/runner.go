// Package runner sequences a comparison run: embed, group, extract, measure,
// summarize, write.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"path/filepath"

	"idiomprobe/internal/domain"
	"idiomprobe/internal/embedding"
	"idiomprobe/internal/extract"
	"idiomprobe/internal/grouping"
	"idiomprobe/internal/logging"
	"idiomprobe/internal/metrics"
	"idiomprobe/internal/output"
	"idiomprobe/internal/pca"
	"idiomprobe/internal/summary"
)

// Options are the per-run parameters.
type Options struct {
	RunName   string
	InputPath string
	Model     string
	// CachePath, when set, loads embeddings from disk instead of the provider.
	CachePath string
	// CacheDir, when set, stores freshly computed embeddings for later runs.
	CacheDir string
	WritePCA bool
}

// Runner executes comparison runs against one provider and one writer.
type Runner struct {
	provider domain.Provider
	writer   *output.Writer
	rng      *rand.Rand
	log      *slog.Logger
}

// New creates a runner. The seed drives only the random control-group draws.
func New(provider domain.Provider, writer *output.Writer, seed int64) *Runner {
	return &Runner{
		provider: provider,
		writer:   writer,
		rng:      rand.New(rand.NewSource(seed)),
		log:      logging.For("runner"),
	}
}

// WordRunResult is the outcome of a word-usage comparison run.
type WordRunResult struct {
	Groups     []domain.GroupMetrics
	Summary    domain.WordSummary
	OutputPath string
}

// PairRunResult is the outcome of a sentence-paraphrase comparison run.
type PairRunResult struct {
	Pairs      []domain.PairResult
	Summary    domain.PairSummary
	OutputPath string
}

// RunWords executes the word-usage comparison. Structural failures inside one
// idiom group (missing paraphrase, missing target token) skip that group with
// a warning; the run fails only when no group survives.
func (r *Runner) RunWords(ctx context.Context, ds domain.Dataset, opts Options) (*WordRunResult, error) {
	data := ds.GetData()
	sentences := make([][]string, len(data))
	for i, ex := range data {
		sentences[i] = ex.Sentence
	}
	set, err := r.embeddings(ctx, sentences, opts)
	if err != nil {
		return nil, err
	}
	if len(set.TokenVectors) != len(data) {
		return nil, &domain.EmbeddingSourceError{
			Source: r.provider.Name(),
			Err:    fmt.Errorf("%d embedded sentences for %d examples", len(set.TokenVectors), len(data)),
		}
	}

	groups := grouping.GroupIdiomExamples(data)
	if len(groups) == 0 {
		return nil, errors.New("no idiom groups in dataset")
	}

	var results []domain.GroupMetrics
	for _, group := range groups {
		gm, err := r.groupMetrics(ds, data, group, set)
		if err != nil {
			r.log.Warn("skipping idiom group",
				slog.Int("pair_id", data[group[0]].PairID),
				slog.String("reason", err.Error()))
			continue
		}
		results = append(results, *gm)
		if opts.WritePCA {
			r.writeProjections(ds, data, group, set)
		}
	}
	if len(results) == 0 {
		return nil, errors.New("every idiom group failed; nothing to summarize")
	}

	runSummary := summary.SummarizeWords(results)
	lines := output.RunInfo(opts.RunName, opts.Model, opts.CachePath, opts.InputPath)
	for _, gm := range results {
		lines = append(lines, output.FormatGroup(gm)...)
	}
	lines = append(lines, output.FormatWordSummary(runSummary)...)
	path, err := r.writer.WriteLines(opts.RunName+"_word_similarity_results.tsv", lines)
	if err != nil {
		return nil, err
	}
	return &WordRunResult{Groups: results, Summary: runSummary, OutputPath: path}, nil
}

// RunPairs executes the sentence-paraphrase comparison.
func (r *Runner) RunPairs(ctx context.Context, ds domain.Dataset, opts Options) (*PairRunResult, error) {
	data := ds.GetData()
	if len(data) == 0 {
		return nil, errors.New("no sentence pairs in dataset")
	}
	flattened := make([][]string, 0, 2*len(data))
	for _, ex := range data {
		flattened = append(flattened, ex.Sentence1, ex.Sentence2)
	}
	set, err := r.embeddings(ctx, flattened, opts)
	if err != nil {
		return nil, err
	}
	if len(set.TokenVectors) != 2*len(data) {
		return nil, &domain.EmbeddingSourceError{
			Source: r.provider.Name(),
			Err:    fmt.Errorf("%d embedded sentences for %d pairs", len(set.TokenVectors), len(data)),
		}
	}

	results := make([]domain.PairResult, len(data))
	for i, ex := range data {
		vec1 := r.sentenceVector(set, 2*i)
		vec2 := r.sentenceVector(set, 2*i+1)
		results[i] = metrics.PairSimilarity(i, ex, vec1, vec2)
	}
	runSummary := summary.SummarizePairs(results)

	var lines []string
	for _, pr := range results {
		lines = append(lines, output.FormatPairResult(pr)...)
	}
	lines = append(lines, output.FormatPairSummary(runSummary)...)
	path, err := r.writer.WriteLines(opts.RunName+"_sentence_similarity_results.tsv", lines)
	if err != nil {
		return nil, err
	}
	return &PairRunResult{Pairs: results, Summary: runSummary, OutputPath: path}, nil
}

// embeddings loads a cache when one is given, otherwise prepares the provider
// and computes fresh vectors, storing them when a cache directory is set.
func (r *Runner) embeddings(ctx context.Context, sentences [][]string, opts Options) (*domain.EmbeddingSet, error) {
	if opts.CachePath != "" {
		r.log.Info("loading cached embeddings", slog.String("path", opts.CachePath))
		return embedding.LoadCache(opts.CachePath)
	}
	if err := r.provider.Prepare(sentences); err != nil {
		return nil, err
	}
	r.log.Info("computing embeddings",
		slog.String("provider", r.provider.Name()),
		slog.Int("sentences", len(sentences)))
	set, err := r.provider.EmbedTokens(ctx, sentences)
	if err != nil {
		return nil, err
	}
	if opts.CacheDir != "" {
		path := filepath.Join(opts.CacheDir, opts.RunName+"_embeddings.json")
		if err := embedding.SaveCache(path, set); err != nil {
			r.log.Warn("could not store embedding cache", slog.String("path", path), slog.String("error", err.Error()))
		}
	}
	return set, nil
}

// groupMetrics derives the category sets of one group, extracts the word
// vectors, and computes its metrics.
func (r *Runner) groupMetrics(ds domain.Dataset, data []domain.Example, group []int, set *domain.EmbeddingSet) (*domain.GroupMetrics, error) {
	sets, err := grouping.CategorySets(data, group, r.rng, nil)
	if err != nil {
		return nil, err
	}
	vectors := metrics.GroupVectors{}
	if vectors.Figurative, err = r.wordVectors(ds, data, sets.Figurative, set); err != nil {
		return nil, err
	}
	if vectors.Literal, err = r.wordVectors(ds, data, sets.Literal, set); err != nil {
		return nil, err
	}
	if vectors.Paraphrase, err = r.wordVectors(ds, data, sets.Paraphrase, set); err != nil {
		return nil, err
	}
	if vectors.Random, err = r.wordVectors(ds, data, sets.Random, set); err != nil {
		return nil, err
	}

	first := data[group[0]]
	idiomSentences := make([]string, len(group))
	for i, idx := range group {
		idiomSentences[i] = domain.JoinSentence(ds.Decode(set.TokenIDs[idx]))
	}
	paraWord := ""
	if w := data[sets.Paraphrase[0]].Word; len(w) > 0 {
		paraWord = w[0]
	}
	word := ""
	if len(first.Word) > 0 {
		word = first.Word[0]
	}
	gm := metrics.CalculateGroup(first.PairID, word, paraWord, idiomSentences, vectors)
	return &gm, nil
}

// wordVectors extracts the target word embedding of each listed example.
func (r *Runner) wordVectors(ds domain.Dataset, data []domain.Example, indices []int, set *domain.EmbeddingSet) ([][]float64, error) {
	out := make([][]float64, 0, len(indices))
	for _, idx := range indices {
		decoded := ds.Decode(set.TokenIDs[idx])
		vec, err := extract.WordVector(idx, data[idx], decoded, set.TokenVectors[idx])
		if err != nil {
			return nil, err
		}
		out = append(out, vec)
	}
	return out, nil
}

func (r *Runner) sentenceVector(set *domain.EmbeddingSet, idx int) []float64 {
	if idx < len(set.Pooled) && len(set.Pooled[idx]) > 0 {
		return set.Pooled[idx]
	}
	return extract.SentenceVector(set.TokenVectors[idx], nil)
}

// writeProjections emits the three scatter views of one group. The random
// view draws its own sentinel id, independent of the metric pass. Projection
// problems only cost the view, not the run.
func (r *Runner) writeProjections(ds domain.Dataset, data []domain.Example, group []int, set *domain.EmbeddingSet) {
	sets, err := grouping.CategorySets(data, group, r.rng, nil)
	if err != nil {
		return
	}
	lit, err := r.wordVectors(ds, data, sets.Literal, set)
	if err != nil {
		r.log.Warn("projection skipped", slog.String("reason", err.Error()))
		return
	}
	fig, err := r.wordVectors(ds, data, sets.Figurative, set)
	if err != nil {
		r.log.Warn("projection skipped", slog.String("reason", err.Error()))
		return
	}
	para, err := r.wordVectors(ds, data, sets.Paraphrase, set)
	if err != nil {
		r.log.Warn("projection skipped", slog.String("reason", err.Error()))
		return
	}
	randomIdx, _ := grouping.RandomControl(data, r.rng)
	rnd, err := r.wordVectors(ds, data, randomIdx, set)
	if err != nil {
		r.log.Warn("projection skipped", slog.String("reason", err.Error()))
		return
	}

	first := data[group[0]]
	word := ""
	if len(first.Word) > 0 {
		word = first.Word[0]
	}
	paraWord := ""
	if w := data[sets.Paraphrase[0]].Word; len(w) > 0 {
		paraWord = w[0]
	}
	randWord := ""
	if len(randomIdx) > 0 {
		if w := data[randomIdx[0]].Word; len(w) > 0 {
			randWord = w[0]
		}
	}

	views := []struct {
		suffix  string
		title   string
		vectors [][][]float64
		labels  []string
	}{
		{
			suffix:  "fig_lit",
			title:   fmt.Sprintf("PCA for: %q", word),
			vectors: [][][]float64{lit, fig},
			labels:  []string{"literal", "figurative"},
		},
		{
			suffix:  "fig_lit_para",
			title:   fmt.Sprintf("PCA for: %q; Paraphrase word: %s", word, paraWord),
			vectors: [][][]float64{lit, fig, para},
			labels:  []string{"literal", "figurative", "paraphrase"},
		},
		{
			suffix:  "fig_lit_para_rand",
			title:   fmt.Sprintf("PCA for: %q; Paraphrase word: %s; Random word: %s", word, paraWord, randWord),
			vectors: [][][]float64{lit, fig, para, rnd},
			labels:  []string{"literal", "figurative", "paraphrase", "random"},
		},
	}
	for _, v := range views {
		var all [][]float64
		var categories []string
		for i, setVecs := range v.vectors {
			all = append(all, setVecs...)
			for range setVecs {
				categories = append(categories, v.labels[i])
			}
		}
		points, err := pca.Project(all, categories)
		if err != nil {
			r.log.Warn("projection skipped",
				slog.Int("pair_id", first.PairID),
				slog.String("view", v.suffix),
				slog.String("reason", err.Error()))
			continue
		}
		view := pca.View{
			Filename: fmt.Sprintf("pair_id_%d_%s.tsv", first.PairID, v.suffix),
			Title:    v.title,
			Points:   points,
		}
		if _, err := r.writer.WritePCAView(view); err != nil {
			r.log.Warn("projection write failed", slog.String("reason", err.Error()))
		}
	}
}
