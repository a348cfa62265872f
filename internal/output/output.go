// Package output writes the per-run results files: a tab-separated metrics
// report and, when requested, the PCA point files.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"idiomprobe/internal/domain"
	"idiomprobe/internal/pca"
)

// Writer creates per-run files under a base output directory.
type Writer struct {
	baseDir string
	runName string
}

// NewWriter creates a writer for one run. baseDir defaults to "output".
func NewWriter(baseDir, runName string) *Writer {
	if baseDir == "" {
		baseDir = "output"
	}
	return &Writer{baseDir: baseDir, runName: runName}
}

// RunDir is the per-run directory, created on first write.
func (w *Writer) RunDir() string { return filepath.Join(w.baseDir, w.runName) }

// WriteLines writes the lines to filename inside the run directory and
// returns the full path.
func (w *Writer) WriteLines(filename string, lines []string) (string, error) {
	dir := w.RunDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, filename)
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// WritePCAView writes one projected scatter view as a TSV point file under
// the run's pca directory.
func (w *Writer) WritePCAView(view pca.View) (string, error) {
	dir := filepath.Join(w.RunDir(), "pca")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	lines := []string{"# " + view.Title, "x\ty\tcategory"}
	for _, p := range view.Points {
		lines = append(lines, fmt.Sprintf("%g\t%g\t%s", p.X, p.Y, p.Category))
	}
	path := filepath.Join(dir, view.Filename)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// RunInfo renders the run parameter header lines of the word results file.
func RunInfo(runName, model, cachePath, inputPath string) []string {
	return []string{
		"Run name:\t" + runName,
		"Embedding model:\t" + model,
		"Embedding cache:\t" + cachePath,
		"Input file:\t" + inputPath,
		"",
	}
}

// FormatGroup renders one idiom group's metrics.
func FormatGroup(m domain.GroupMetrics) []string {
	lines := []string{
		fmt.Sprintf("pair_id:\t%d", m.PairID),
		"word:\t" + m.Word,
		"paraphrase_word:\t" + m.ParaphraseWord,
		"idiom_sentences:\t" + strings.Join(m.IdiomSentences, " | "),
	}
	lines = append(lines, formatScores("cosine_sim", m.Cosine)...)
	lines = append(lines, formatScores("euclidean_dist", m.Euclidean)...)
	return append(lines, "")
}

func formatScores(prefix string, s domain.CategoryScores) []string {
	lines := []string{
		prefix + " fig_to_literal:\t" + s.FigToLiteral.String(),
		prefix + " literal_to_literal:\t" + s.LiteralToLiteral.String(),
		prefix + " fig_to_fig:\t" + s.FigToFig.String(),
		prefix + " fig_to_paraphrase:\t" + s.FigToParaphrase.String(),
		prefix + " literal_to_paraphrase:\t" + s.LiteralToParaphrase.String(),
	}
	if s.FigToRandom.Valid() {
		lines = append(lines, prefix+" fig_to_random:\t"+s.FigToRandom.String())
	}
	return lines
}

// FormatWordSummary renders the run-level averages block.
func FormatWordSummary(s domain.WordSummary) []string {
	return []string{
		"Averages:",
		"Average COSINE SIM- literal to literal:\t" + s.LiteralToLiteral.String(),
		"Average COSINE SIM- figurative to literal:\t" + s.FigToLiteral.String(),
		"Average COSINE SIM- figurative to figurative:\t" + s.FigToFig.String(),
		"Average COSINE SIM- figurative to paraphrase:\t" + s.FigToParaphrase.String(),
		"Average COSINE SIM- literal to paraphrase:\t" + s.LiteralToParaphrase.String(),
		"Average COSINE SIM- figurative to random:\t" + s.FigToRandom.String(),
		"COSINE SIM avg improvement - lit_to_lit over fig_to_lit:\t" + s.LiteralSimAdvantage.String(),
		"COSINE SIM avg improvement - fig_to_paraphrase over lit_to_paraphrase:\t" + s.FigToParaphraseAdvantage.String(),
		"COSINE SIM avg improvement - fig_to_fig over lit_to_lit:\t" + s.FigToFigAdvantage.String(),
	}
}

// FormatPairResult renders one paraphrase pair result.
func FormatPairResult(r domain.PairResult) []string {
	return []string{
		fmt.Sprintf("pair_index:\t%d", r.Index),
		"sent_1:\t" + r.Sentence1,
		"sent_2:\t" + r.Sentence2,
		fmt.Sprintf("paraphrase:\t%t", r.Paraphrase),
		fmt.Sprintf("judgment:\t%t", r.Judgment),
		fmt.Sprintf("cosine_similarity:\t%g", r.CosineSimilarity),
		"",
	}
}

// FormatPairSummary renders the sentence-mode averages block.
func FormatPairSummary(s domain.PairSummary) []string {
	return []string{
		"average_cosine_sim_for_correctly_judged_paraphrases:\t" + s.CorrectParaphrases.String(),
		"average_cosine_sim_for_correctly_judged_non_paraphrases:\t" + s.CorrectNonParaphrases.String(),
		"average_cosine_sim_for_incorrectly_judged_paraphrases:\t" + s.MissedParaphrases.String(),
		"average_cosine_sim_for_incorrectly_judged_non_paraphrases:\t" + s.SpuriousParaphrases.String(),
		"average_cosine_for_paraphrases:\t" + s.Paraphrases.String(),
		"average_cosine_for_non_paraphrases:\t" + s.NonParaphrases.String(),
	}
}
