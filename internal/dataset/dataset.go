// Package dataset loads the labeled inspection examples from TSV and owns the
// vocabulary used to encode and decode token sequences.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"idiomprobe/internal/domain"
)

// WordDataset holds word-inspection examples: one labeled sentence per row.
type WordDataset struct {
	examples []domain.Example
	vocab    *Vocab
}

// PairDataset holds paraphrase-pair examples: two sentences per row plus the
// gold label and the classifier's judgment.
type PairDataset struct {
	examples []domain.Example
	vocab    *Vocab
}

// LoadWords reads a word-inspection TSV. The header must name the columns
// sentence, word, pair_id, and figurative.
func LoadWords(path string) (*WordDataset, error) {
	rows, header, err := readTSV(path)
	if err != nil {
		return nil, err
	}
	cols, err := columnIndex(header, "sentence", "word", "pair_id", "figurative")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	need := maxIndex(cols) + 1
	d := &WordDataset{vocab: NewVocab()}
	for i, row := range rows {
		if len(row) < need {
			return nil, fmt.Errorf("%s row %d: %d columns, need at least %d", path, i+2, len(row), need)
		}
		pairID, err := strconv.Atoi(strings.TrimSpace(row[cols["pair_id"]]))
		if err != nil {
			return nil, fmt.Errorf("%s row %d: bad pair_id %q", path, i+2, row[cols["pair_id"]])
		}
		ex := domain.Example{
			Sentence:   Tokenize(row[cols["sentence"]]),
			Word:       Tokenize(row[cols["word"]]),
			PairID:     pairID,
			Figurative: parseBool(row[cols["figurative"]]),
		}
		d.vocab.Add(ex.Sentence)
		d.examples = append(d.examples, ex)
	}
	return d, nil
}

// LoadPairs reads a paraphrase-pair TSV. The header must name the columns
// sentence_1, sentence_2, label, and classifier_judgment.
func LoadPairs(path string) (*PairDataset, error) {
	rows, header, err := readTSV(path)
	if err != nil {
		return nil, err
	}
	cols, err := columnIndex(header, "sentence_1", "sentence_2", "label", "classifier_judgment")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	need := maxIndex(cols) + 1
	d := &PairDataset{vocab: NewVocab()}
	for i, row := range rows {
		if len(row) < need {
			return nil, fmt.Errorf("%s row %d: %d columns, need at least %d", path, i+2, len(row), need)
		}
		ex := domain.Example{
			Sentence1:          Tokenize(row[cols["sentence_1"]]),
			Sentence2:          Tokenize(row[cols["sentence_2"]]),
			Label:              parseBool(row[cols["label"]]),
			ClassifierJudgment: parseBool(row[cols["classifier_judgment"]]),
		}
		d.vocab.Add(ex.Sentence1)
		d.vocab.Add(ex.Sentence2)
		d.examples = append(d.examples, ex)
	}
	return d, nil
}

func (d *WordDataset) GetData() []domain.Example { return d.examples }
func (d *WordDataset) Encode(tokens []string) []int { return d.vocab.Encode(tokens) }
func (d *WordDataset) Decode(ids []int) []string { return d.vocab.Decode(ids) }
func (d *PairDataset) GetData() []domain.Example { return d.examples }
func (d *PairDataset) Encode(tokens []string) []int { return d.vocab.Encode(tokens) }
func (d *PairDataset) Decode(ids []int) []string { return d.vocab.Decode(ids) }

// Sentences returns the tokenized sentences of the word dataset in row order,
// the shape the embedding provider consumes.
func (d *WordDataset) Sentences() [][]string {
	out := make([][]string, len(d.examples))
	for i, ex := range d.examples {
		out[i] = ex.Sentence
	}
	return out
}

// FlattenedSentences returns the pair sentences interleaved: rows 2k and 2k+1
// are the two sides of pair k.
func (d *PairDataset) FlattenedSentences() [][]string {
	out := make([][]string, 0, 2*len(d.examples))
	for _, ex := range d.examples {
		out = append(out, ex.Sentence1, ex.Sentence2)
	}
	return out
}

// Tokenize lower-cases and whitespace-splits a sentence. The input data is
// pre-tokenized, so fancier segmentation would only disagree with the word
// column.
func Tokenize(s string) []string {
	return strings.Fields(strings.ToLower(s))
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "t", "yes", "y":
		return true
	}
	return false
}

// maxIndex is the highest column index a loader will read, so rows shorter
// than that can be rejected instead of indexing out of range.
func maxIndex(cols map[string]int) int {
	m := 0
	for _, i := range cols {
		if i > m {
			m = i
		}
	}
	return m
}

func readTSV(path string) ([][]string, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%s: empty dataset", path)
	}
	return records[1:], records[0], nil
}

func columnIndex(header []string, names ...string) (map[string]int, error) {
	idx := make(map[string]int, len(names))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	out := make(map[string]int, len(names))
	for _, name := range names {
		i, ok := idx[name]
		if !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
		out[name] = i
	}
	return out, nil
}
