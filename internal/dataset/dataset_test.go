package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"idiomprobe/internal/domain"
)

func writeTSV(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.tsv")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadWords(t *testing.T) {
	path := writeTSV(t,
		"sentence\tword\tpair_id\tfigurative",
		"He kicked the bucket\tbucket\t1\t1",
		"She filled the bucket\tbucket\t1\t0",
		"He finally died\tdied\t1\t0",
	)
	d, err := LoadWords(path)
	if err != nil {
		t.Fatalf("LoadWords: %v", err)
	}
	data := d.GetData()
	want := []domain.Example{
		{Sentence: []string{"he", "kicked", "the", "bucket"}, Word: []string{"bucket"}, PairID: 1, Figurative: true},
		{Sentence: []string{"she", "filled", "the", "bucket"}, Word: []string{"bucket"}, PairID: 1},
		{Sentence: []string{"he", "finally", "died"}, Word: []string{"died"}, PairID: 1},
	}
	if diff := cmp.Diff(want, data); diff != "" {
		t.Errorf("examples mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadWordsColumnOrderIndependent(t *testing.T) {
	path := writeTSV(t,
		"pair_id\tfigurative\tword\tsentence",
		"2\ttrue\tbeans\tShe spilled the beans",
	)
	d, err := LoadWords(path)
	if err != nil {
		t.Fatalf("LoadWords: %v", err)
	}
	ex := d.GetData()[0]
	if ex.PairID != 2 || !ex.Figurative || ex.Word[0] != "beans" {
		t.Errorf("example = %+v", ex)
	}
}

func TestLoadWordsMissingColumn(t *testing.T) {
	path := writeTSV(t,
		"sentence\tword\tpair_id",
		"He kicked the bucket\tbucket\t1",
	)
	if _, err := LoadWords(path); err == nil {
		t.Fatal("expected error for missing figurative column")
	}
}

func TestLoadWordsRaggedRow(t *testing.T) {
	path := writeTSV(t,
		"sentence\tword\tpair_id\tfigurative",
		"He kicked the bucket\tbucket\t1\t1",
		"just one field",
	)
	_, err := LoadWords(path)
	if err == nil {
		t.Fatal("expected error for short row")
	}
	if !strings.Contains(err.Error(), "row 3") {
		t.Errorf("error should name the row: %v", err)
	}
}

func TestLoadPairsRaggedRow(t *testing.T) {
	path := writeTSV(t,
		"sentence_1\tsentence_2\tlabel\tclassifier_judgment",
		"It rains\tWater falls",
	)
	_, err := LoadPairs(path)
	if err == nil {
		t.Fatal("expected error for short row")
	}
	if !strings.Contains(err.Error(), "row 2") {
		t.Errorf("error should name the row: %v", err)
	}
}

func TestLoadPairs(t *testing.T) {
	path := writeTSV(t,
		"sentence_1\tsentence_2\tlabel\tclassifier_judgment",
		"It rains\tWater falls\t1\t0",
		"It rains\tThe sun shines\t0\t1",
	)
	d, err := LoadPairs(path)
	if err != nil {
		t.Fatalf("LoadPairs: %v", err)
	}
	data := d.GetData()
	if len(data) != 2 {
		t.Fatalf("got %d pairs, want 2", len(data))
	}
	if !data[0].Label || data[0].ClassifierJudgment {
		t.Errorf("pair 0 labels = %+v", data[0])
	}
	flat := d.FlattenedSentences()
	if len(flat) != 4 {
		t.Fatalf("flattened length = %d, want 4", len(flat))
	}
	if diff := cmp.Diff([]string{"water", "falls"}, flat[1]); diff != "" {
		t.Errorf("flattened row 1 mismatch (-want +got):\n%s", diff)
	}
}

func TestVocabRoundTrip(t *testing.T) {
	v := NewVocab()
	v.Add([]string{"he", "kicked", "the", "bucket"})
	ids := v.Encode([]string{"he", "kicked", "the", "bucket"})
	if diff := cmp.Diff([]string{"he", "kicked", "the", "bucket"}, v.Decode(ids)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	unknown := v.Encode([]string{"zebra"})
	if unknown[0] != 0 {
		t.Errorf("unknown token id = %d, want 0", unknown[0])
	}
	if got := v.Decode([]int{99})[0]; got != "[unk]" {
		t.Errorf("out-of-range decode = %q, want [unk]", got)
	}
}
