package grouping

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"idiomprobe/internal/domain"
)

func ex(pairID int, word string, figurative bool) domain.Example {
	return domain.Example{
		Sentence:   []string{"the", word, "example"},
		Word:       []string{word},
		PairID:     pairID,
		Figurative: figurative,
	}
}

func TestGroupIdiomExamples(t *testing.T) {
	examples := []domain.Example{
		ex(2, "kick", true),   // 0
		ex(1, "hold", true),   // 1
		ex(1, "hold", false),  // 2
		ex(2, "kick", true),   // 3
		ex(1, "hold", true),   // 4
		ex(3, "grasp", false), // 5: literal only, no group
	}
	got := GroupIdiomExamples(examples)
	want := [][]int{{1, 4}, {0, 3}} // ascending pair id
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GroupIdiomExamples mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupIdiomExamplesEmpty(t *testing.T) {
	examples := []domain.Example{ex(1, "hold", false)}
	if got := GroupIdiomExamples(examples); len(got) != 0 {
		t.Errorf("expected no groups, got %v", got)
	}
}

func TestCategorySets(t *testing.T) {
	examples := []domain.Example{
		ex(1, "hold", true),    // 0 figurative
		ex(1, "hold", false),   // 1 literal
		ex(1, "hold", false),   // 2 literal
		ex(1, "keep", false),   // 3 paraphrase (different word)
		ex(1, "keep", true),    // 4 paraphrase regardless of figurative flag
		ex(2, "hold", false),   // 5 other pair, excluded
		ex(899, "zebra", false), // 6 sentinel control
		ex(999, "piano", false), // 7 sentinel control
	}
	rng := rand.New(rand.NewSource(1))
	sets, err := CategorySets(examples, []int{0}, rng, nil)
	if err != nil {
		t.Fatalf("CategorySets: %v", err)
	}
	if diff := cmp.Diff([]int{1, 2}, sets.Literal); diff != "" {
		t.Errorf("Literal mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{3, 4}, sets.Paraphrase); diff != "" {
		t.Errorf("Paraphrase mismatch (-want +got):\n%s", diff)
	}
	// The drawn sentinel either has members (899 or 999 here) or none (799).
	switch sets.RandomPairID {
	case 899:
		if diff := cmp.Diff([]int{6}, sets.Random); diff != "" {
			t.Errorf("Random mismatch (-want +got):\n%s", diff)
		}
	case 999:
		if diff := cmp.Diff([]int{7}, sets.Random); diff != "" {
			t.Errorf("Random mismatch (-want +got):\n%s", diff)
		}
	case 0:
		if len(sets.Random) != 0 {
			t.Errorf("RandomPairID unset but Random = %v", sets.Random)
		}
	default:
		t.Errorf("unexpected RandomPairID %d", sets.RandomPairID)
	}
}

func TestCategorySetsMultiTokenWord(t *testing.T) {
	multi := func(pairID int, word []string, figurative bool) domain.Example {
		return domain.Example{
			Sentence:   append([]string{"they"}, word...),
			Word:       word,
			PairID:     pairID,
			Figurative: figurative,
		}
	}
	examples := []domain.Example{
		multi(1, []string{"kick", "the", "bucket"}, true),  // 0 figurative
		multi(1, []string{"kick", "the", "bucket"}, false), // 1 literal, whole word equal
		multi(1, []string{"kick"}, false),                  // 2 paraphrase despite shared first token
		multi(1, []string{"die"}, false),                   // 3 paraphrase
	}
	sets, err := CategorySets(examples, []int{0}, rand.New(rand.NewSource(1)), nil)
	if err != nil {
		t.Fatalf("CategorySets: %v", err)
	}
	if diff := cmp.Diff([]int{1}, sets.Literal); diff != "" {
		t.Errorf("Literal mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{2, 3}, sets.Paraphrase); diff != "" {
		t.Errorf("Paraphrase mismatch (-want +got):\n%s", diff)
	}
}

func TestCategorySetsSeededDeterminism(t *testing.T) {
	examples := []domain.Example{
		ex(1, "hold", true),
		ex(1, "keep", false),
		ex(799, "ant", false),
		ex(899, "bee", false),
		ex(999, "cow", false),
	}
	a, err := CategorySets(examples, []int{0}, rand.New(rand.NewSource(7)), nil)
	if err != nil {
		t.Fatalf("CategorySets: %v", err)
	}
	b, err := CategorySets(examples, []int{0}, rand.New(rand.NewSource(7)), nil)
	if err != nil {
		t.Fatalf("CategorySets: %v", err)
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed produced different sets (-a +b):\n%s", diff)
	}
	if len(a.Random) != 1 {
		t.Errorf("expected one control sentence, got %v", a.Random)
	}
}

func TestCategorySetsRandomOverride(t *testing.T) {
	examples := []domain.Example{
		ex(1, "hold", true),
		ex(1, "keep", false),
		ex(899, "bee", false),
	}
	sets, err := CategorySets(examples, []int{0}, nil, []int{2})
	if err != nil {
		t.Fatalf("CategorySets: %v", err)
	}
	if diff := cmp.Diff([]int{2}, sets.Random); diff != "" {
		t.Errorf("Random mismatch (-want +got):\n%s", diff)
	}
	if sets.RandomPairID != 899 {
		t.Errorf("RandomPairID = %d, want 899", sets.RandomPairID)
	}
}

func TestCategorySetsNoParaphrase(t *testing.T) {
	examples := []domain.Example{
		ex(5, "hold", true),
		ex(5, "hold", false),
	}
	_, err := CategorySets(examples, []int{0}, rand.New(rand.NewSource(1)), nil)
	var npe *domain.NoParaphraseError
	if !errors.As(err, &npe) {
		t.Fatalf("err = %v, want NoParaphraseError", err)
	}
	if npe.PairID != 5 {
		t.Errorf("PairID = %d, want 5", npe.PairID)
	}
}
