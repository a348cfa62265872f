// Package grouping partitions the flat example list into idiom groups and
// derives the per-group category index sets.
package grouping

import (
	"math/rand"
	"slices"
	"sort"

	"idiomprobe/internal/domain"
)

// SentinelPairIDs are the pair ids reserved for random-control sentences.
var SentinelPairIDs = []int{799, 899, 999}

// GroupIdiomExamples partitions the figurative examples by pair id. Each
// returned group is a list of indices into examples, all figurative and all
// sharing one pair id. Groups come back in ascending pair id order so runs are
// reproducible.
//
// A group is assumed to hold a single idiom word identity; the first member's
// word is taken as canonical and membership does not check it.
func GroupIdiomExamples(examples []domain.Example) [][]int {
	byPair := make(map[int][]int)
	for i, ex := range examples {
		if ex.Figurative {
			byPair[ex.PairID] = append(byPair[ex.PairID], i)
		}
	}
	ids := make([]int, 0, len(byPair))
	for id := range byPair {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	groups := make([][]int, 0, len(ids))
	for _, id := range ids {
		groups = append(groups, byPair[id])
	}
	return groups
}

// CategorySets derives the literal, paraphrase, and random-control index sets
// for one idiom group. An example counts as the same word only when its whole
// Word sequence matches the idiom word; a shared leading sub-token is not
// enough. If randomOverride is non-nil it is used as the random set verbatim;
// otherwise one sentinel pair id is drawn from SentinelPairIDs with rng and
// all examples under it are collected.
//
// Returns a NoParaphraseError when the group has no paraphrase examples, since
// the paraphrase word lookup needs at least one.
func CategorySets(examples []domain.Example, group []int, rng *rand.Rand, randomOverride []int) (domain.CategorySets, error) {
	first := examples[group[0]]
	pairID := first.PairID
	word := first.Word

	sets := domain.CategorySets{Figurative: group}
	for i, ex := range examples {
		if ex.PairID != pairID {
			continue
		}
		if slices.Equal(ex.Word, word) {
			if !ex.Figurative {
				sets.Literal = append(sets.Literal, i)
			}
		} else {
			sets.Paraphrase = append(sets.Paraphrase, i)
		}
	}
	if len(sets.Paraphrase) == 0 {
		return domain.CategorySets{}, &domain.NoParaphraseError{PairID: pairID, Word: firstToken(word)}
	}

	if randomOverride != nil {
		sets.Random = randomOverride
		if len(randomOverride) > 0 {
			sets.RandomPairID = examples[randomOverride[0]].PairID
		}
		return sets, nil
	}
	random, sentinel := RandomControl(examples, rng)
	sets.Random = random
	if len(random) > 0 {
		sets.RandomPairID = sentinel
	}
	return sets, nil
}

// RandomControl draws one sentinel pair id and returns the indices of all
// examples under it, plus the drawn id. The metric pass and the projection
// pass each make their own draw.
func RandomControl(examples []domain.Example, rng *rand.Rand) ([]int, int) {
	sentinel := SentinelPairIDs[rng.Intn(len(SentinelPairIDs))]
	var indices []int
	for i, ex := range examples {
		if ex.PairID == sentinel {
			indices = append(indices, i)
		}
	}
	return indices, sentinel
}

func firstToken(word []string) string {
	if len(word) == 0 {
		return ""
	}
	return word[0]
}
