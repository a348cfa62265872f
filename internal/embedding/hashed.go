package embedding

import (
	"context"
	"errors"
	"hash/fnv"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"idiomprobe/internal/domain"
	"idiomprobe/internal/vectormath"
)

// Hashed is a deterministic local provider: each token gets a stable
// pseudo-random base vector from its hash, mixed with an IDF-weighted average
// of the surrounding tokens so the same word embeds differently in different
// contexts. It exists so runs and tests work without a model server.
type Hashed struct {
	dimension int
	seed      int64
	mix       float64
	idf       map[string]float64
	prepared  bool
	encode    func(tokens []string) []int
}

// HashedConfig configures the local provider.
type HashedConfig struct {
	// Dimension of the produced vectors; defaults to 64.
	Dimension int
	// Seed stabilizes the per-token base vectors.
	Seed int64
	// Encode maps tokens to the dataset's vocabulary ids.
	Encode func(tokens []string) []int
}

// NewHashed creates an unprepared local provider.
func NewHashed(cfg HashedConfig) *Hashed {
	dim := cfg.Dimension
	if dim <= 0 {
		dim = 64
	}
	return &Hashed{
		dimension: dim,
		seed:      cfg.Seed,
		mix:       0.25,
		encode:    cfg.Encode,
	}
}

// Name returns the identifier of this provider implementation.
func (h *Hashed) Name() string { return "hashed" }

// Dimension returns the dimensionality of the produced embedding vectors.
func (h *Hashed) Dimension() int { return h.dimension }

// Prepare computes smoothed IDF weights over the corpus, so frequent tokens
// contribute less context than rare ones.
func (h *Hashed) Prepare(corpus [][]string) error {
	if len(corpus) == 0 {
		return errors.New("empty corpus for hashed provider prepare")
	}
	df := make(map[string]int)
	for _, sentence := range corpus {
		seen := make(map[string]struct{})
		for _, tok := range sentence {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	n := float64(len(corpus))
	h.idf = make(map[string]float64, len(df))
	for tok, count := range df {
		h.idf[tok] = math.Log((1+n)/(1+float64(count))) + 1
	}
	h.prepared = true
	return nil
}

// EmbedTokens produces the four-part embedding shape for the sentences.
func (h *Hashed) EmbedTokens(ctx context.Context, sentences [][]string) (*domain.EmbeddingSet, error) {
	if !h.prepared {
		return nil, &domain.EmbeddingSourceError{Source: h.Name(), Err: errors.New("provider not prepared")}
	}
	set := &domain.EmbeddingSet{
		TokenVectors:     make([][][]float64, len(sentences)),
		TokenIDs:         make([][]int, len(sentences)),
		AlignmentIndices: make([]int, len(sentences)),
		Pooled:           make([][]float64, len(sentences)),
	}
	for i, sentence := range sentences {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vectors := make([][]float64, len(sentence))
		ctxVec := h.contextVector(sentence)
		for j, tok := range sentence {
			vectors[j] = h.tokenVector(tok, ctxVec)
		}
		set.TokenVectors[i] = vectors
		if h.encode != nil {
			set.TokenIDs[i] = h.encode(sentence)
		} else {
			set.TokenIDs[i] = make([]int, len(sentence))
		}
		set.AlignmentIndices[i] = i
		set.Pooled[i] = vectormath.MeanPool(vectors)
	}
	return set, nil
}

// tokenVector mixes the token's base vector with the sentence context and
// re-normalizes.
func (h *Hashed) tokenVector(token string, context []float64) []float64 {
	out := h.baseVector(token)
	floats.AddScaled(out, h.mix, context)
	normalize(out)
	return out
}

// contextVector is the IDF-weighted mean of the base vectors of a sentence.
func (h *Hashed) contextVector(sentence []string) []float64 {
	out := make([]float64, h.dimension)
	total := 0.0
	for _, tok := range sentence {
		w := h.idf[tok]
		if w == 0 {
			w = 1
		}
		floats.AddScaled(out, w, h.baseVector(tok))
		total += w
	}
	if total > 0 {
		floats.Scale(1/total, out)
	}
	return out
}

// baseVector derives a stable unit vector from the token's hash and the
// provider seed.
func (h *Hashed) baseVector(token string) []float64 {
	hash := fnv.New64a()
	hash.Write([]byte(token))
	rng := rand.New(rand.NewSource(h.seed ^ int64(hash.Sum64())))
	out := make([]float64, h.dimension)
	for i := range out {
		out[i] = rng.Float64()*2 - 1
	}
	normalize(out)
	return out
}

func normalize(v []float64) {
	norm := floats.Norm(v, 2)
	if norm > 0 {
		floats.Scale(1/norm, v)
	}
}
