package vectormath

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"idiomprobe/internal/domain"
)

// DistanceFunc computes a distance between two equal-length vectors.
type DistanceFunc func(a, b []float64) float64

// CosineDistance is 1 minus the cosine similarity of a and b. A zero-norm
// vector has no direction; its distance to anything is taken as 1.
func CosineDistance(a, b []float64) float64 {
	na := math.Sqrt(floats.Dot(a, a))
	nb := math.Sqrt(floats.Dot(b, b))
	if na == 0 || nb == 0 {
		return 1
	}
	return 1 - floats.Dot(a, b)/(na*nb)
}

// EuclideanDistance is the L2 distance between a and b.
func EuclideanDistance(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

// PairwiseAverage computes the mean of fn over embedding pairs.
//
// With setB non-nil every ordered pair of the Cartesian product setA x setB is
// scored (|a|*|b| terms). With setB nil the unordered pairs within setA are
// scored (n choose 2 terms, no self-pairs). When inverse is set each score is
// 1-fn(a,b), which turns a cosine distance into a cosine similarity.
//
// Returns domain.ErrNoPairs when there is nothing to average.
func PairwiseAverage(fn DistanceFunc, inverse bool, setA, setB [][]float64) (float64, error) {
	sum := 0.0
	count := 0
	if setB != nil {
		for _, a := range setA {
			for _, b := range setB {
				sum += score(fn, inverse, a, b)
				count++
			}
		}
	} else {
		for i := 0; i < len(setA); i++ {
			for j := i + 1; j < len(setA); j++ {
				sum += score(fn, inverse, setA[i], setA[j])
				count++
			}
		}
	}
	if count == 0 {
		return 0, domain.ErrNoPairs
	}
	return sum / float64(count), nil
}

func score(fn DistanceFunc, inverse bool, a, b []float64) float64 {
	if inverse {
		return 1 - fn(a, b)
	}
	return fn(a, b)
}

// Reducer collapses a sentence's token vectors into one vector.
type Reducer func(vectors [][]float64) []float64

// MeanPool is the default sentence reducer: the element-wise mean of the
// token vectors. Returns nil for an empty input.
func MeanPool(vectors [][]float64) []float64 {
	if len(vectors) == 0 {
		return nil
	}
	out := make([]float64, len(vectors[0]))
	for _, v := range vectors {
		floats.Add(out, v)
	}
	floats.Scale(1/float64(len(vectors)), out)
	return out
}
