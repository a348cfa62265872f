// Package pca projects embedding sets to two principal components for the
// per-group scatter views. Rendering is left to external tooling; the output
// is the projected points with their category labels.
package pca

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Point is one projected embedding.
type Point struct {
	X, Y     float64
	Category string
}

// Project reduces the vectors to their first two principal components.
// categories[i] labels vectors[i] and is carried through to the points.
// At least two vectors of dimension two are required.
func Project(vectors [][]float64, categories []string) ([]Point, error) {
	if len(vectors) != len(categories) {
		return nil, fmt.Errorf("pca: %d vectors with %d labels", len(vectors), len(categories))
	}
	if len(vectors) < 2 {
		return nil, fmt.Errorf("pca: need at least 2 vectors, have %d", len(vectors))
	}
	dim := len(vectors[0])
	if dim < 2 {
		return nil, fmt.Errorf("pca: need dimension >= 2, have %d", dim)
	}
	m := mat.NewDense(len(vectors), dim, nil)
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("pca: vector %d has dimension %d, expected %d", i, len(v), dim)
		}
		m.SetRow(i, v)
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(m, nil); !ok {
		return nil, fmt.Errorf("pca: decomposition failed for %dx%d matrix", len(vectors), dim)
	}
	var vecs mat.Dense
	pc.VectorsTo(&vecs)

	var projected mat.Dense
	projected.Mul(m, vecs.Slice(0, dim, 0, 2))

	points := make([]Point, len(vectors))
	for i := range points {
		points[i] = Point{
			X:        projected.At(i, 0),
			Y:        projected.At(i, 1),
			Category: categories[i],
		}
	}
	return points, nil
}

// View is one named scatter view of a group. The category order doubles as
// the legend order.
type View struct {
	Filename string
	Title    string
	Points   []Point
}

// Labels builds the category list for a view from per-category counts, in the
// order the vector sets were concatenated.
func Labels(counts map[string]int, order []string) []string {
	var out []string
	for _, cat := range order {
		for i := 0; i < counts[cat]; i++ {
			out = append(out, cat)
		}
	}
	return out
}
