package face

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/fluxenvelope/fea/halfspace"
	"github.com/fluxenvelope/fea/internal/linalg"
)

// Point solves for this face's unique defining point. It is only valid
// for a vertex: level 0 and a non-negative score (every defining
// halfspace resolved, none pseudo-only-pending). For anything else,
// callers should use VertexPoints.
func (f *Face) Point() ([]float64, error) {
	if f.Level() > 0 || f.Score() < 0 {
		return nil, fmt.Errorf("face: %w", ErrNotVertex)
	}
	var a [][]float64
	var b []float64
	for _, h := range f.sorted {
		if !h.Real() {
			continue
		}
		a = append(a, h.Norm())
		b = append(b, h.RHS())
	}
	return linalg.Solve(a, b, f.eps)
}

// VertexPoints lists the points of every vertex face contained within
// this (non-vertex) face, resolved through the attached Graph. Returns
// nil if this face is not attached to a graph.
func (f *Face) VertexPoints() [][]float64 {
	if f.graph == nil {
		return nil
	}
	return f.graph.VertexPoints(f)
}

// FacetHasVertex reports whether the vertex `other` lies within this
// facet: every halfspace in f that is not also in other must contain
// other's point.
func (f *Face) FacetHasVertex(other *Face) (bool, error) {
	point, err := other.Point()
	if err != nil {
		return false, fmt.Errorf("face: %w: %v", ErrNotVertex, err)
	}
	diff, err := f.Sub(other)
	if err != nil {
		return false, err
	}
	for _, h := range diff.sorted {
		if !h.Contains(point, -1) {
			return false, nil
		}
	}
	return true, nil
}

// VertexHasFacet reports whether this vertex lies within the facet
// `other`: every halfspace in other that is not also in f must contain
// f's point.
func (f *Face) VertexHasFacet(other *Face) (bool, error) {
	point, err := f.Point()
	if err != nil {
		return false, fmt.Errorf("face: %w: %v", ErrNotVertex, err)
	}
	diff, err := other.Sub(f)
	if err != nil {
		return false, err
	}
	for _, h := range diff.sorted {
		if !h.Contains(point, -1) {
			return false, nil
		}
	}
	return true, nil
}

// RandomVector draws a uniformly random direction in n dimensions using
// rng (or the package default source if rng is nil), matching
// original_source/fea/Node.py's random_vector.
func (f *Face) RandomVector(rng *rand.Rand) []float64 {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	r := make([]float64, f.n)
	for i := range r {
		r[i] = rng.Float64() - 0.5
	}
	normalize(r)
	return r
}

// OrthogonalVector finds a direction orthogonal to every halfspace
// already defining this face, and non-zero toward up to n-len(f)
// "child" halfspaces the caller wants to avoid re-discovering. If
// children is empty a single random direction is used instead. It
// returns ErrNoOrthogonalDirection if the solved direction still points
// toward an excluded child that could not fit in the solve.
func (f *Face) OrthogonalVector(children []*halfspace.Halfspace, rng *rand.Rand) ([]float64, error) {
	var directions [][]float64
	if len(children) == 0 {
		directions = [][]float64{f.RandomVector(rng)}
	} else {
		for _, c := range children {
			directions = append(directions, c.Norm())
		}
	}

	nchild := len(directions)
	if room := f.n - f.Len(); room < nchild {
		nchild = room
	}

	var a [][]float64
	for _, h := range f.sorted {
		a = append(a, h.Norm())
	}
	b := make([]float64, 0, f.Len()+nchild)
	for range f.sorted {
		b = append(b, 0)
	}
	for i := 0; i < nchild; i++ {
		a = append(a, directions[i])
		b = append(b, 1)
	}

	r, err := linalg.Solve(a, b, f.eps)
	if err != nil {
		return nil, err
	}

	for _, c := range directions[nchild:] {
		if floats.Dot(c, r) < 0 {
			return nil, ErrNoOrthogonalDirection
		}
	}

	normalize(r)
	return r, nil
}

func normalize(v []float64) {
	length := math.Sqrt(floats.Dot(v, v))
	if length == 0 {
		return
	}
	floats.Scale(1/length, v)
}
