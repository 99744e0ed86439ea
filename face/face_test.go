package face_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fluxenvelope/fea/face"
	"github.com/fluxenvelope/fea/halfspace"
)

func square2D(t *testing.T) []*halfspace.Halfspace {
	t.Helper()
	top, err := halfspace.New(0, []float64{0, 1}, []float64{0, 1}, true, 1e-6, nil)
	require.NoError(t, err)
	bottom, err := halfspace.New(1, []float64{0, -1}, []float64{0, 0}, true, 1e-6, nil)
	require.NoError(t, err)
	left, err := halfspace.New(2, []float64{-1, 0}, []float64{0, 0}, true, 1e-6, nil)
	require.NoError(t, err)
	right, err := halfspace.New(3, []float64{1, 0}, []float64{1, 0}, true, 1e-6, nil)
	require.NoError(t, err)
	return []*halfspace.Halfspace{top, bottom, left, right}
}

func TestLevelAndScore(t *testing.T) {
	hs := square2D(t)
	polytope, err := face.New(nil, 2, 1e-6)
	require.NoError(t, err)
	require.Equal(t, 2, polytope.Level())

	facet, err := face.New(hs[:1], 2, 1e-6)
	require.NoError(t, err)
	require.Equal(t, 1, facet.Level())

	vertex, err := face.New(hs[1:3], 2, 1e-6)
	require.NoError(t, err)
	require.Equal(t, 0, vertex.Level())
	require.Equal(t, 0, vertex.Score())
}

func TestVertexPoint(t *testing.T) {
	hs := square2D(t)
	vertex, err := face.New([]*halfspace.Halfspace{hs[1], hs[2]}, 2, 1e-6)
	require.NoError(t, err)
	point, err := vertex.Point()
	require.NoError(t, err)
	require.InDelta(t, 0, point[0], 1e-9)
	require.InDelta(t, 0, point[1], 1e-9)
}

func TestFacetHasVertex(t *testing.T) {
	hs := square2D(t)
	bottomLeft, err := face.New([]*halfspace.Halfspace{hs[1], hs[2]}, 2, 1e-6)
	require.NoError(t, err)
	bottom, err := face.New([]*halfspace.Halfspace{hs[1]}, 2, 1e-6)
	require.NoError(t, err)
	ok, err := bottom.FacetHasVertex(bottomLeft)
	require.NoError(t, err)
	require.True(t, ok)

	top, err := face.New([]*halfspace.Halfspace{hs[0]}, 2, 1e-6)
	require.NoError(t, err)
	ok, err = top.FacetHasVertex(bottomLeft)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSetOperations(t *testing.T) {
	hs := square2D(t)
	a, err := face.New(hs[:2], 2, 1e-6)
	require.NoError(t, err)
	b, err := face.New(hs[1:3], 2, 1e-6)
	require.NoError(t, err)

	inter, err := a.And(b)
	require.NoError(t, err)
	require.Equal(t, 1, inter.Len())

	union, err := a.Or(b)
	require.NoError(t, err)
	require.Equal(t, 3, union.Len())

	diff, err := a.Sub(b)
	require.NoError(t, err)
	require.Equal(t, 1, diff.Len())
}

func TestOrthogonalVectorAvoidsChildren(t *testing.T) {
	hs := square2D(t)
	polytope, err := face.New(nil, 2, 1e-6)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(42))
	v, err := polytope.OrthogonalVector([]*halfspace.Halfspace{hs[0]}, rng)
	require.NoError(t, err)
	require.Len(t, v, 2)
}

func TestIDAssignedOnce(t *testing.T) {
	polytope, err := face.New(nil, 2, 1e-6)
	require.NoError(t, err)
	require.Equal(t, -1, polytope.ID())
	polytope.SetID(5)
	polytope.SetID(9)
	require.Equal(t, 5, polytope.ID())
}

func TestCanonicalKeyIgnoresIDAssignmentOrder(t *testing.T) {
	// a's members are numbered so right (id 2) sorts before top (id 7);
	// d's geometrically identical members are numbered the other way
	// round, so Key (which concatenates in ID order) differs even though
	// the two faces describe the same region. CanonicalKey, which sorts
	// by each halfspace's own geometric Key instead, must agree.
	top7, err := halfspace.New(7, []float64{0, 1}, []float64{0, 1}, true, 1e-6, nil)
	require.NoError(t, err)
	right2, err := halfspace.New(2, []float64{1, 0}, []float64{1, 0}, true, 1e-6, nil)
	require.NoError(t, err)
	a, err := face.New([]*halfspace.Halfspace{top7, right2}, 2, 1e-6)
	require.NoError(t, err)

	top3, err := halfspace.New(3, []float64{0, 1}, []float64{0, 1}, true, 1e-6, nil)
	require.NoError(t, err)
	right50, err := halfspace.New(50, []float64{1, 0}, []float64{1, 0}, true, 1e-6, nil)
	require.NoError(t, err)
	d, err := face.New([]*halfspace.Halfspace{top3, right50}, 2, 1e-6)
	require.NoError(t, err)

	require.NotEqual(t, a.Key(), d.Key(), "Key concatenates in ID order, so swapping ID order changes it")
	require.Equal(t, a.CanonicalKey(), d.CanonicalKey(), "CanonicalKey is keyed on geometry, not ID assignment order")
}
