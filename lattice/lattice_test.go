package lattice_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fluxenvelope/fea/lattice"
	"github.com/fluxenvelope/fea/lpmodel"
	"github.com/fluxenvelope/fea/simplex"
	"github.com/fluxenvelope/fea/varproxy"
)

func boxModel(t *testing.T) *simplex.Model {
	t.Helper()
	return simplex.NewModel()
}

func newBoxGraph(t *testing.T, opts ...lattice.Option) *lattice.LatticeGraph {
	t.Helper()
	model := boxModel(t)
	vars := []varproxy.Spec{{Name: "x"}, {Name: "y"}}
	g, err := lattice.New(model, vars, append([]lattice.Option{lattice.WithMaxValue(10), lattice.WithSeed(1)}, opts...)...)
	require.NoError(t, err)
	return g
}

func TestNewRejectsNilModel(t *testing.T) {
	_, err := lattice.New(nil, []varproxy.Spec{{Name: "x"}})
	require.ErrorIs(t, err, lattice.ErrNilModel)
}

func TestNewRejectsEmptyVariables(t *testing.T) {
	_, err := lattice.New(boxModel(t), nil)
	require.ErrorIs(t, err, lattice.ErrNoVariables)
}

func TestNewSeedsPolytopeNode(t *testing.T) {
	g := newBoxGraph(t)
	require.Equal(t, 2, g.N())
	require.Equal(t, 2, g.PolytopeLevel())
	require.Equal(t, 1, g.FacetLevel())
	require.Equal(t, 1, g.EdgeLevel())
	require.Equal(t, 0, g.VertexLevel())
}

func TestSolveEnclosesBoxSquare(t *testing.T) {
	g := newBoxGraph(t)

	iterations, err := g.Solve()
	require.NoError(t, err)
	require.Greater(t, iterations, 0)

	require.True(t, g.Complete())
	require.Equal(t, 0, g.ModifiedEulerCharacteristic())

	fv := g.FVector()
	require.Len(t, fv, 3)
	require.Equal(t, 4, fv[0], "a 2D box has 4 vertices")
	require.Equal(t, 4, fv[1], "a 2D box has 4 edges")
	require.Equal(t, 1, fv[2], "the polytope itself")
}

func TestSolveIsIdempotentOnceComplete(t *testing.T) {
	g := newBoxGraph(t)
	_, err := g.Solve()
	require.NoError(t, err)
	require.True(t, g.Complete())

	before := g.FVector()
	more, err := g.Solve()
	require.NoError(t, err)
	require.Zero(t, more)
	require.Equal(t, before, g.FVector())
}

func TestSolveRespectsMaxIter(t *testing.T) {
	g := newBoxGraph(t, lattice.WithMaxIter(1))
	iterations, err := g.Solve()
	require.NoError(t, err)
	require.LessOrEqual(t, iterations, 1)
}

func TestGetVerticesAndFacetsPopulateAfterSolve(t *testing.T) {
	g := newBoxGraph(t)
	_, err := g.Solve()
	require.NoError(t, err)

	vertices := g.GetVertices()
	facets := g.GetFacets()
	require.Len(t, vertices, 4)
	require.Len(t, facets, 4)

	for _, v := range vertices {
		require.True(t, v.Real())
		require.Equal(t, g.VertexLevel(), v.Level())
	}
	for _, f := range facets {
		require.True(t, f.Real())
		require.Equal(t, g.FacetLevel(), f.Level())
	}
}

func TestToLPModelInstallsOneConstraintPerFacet(t *testing.T) {
	g := newBoxGraph(t)
	_, err := g.Solve()
	require.NoError(t, err)

	out, err := g.ToLPModel()
	require.NoError(t, err)
	require.NotNil(t, out)

	_, ok := out.VariableByName("x")
	require.True(t, ok)

	// Every complete facet's halfspace is already installed under its
	// Name, so adding another constraint with that name must collide.
	for _, f := range g.GetFacets() {
		_, err := out.AddConstraint(f.Halfspaces()[0].Name(), nil, 0, 0)
		require.ErrorIs(t, err, lpmodel.ErrDuplicateName, "facet %d has no exported constraint", f.ID())
	}
}

func TestSnapshotMatchesFVector(t *testing.T) {
	g := newBoxGraph(t)
	_, err := g.Solve()
	require.NoError(t, err)

	snap := g.Snapshot()
	require.Equal(t, g.FVector(), snap.FVector)
	require.Equal(t, 4, len(snap.Vertices))
	require.Equal(t, 4, len(snap.Facets))
	require.Equal(t, 0, snap.EulerCharacteristic)
}

func TestFaceByKeyResolvesKnownFacetAndRejectsUnknown(t *testing.T) {
	g := newBoxGraph(t)
	_, err := g.Solve()
	require.NoError(t, err)

	facets := g.GetFacets()
	require.NotEmpty(t, facets)

	found, err := g.FaceByKey(facets[0].Key())
	require.NoError(t, err)
	require.True(t, found.Equal(facets[0]))

	_, err = g.FaceByKey("not-a-real-key")
	require.ErrorIs(t, err, lattice.ErrFaceNotFound)
}

func TestExportTextMentionsEveryFacet(t *testing.T) {
	g := newBoxGraph(t)
	_, err := g.Solve()
	require.NoError(t, err)

	text := g.ExportText()
	require.Contains(t, text, "complete=true")
	for _, f := range g.GetFacets() {
		require.Contains(t, text, fmt.Sprintf("face_%d [", f.ID()))
	}
}
