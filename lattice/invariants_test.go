package lattice

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fluxenvelope/fea/face"
	"github.com/fluxenvelope/fea/halfspace"
	"github.com/fluxenvelope/fea/simplex"
	"github.com/fluxenvelope/fea/varproxy"
)

// This file is a white-box (package lattice) companion to lattice_test.go:
// the four invariants it checks (halfspace dedup, pseudo containment,
// edge saturation, incidence symmetry) reach into g.nodes/g.children,
// which no exported accessor walks directly.

func invariantsBoxGraph(t *testing.T) *LatticeGraph {
	t.Helper()
	model := simplex.NewModel()
	_, err := model.AddVariable("x", -10, 10)
	require.NoError(t, err)
	_, err = model.AddVariable("y", -10, 10)
	require.NoError(t, err)

	g, err := New(model, []varproxy.Spec{{Name: "x"}, {Name: "y"}}, WithMaxValue(10), WithSeed(13))
	require.NoError(t, err)
	_, err = g.Solve()
	require.NoError(t, err)
	require.True(t, g.completeLocked())
	return g
}

// allHalfspaces collects every distinct halfspace referenced by any face
// currently in the graph.
func allHalfspaces(g *LatticeGraph) map[*halfspace.Halfspace]struct{} {
	out := make(map[*halfspace.Halfspace]struct{})
	for n := range g.nodes {
		for _, h := range n.Halfspaces() {
			out[h] = struct{}{}
		}
	}
	return out
}

// TestInvariantHalfspaceDedup is spec invariant 4: no two Halfspaces in
// the graph share the same rounded Key.
func TestInvariantHalfspaceDedup(t *testing.T) {
	g := invariantsBoxGraph(t)

	seen := make(map[string]*halfspace.Halfspace)
	for h := range allHalfspaces(g) {
		if other, ok := seen[h.Key()]; ok && other != h {
			t.Fatalf("halfspaces %d and %d share key %q", other.ID(), h.ID(), h.Key())
		}
		seen[h.Key()] = h
	}
	require.NotEmpty(t, seen)
}

// TestInvariantPseudoContainment is spec invariant 5: every pseudo-
// halfspace present in the graph has every halfspace in its Required set
// also present. A solved box never needs a pseudo-halfspace of its own
// (the box is non-degenerate), so this constructs one directly against an
// already-solved graph's real facet, the same relationship
// searcher.PseudoHalfspace and addNode establish when a degenerate LP
// forces one in.
func TestInvariantPseudoContainment(t *testing.T) {
	g := invariantsBoxGraph(t)

	facets := g.facets(boolPtr(true), nil)
	require.NotEmpty(t, facets)
	required := facets[0].Halfspaces()[0]

	pseudo, err := halfspace.New(g.nextHalfspaceID(), []float64{1, 1}, []float64{0, 0}, false, g.eps, []*halfspace.Halfspace{required})
	require.NoError(t, err)
	child, err := face.New([]*halfspace.Halfspace{required, pseudo}, g.n, g.eps)
	require.NoError(t, err)
	_, err = g.addNode(child, false)
	require.NoError(t, err)

	present := allHalfspaces(g)
	for h := range present {
		if h.Real() {
			continue
		}
		for _, r := range h.Required() {
			_, ok := present[r]
			require.True(t, ok, "pseudo-halfspace %d requires %d, which is not present in the graph", h.ID(), r.ID())
		}
	}
}

// TestInvariantEdgeSaturation is spec invariant 7: every complete edge
// (level-1 face) has exactly 2 incident complete vertices.
func TestInvariantEdgeSaturation(t *testing.T) {
	g := invariantsBoxGraph(t)

	for n, st := range g.nodes {
		if n.Level() != g.EdgeLevel() || !n.Real() || !st.complete {
			continue
		}
		completeVertices := 0
		for c := range g.children[n] {
			if c.Level() == g.VertexLevel() && g.faceComplete(c) {
				completeVertices++
			}
		}
		require.Equal(t, 2, completeVertices, "complete edge %d must have exactly 2 complete incident vertices", n.ID())
	}
}

// TestInvariantIncidenceSymmetry is spec invariant 8: A -> B in the graph
// iff A's halfspace set is a proper subset of B's. Every direct edge is
// checked against the subset relation, and (since the lattice only ever
// links faces one halfspace apart) every pair of faces whose halfspace
// sets differ by exactly one element is checked to have a direct edge.
func TestInvariantIncidenceSymmetry(t *testing.T) {
	g := invariantsBoxGraph(t)

	for from, children := range g.children {
		for to := range children {
			require.True(t, isSubset(from, to), "edge %d -> %d but %d is not a halfspace subset of %d", from.ID(), to.ID(), from.ID(), to.ID())
			require.Less(t, from.Len(), to.Len())
		}
	}

	all := make([]*face.Face, 0, len(g.nodes))
	for n := range g.nodes {
		all = append(all, n)
	}
	for _, a := range all {
		for _, b := range all {
			if a == b || b.Len() != a.Len()+1 {
				continue
			}
			if !isSubset(a, b) {
				continue
			}
			_, ok := g.children[a][b]
			require.True(t, ok, "expected a direct edge %d -> %d since %d's halfspaces are a proper subset of %d's", a.ID(), b.ID(), a.ID(), b.ID())
		}
	}
}
