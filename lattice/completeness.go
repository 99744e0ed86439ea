package lattice

import (
	"github.com/fluxenvelope/fea/face"
	"github.com/fluxenvelope/fea/halfspace"
)

// updateGraphCompleteness recomputes which real halfspaces have accrued
// enough complete vertices (and vice versa) via the same mutual-recursion
// fixed point as LatticeGraph._update_graph_completeness: a halfspace is
// complete once at least N distinct complete vertices carry it, and a
// vertex stays complete only while at least N of its own halfspaces are
// themselves complete. The two conditions are re-applied until neither
// set changes, then every touched vertex's node completeness is
// re-evaluated.
func (g *LatticeGraph) updateGraphCompleteness() {
	completeVertices := make(map[*face.Face]struct{})
	for _, v := range g.vertices(boolPtr(true), nil) {
		completeVertices[v] = struct{}{}
	}

	allHalfspaces := make(map[*halfspace.Halfspace]struct{})
	for _, fc := range g.facets(boolPtr(true), nil) {
		for _, h := range fc.Halfspaces() {
			allHalfspaces[h] = struct{}{}
		}
	}

	completeHalfspaces := make(map[*halfspace.Halfspace]struct{})
	for h := range allHalfspaces {
		if countVerticesCarrying(completeVertices, h) >= g.n {
			completeHalfspaces[h] = struct{}{}
		}
	}

	incompleteVertices := make(map[*face.Face]struct{})

	for {
		changed := false

		for v := range completeVertices {
			if countMembersIn(v, completeHalfspaces) < g.n {
				incompleteVertices[v] = struct{}{}
				changed = true
			}
		}
		for v := range incompleteVertices {
			delete(completeVertices, v)
		}

		for h := range completeHalfspaces {
			if countVerticesCarrying(completeVertices, h) < g.n {
				delete(completeHalfspaces, h)
				changed = true
			}
		}

		if !changed || len(completeHalfspaces) == 0 || len(completeVertices) == 0 {
			break
		}
	}

	g.completeHalfspaces = completeHalfspaces

	for v := range completeVertices {
		g.updateNodeCompleteness(v)
	}
	for v := range incompleteVertices {
		g.updateNodeCompleteness(v)
	}
}

func countVerticesCarrying(vertices map[*face.Face]struct{}, h *halfspace.Halfspace) int {
	count := 0
	for v := range vertices {
		if v.Has(h) {
			count++
		}
	}
	return count
}

func countMembersIn(f *face.Face, set map[*halfspace.Halfspace]struct{}) int {
	count := 0
	for _, h := range f.Halfspaces() {
		if _, ok := set[h]; ok {
			count++
		}
	}
	return count
}

// updateNodeCompleteness re-derives whether f is complete: real, carrying
// at least (N-level) already-complete halfspaces, and (for non-vertices)
// having accumulated more complete children than its own level. On a
// change it adjusts the f-vector and recurses into real predecessors,
// grounded on LatticeGraph._update_node_completeness.
func (g *LatticeGraph) updateNodeCompleteness(f *face.Face) {
	st, ok := g.nodes[f]
	if !ok {
		return
	}

	current := st.complete
	possible := f.Real() &&
		countMembersIn(f, g.completeHalfspaces) >= g.n-f.Level() &&
		(f.Level() == g.VertexLevel() || st.completeChildren > f.Level())

	if current == possible {
		return
	}

	st.complete = possible
	if possible {
		g.fVector[f.Level()]++
		for _, p := range g.predecessors(f, boolPtr(true)) {
			if pst, ok := g.nodes[p]; ok {
				pst.completeChildren++
				g.updateNodeCompleteness(p)
			}
		}
		return
	}

	g.fVector[f.Level()]--
	for _, p := range g.predecessors(f, boolPtr(true)) {
		pst, ok := g.nodes[p]
		if !ok {
			continue
		}
		// REDESIGN FLAG: see the matching note in removeNode — floor the
		// counter at zero (max(0, x-1)), not min(0, x-1).
		next := pst.completeChildren - 1
		if next < 0 {
			next = 0
		}
		pst.completeChildren = next
		g.updateNodeCompleteness(p)
	}
}
