package lattice

import (
	"github.com/fluxenvelope/fea/face"
	"github.com/fluxenvelope/fea/halfspace"
)

// Solve drives the frontier until it empties, max_iter successful
// searches have run, or (unless exhaust is set) the graph reports
// complete while the frontier's best candidate is no longer a real open
// edge, grounded on LatticeGraph.solve.
func (g *LatticeGraph) Solve() (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	// Leave no search constraint installed in the working model between
	// Solve calls, so ToLPModel clones the problem itself.
	defer func() {
		if err := g.searcher.Deactivate(); err != nil {
			g.log.Warn("lattice: could not remove search constraints", "err", err)
		}
	}()

	ind := 0
	for !g.frontier.Empty() && ind < g.maxIter {
		top := g.frontier.Peek()
		keepGoing := g.exhaust || (top.Level() == g.EdgeLevel() && top.Real()) || !g.completeLocked()
		if !keepGoing {
			break
		}

		ok, err := g.search(top)
		if err != nil {
			return ind, err
		}
		if ok {
			ind++
		} else {
			g.frontier.Discard(top)
		}
	}

	g.iterations += ind
	return ind, nil
}

// search expands one face of the frontier: it derives an objective
// direction orthogonal to the face's already-known bounding halfspaces,
// solves the LP in that direction, converts the result into a new
// bounding halfspace, and inserts the resulting child face, grounded on
// LatticeGraph.search. It returns false when the face is terminal (a
// vertex, or an edge already bounded by two real facets) or when no
// further progress could be made.
func (g *LatticeGraph) search(f *face.Face) (bool, error) {
	if f.Level() == g.VertexLevel() {
		return false, nil
	}
	if f.Level() == g.EdgeLevel() && len(g.successors(f, boolPtr(true))) >= 2 {
		return false, nil
	}

	known := make(map[*halfspace.Halfspace]struct{})
	for _, s := range g.successors(f, nil) {
		if s.Real() || g.edgeSearched(f, s) {
			for _, h := range s.Halfspaces() {
				known[h] = struct{}{}
			}
		} else {
			for _, h := range s.Halfspaces() {
				if h.Real() {
					known[h] = struct{}{}
				}
			}
		}
	}
	for _, h := range f.Halfspaces() {
		delete(known, h)
	}
	var knownList []*halfspace.Halfspace
	for h := range known {
		knownList = append(knownList, h)
	}

	obj, err := f.OrthogonalVector(knownList, g.rng)
	if err != nil {
		g.log.Debug("lattice: could not find orthogonal direction", "face", f.ID(), "err", err)
		return false, nil
	}

	trace := g.nextTrace()
	if err := g.searcher.Set(obj, f.Halfspaces()); err != nil {
		return false, err
	}
	optimal, err := g.searcher.GetSolution()
	if err != nil {
		return false, err
	}
	if !optimal {
		g.log.Error("lattice: solver did not reach optimal", "face", f.ID())
		return false, nil
	}

	h, err := g.searcher.BoundingHalfspace(g.nextHalfspaceID)
	if err != nil {
		return false, err
	}
	h = g.dedupHalfspace(h)

	members := append(append([]*halfspace.Halfspace(nil), f.Halfspaces()...), h)
	childFace, err := face.New(members, g.n, g.eps)
	if err != nil {
		return false, err
	}

	added, err := g.addNode(childFace, false)
	if err != nil {
		return false, err
	}

	g.markSearched(f, added, trace)
	return true, nil
}

// dedupHalfspace reuses an existing geometrically-equal halfspace (one
// already present as a single-member face in the graph) instead of
// inserting a fresh duplicate, matching search's `if facet in self`
// check.
func (g *LatticeGraph) dedupHalfspace(h *halfspace.Halfspace) *halfspace.Halfspace {
	candidate, err := face.New([]*halfspace.Halfspace{h}, g.n, g.eps)
	if err != nil {
		return h
	}
	if existing, ok := g.faceByKey[candidate.Key()]; ok && existing.Len() == 1 {
		return existing.Halfspaces()[0]
	}
	return h
}

func (g *LatticeGraph) edgeSearched(from, to *face.Face) bool {
	_, ok := g.searched[edgeKey{from, to}]
	return ok
}

func (g *LatticeGraph) markSearched(from, to *face.Face, trace int) {
	g.searched[edgeKey{from, to}] = trace
}
