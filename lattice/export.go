package lattice

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/fluxenvelope/fea/face"
	"github.com/fluxenvelope/fea/halfspace"
	"github.com/fluxenvelope/fea/lpmodel"
	"github.com/fluxenvelope/fea/varproxy"
)

// GetVertices returns every complete, real vertex face currently in the
// lattice, grounded on LatticeGraph.get_vertices.
func (g *LatticeGraph) GetVertices() []*face.Face {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.vertices(boolPtr(true), boolPtr(true))
}

// GetFacets returns every complete, real facet face currently in the
// lattice, grounded on LatticeGraph.get_facets.
func (g *LatticeGraph) GetFacets() []*face.Face {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.facets(boolPtr(true), boolPtr(true))
}

// FaceByKey resolves a face by its Face.Key(), the same canonical string
// used to dedup faces on insertion. Returns ErrFaceNotFound if no face
// with that key is currently in the graph (it may never have been
// discovered, or have since been absorbed/removed).
func (g *LatticeGraph) FaceByKey(key string) (*face.Face, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	f, ok := g.faceByKey[key]
	if !ok {
		return nil, fmt.Errorf("lattice: %w: %s", ErrFaceNotFound, key)
	}
	return f, nil
}

// ToLPModel exports the discovered envelope as a standalone lpmodel.Model:
// a clone of the original problem with one permanent >= constraint per
// complete halfspace (norm·x >= rhs), matching
// LatticeGraph.to_optlang_model's replace_variables=False path, which
// layers the found facets on top of the underlying model rather than
// rebuilding it from scratch.
func (g *LatticeGraph) ToLPModel() (lpmodel.Model, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := g.model.Clone()
	proxies := make([]*varproxy.Proxy, len(g.vars))
	for i, p := range g.vars {
		cp, err := p.CloneInto(out)
		if err != nil {
			return nil, fmt.Errorf("lattice: exporting model: %w", err)
		}
		proxies[i] = cp
	}

	halfspaces := make([]*halfspace.Halfspace, 0, len(g.completeHalfspaces))
	for h := range g.completeHalfspaces {
		halfspaces = append(halfspaces, h)
	}
	sort.Slice(halfspaces, func(i, j int) bool { return halfspaces[i].ID() < halfspaces[j].ID() })

	for _, h := range halfspaces {
		terms := make(map[lpmodel.Variable]float64)
		norm := h.Norm()
		for i, p := range proxies {
			for v, coeff := range p.Terms(norm[i]) {
				terms[v] += coeff
			}
		}
		if _, err := out.AddConstraint(h.Name(), terms, h.RHS(), math.Inf(1)); err != nil {
			return nil, fmt.Errorf("lattice: exporting facet %d: %w", h.ID(), err)
		}
	}

	return out, nil
}

// ExportText renders the lattice as the advisory text format: one
// subgraph block per level, one record line per face naming its id,
// level, score, and real/pseudo marker, and one line per incidence edge
// naming the trace at which it was searched (if any). This supersedes
// the graphviz-dependent plotting of original_source/fea/plot/graphviz.py,
// which this repository intentionally does not depend on.
func (g *LatticeGraph) ExportText() string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var b strings.Builder
	fmt.Fprintf(&b, "lattice N=%d eps=%g complete=%t euler=%d\n", g.n, g.eps, g.completeLocked(), modifiedEulerCharacteristic(g.fVectorLocked()))

	for level := g.n; level >= 0; level-- {
		nodes := g.nodesOfLevel(level, nil, nil)
		sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID() < nodes[j].ID() })
		fmt.Fprintf(&b, "subgraph level_%d {\n", level)
		for _, n := range nodes {
			marker := "pseudo"
			if n.Real() {
				marker = "real"
			}
			complete := "open"
			if g.faceComplete(n) {
				complete = "complete"
			}
			fmt.Fprintf(&b, "  face_%d [level=%d score=%d %s %s]\n", n.ID(), n.Level(), n.Score(), marker, complete)
		}
		b.WriteString("}\n")
	}

	for from, children := range g.children {
		for to := range children {
			if trace, ok := g.searched[edgeKey{from, to}]; ok {
				fmt.Fprintf(&b, "face_%d -> face_%d [searched=%d]\n", from.ID(), to.ID(), trace)
			} else {
				fmt.Fprintf(&b, "face_%d -> face_%d\n", from.ID(), to.ID())
			}
		}
	}

	return b.String()
}

// Snapshot is a read-only deep copy of the lattice's bookkeeping,
// excluding the live Searcher/LP clone (which the lpmodel interface
// contract does not make clonable into a value type): the f-vector, the
// count of complete halfspaces, and the current vertex/facet listings.
// Grounded on original_source/fea/LatticeGraph.py's test-harness use of
// copy.deepcopy to compare independently solved lattices.
type Snapshot struct {
	FVector            []int
	EulerCharacteristic int
	CompleteHalfspaces int
	Vertices           []*face.Face
	Facets             []*face.Face
}

// Snapshot captures the current lattice state for later comparison.
func (g *LatticeGraph) Snapshot() Snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()

	fv := g.fVectorLocked()
	return Snapshot{
		FVector:             fv,
		EulerCharacteristic: modifiedEulerCharacteristic(fv),
		CompleteHalfspaces:  len(g.completeHalfspaces),
		Vertices:            g.vertices(boolPtr(true), boolPtr(true)),
		Facets:              g.facets(boolPtr(true), boolPtr(true)),
	}
}
