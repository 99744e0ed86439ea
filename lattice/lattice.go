package lattice

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/fluxenvelope/fea/face"
	"github.com/fluxenvelope/fea/halfspace"
	"github.com/fluxenvelope/fea/lpmodel"
	"github.com/fluxenvelope/fea/searcher"
	"github.com/fluxenvelope/fea/varproxy"
)

// nodeState is the per-face bookkeeping LatticeGraph.py stores as
// networkx node attributes ('complete', '_complete_children').
type nodeState struct {
	complete         bool
	completeChildren int
}

// LatticeGraph owns the directed face lattice of a cloned LP: the
// frontier priority queue, the f-vector, and the completeness
// bookkeeping. It drives a Searcher, integrates results, and maintains
// incidence edges and the global Euler-characteristic invariant.
//
// Grounded on original_source/fea/LatticeGraph.py; its mutex-guarded
// access pattern follows
// _examples/katalvlaran-lvlath/core/types.go's Graph, since LatticeGraph
// is documented (in the Scheduling model) to isolate its LP state for a
// future multi-Searcher parallelization.
type LatticeGraph struct {
	mu sync.RWMutex

	n        int
	eps      float64
	maxValue float64
	maxIter  int
	exhaust  bool
	log      *slog.Logger
	rng      *rand.Rand

	model    lpmodel.Model
	vars     []*varproxy.Proxy
	searcher *searcher.Searcher

	faceIDCounter int
	hsIDCounter   int
	traceCounter  int

	polytope *face.Face
	nodes    map[*face.Face]*nodeState
	children map[*face.Face]map[*face.Face]struct{}
	parents  map[*face.Face]map[*face.Face]struct{}
	searched map[edgeKey]int // trace at which an edge was marked "searched"
	faceByKey map[string]*face.Face

	fVector            []int
	minFVector         []int
	completeHalfspaces map[*halfspace.Halfspace]struct{}

	frontier *frontier

	iterations int
}

type edgeKey struct {
	from, to *face.Face
}

// New builds a LatticeGraph over model, wrapping each named variable in a
// VarProxy and clamping its bounds to the configured search box,
// grounded on LatticeGraph.__init__.
func New(model lpmodel.Model, variables []varproxy.Spec, opts ...Option) (*LatticeGraph, error) {
	if model == nil {
		return nil, ErrNilModel
	}
	if len(variables) == 0 {
		return nil, ErrNoVariables
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	clone := model.Clone()
	proxies := make([]*varproxy.Proxy, len(variables))
	for i, spec := range variables {
		p, err := newProxy(clone, spec, cfg.maxValue)
		if err != nil {
			return nil, fmt.Errorf("lattice: wrapping variable %d: %w", i, err)
		}
		proxies[i] = p
	}

	n := len(proxies)
	g := &LatticeGraph{
		n:                  n,
		eps:                cfg.eps,
		maxValue:           cfg.maxValue,
		maxIter:            cfg.maxIter,
		exhaust:            cfg.exhaust,
		log:                cfg.logger,
		rng:                cfg.rng,
		model:              clone,
		vars:               proxies,
		nodes:              make(map[*face.Face]*nodeState),
		children:           make(map[*face.Face]map[*face.Face]struct{}),
		parents:            make(map[*face.Face]map[*face.Face]struct{}),
		searched:           make(map[edgeKey]int),
		faceByKey:          make(map[string]*face.Face),
		fVector:            make([]int, n+1),
		minFVector:         minFVector(n),
		completeHalfspaces: make(map[*halfspace.Halfspace]struct{}),
		frontier:           newFrontier(),
	}
	g.searcher = searcher.New(clone, proxies, cfg.eps, cfg.rng, cfg.logger)

	root, err := face.New(nil, n, cfg.eps)
	if err != nil {
		return nil, fmt.Errorf("lattice: seeding polytope node: %w", err)
	}
	if _, err := g.addNode(root, false); err != nil {
		return nil, fmt.Errorf("lattice: seeding polytope node: %w", err)
	}
	g.polytope = root

	return g, nil
}

// newProxy resolves one variable Spec against the cloned model, matching
// LatticeGraph's VWrapper construction loop: an already-existing simple
// variable keeps its current bounds (clamped to the search box); a fresh
// or split variable starts from a wide default that is then clamped the
// same way.
func newProxy(clone lpmodel.Model, spec varproxy.Spec, maxValue float64) (*varproxy.Proxy, error) {
	lb, ub := -maxValue, maxValue
	if spec.ForwardName != "" && spec.ReverseName != "" {
		lb, ub = 0, maxValue
	} else if v, ok := clone.VariableByName(spec.Name); ok {
		l, u, err := clone.Bounds(v)
		if err != nil {
			return nil, err
		}
		lb, ub = l, u
	}

	p, err := varproxy.New(clone, spec, lb, ub)
	if err != nil {
		return nil, err
	}

	curLB, err := p.LB()
	if err != nil {
		return nil, err
	}
	curUB, err := p.UB()
	if err != nil {
		return nil, err
	}
	if curLB < -maxValue {
		curLB = -maxValue
	}
	if curUB > maxValue {
		curUB = maxValue
	}
	if err := p.SetBounds(curLB, curUB); err != nil {
		return nil, err
	}
	return p, nil
}

func (g *LatticeGraph) nextFaceID() int {
	g.faceIDCounter++
	return g.faceIDCounter
}

func (g *LatticeGraph) nextHalfspaceID() int {
	g.hsIDCounter++
	return g.hsIDCounter
}

func (g *LatticeGraph) nextTrace() int {
	t := g.traceCounter
	g.traceCounter++
	return t
}

// N is the reduced problem/graph dimension (the number of searched
// variables).
func (g *LatticeGraph) N() int { return g.n }

// PolytopeLevel, FacetLevel, EdgeLevel, VertexLevel name the four
// canonical levels of the lattice.
func (g *LatticeGraph) PolytopeLevel() int { return g.n }
func (g *LatticeGraph) FacetLevel() int    { return g.n - 1 }
func (g *LatticeGraph) EdgeLevel() int     { return 1 }
func (g *LatticeGraph) VertexLevel() int   { return 0 }

// FVector is the current f-vector, f[0]=vertex count ... f[N]=1 (the
// polytope itself), each counting only complete faces.
func (g *LatticeGraph) FVector() []int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.fVectorLocked()
}

func (g *LatticeGraph) fVectorLocked() []int {
	out := make([]int, g.n+1)
	copy(out, g.fVector)
	return out
}

// ModifiedEulerCharacteristic folds [1]+FVector() the way
// LatticeGraph.py's modified_euler_characteristic property does. A
// completed, enclosed polytope always evaluates to zero.
func (g *LatticeGraph) ModifiedEulerCharacteristic() int {
	return modifiedEulerCharacteristic(g.FVector())
}

// Complete reports whether every level has at least its minimum f-vector
// count and the modified Euler characteristic has reached zero.
func (g *LatticeGraph) Complete() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.completeLocked()
}

func (g *LatticeGraph) completeLocked() bool {
	fv := g.fVectorLocked()
	for i, min := range g.minFVector {
		if fv[i] < min {
			return false
		}
	}
	return modifiedEulerCharacteristic(fv) == 0
}

// Iterations is the number of successful search iterations performed so
// far across all Solve calls.
func (g *LatticeGraph) Iterations() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.iterations
}

// graphView adapts *LatticeGraph to face.Graph without colliding with the
// public no-argument Complete() reported above: a Face only ever calls
// back through this narrow view, attached in addNode.
type graphView struct{ g *LatticeGraph }

func (v graphView) Complete(f *face.Face) bool         { return v.g.faceComplete(f) }
func (v graphView) VertexPoints(f *face.Face) [][]float64 { return v.g.vertexPoints(f) }

func (g *LatticeGraph) faceComplete(f *face.Face) bool {
	st, ok := g.nodes[f]
	return ok && st.complete
}

// vertexPoints backs graphView.VertexPoints: every complete real vertex
// reachable by walking down the children adjacency from f.
func (g *LatticeGraph) vertexPoints(f *face.Face) [][]float64 {
	seen := make(map[*face.Face]bool)
	var out [][]float64
	var walk func(n *face.Face)
	walk = func(n *face.Face) {
		if seen[n] {
			return
		}
		seen[n] = true
		if n.Level() == g.VertexLevel() {
			if n.Real() && g.faceComplete(n) {
				if pt, err := n.Point(); err == nil {
					out = append(out, pt)
				}
			}
			return
		}
		for c := range g.children[n] {
			walk(c)
		}
	}
	walk(f)
	return out
}

func (g *LatticeGraph) vertices(real, complete *bool) []*face.Face {
	return g.nodesOfLevel(g.VertexLevel(), real, complete)
}

func (g *LatticeGraph) facets(real, complete *bool) []*face.Face {
	return g.nodesOfLevel(g.FacetLevel(), real, complete)
}

func (g *LatticeGraph) nodesOfLevel(level int, real, complete *bool) []*face.Face {
	var out []*face.Face
	for n, st := range g.nodes {
		if n.Level() != level {
			continue
		}
		if real != nil && n.Real() != *real {
			continue
		}
		if complete != nil && st.complete != *complete {
			continue
		}
		out = append(out, n)
	}
	return out
}

func boolPtr(b bool) *bool { return &b }

// successors returns f's children in the lattice, optionally filtered to
// real faces.
func (g *LatticeGraph) successors(f *face.Face, real *bool) []*face.Face {
	var out []*face.Face
	for c := range g.children[f] {
		if real == nil || c.Real() == *real {
			out = append(out, c)
		}
	}
	return out
}

// predecessors returns f's parents in the lattice, optionally filtered to
// real faces.
func (g *LatticeGraph) predecessors(f *face.Face, real *bool) []*face.Face {
	var out []*face.Face
	for p := range g.parents[f] {
		if real == nil || p.Real() == *real {
			out = append(out, p)
		}
	}
	return out
}

func (g *LatticeGraph) addEdge(from, to *face.Face) {
	if g.children[from] == nil {
		g.children[from] = make(map[*face.Face]struct{})
	}
	if g.parents[to] == nil {
		g.parents[to] = make(map[*face.Face]struct{})
	}
	if _, exists := g.children[from][to]; exists {
		return
	}
	g.children[from][to] = struct{}{}
	g.parents[to][from] = struct{}{}

	if g.faceComplete(to) {
		g.nodes[from].completeChildren++
		g.updateNodeCompleteness(from)
	}
}

// addNode inserts f into the lattice, reconciling incidence edges and the
// vertex/facet absorption rules, grounded on LatticeGraph.add_node.
func (g *LatticeGraph) addNode(f *face.Face, recurse bool) (*face.Face, error) {
	if f == nil {
		return nil, ErrInvalidFace
	}
	if _, exists := g.faceByKey[f.Key()]; exists {
		return nil, fmt.Errorf("lattice: %w: %s already present", ErrInvalidFace, f.Key())
	}
	if !f.ValidDomain() {
		return nil, fmt.Errorf("lattice: %w: invalid domain", ErrInvalidFace)
	}

	// Vertex-absorption rule: a new real vertex that also lies in other
	// known real facets absorbs them, and any existing vertex subsumed by
	// the extended face is removed in its favor.
	if f.Level() == g.VertexLevel() && f.Real() {
		var extra []*halfspace.Halfspace
		for _, fc := range g.facets(boolPtr(true), nil) {
			has, err := f.VertexHasFacet(fc)
			if err != nil {
				continue
			}
			if has {
				extra = append(extra, fc.Halfspaces()...)
			}
		}
		if len(extra) > 0 {
			extraFace, err := face.New(extra, g.n, g.eps)
			if err != nil {
				return nil, err
			}
			extended, err := f.Or(extraFace)
			if err != nil {
				return nil, err
			}
			g.log.Info("lattice: extending vertex with absorbed facets", "vertex", extended.Key())
			for _, v := range g.vertices(boolPtr(true), nil) {
				if isSubset(v, extended) {
					g.log.Info("lattice: removing subset vertex", "vertex", v.Key())
					g.removeNode(v)
				}
			}
			f = extended
		}
	}

	f.SetID(g.nextFaceID())
	f.Attach(graphView{g})
	g.log.Info("lattice: adding face", "id", f.ID(), "level", f.Level())

	g.nodes[f] = &nodeState{}
	g.faceByKey[f.Key()] = f
	if g.children[f] == nil {
		g.children[f] = make(map[*face.Face]struct{})
	}
	if g.parents[f] == nil {
		g.parents[f] = make(map[*face.Face]struct{})
	}

	if f.Level() > g.VertexLevel() {
		g.frontier.Add(f)
	}

	trace := g.nextTrace()

	if f.Level() < g.n {
		for _, subset := range combinations(f.Halfspaces(), g.n-f.Level()-1) {
			pnode, err := face.New(subset, g.n, g.eps)
			if err != nil {
				continue
			}
			if existing, ok := g.faceByKey[pnode.Key()]; ok {
				g.addEdge(existing, f)
				continue
			}
			if !pnode.ValidDomain() {
				continue
			}
			if added, err := g.addNode(pnode, true); err == nil {
				g.addEdge(added, f)
			}
		}
	}

	// Facet-absorption rule: any existing vertex lying on a newly added
	// real facet, but not yet containing it, is re-inserted with it added.
	if f.Level() == g.FacetLevel() && f.Real() {
		h := f.Halfspaces()[0]
		for _, v := range g.vertices(boolPtr(true), nil) {
			if v.Has(h) {
				continue
			}
			has, err := f.FacetHasVertex(v)
			if err != nil || !has {
				continue
			}
			g.log.Info("lattice: updating vertex to include facet", "vertex", v.Key(), "facet", f.ID())
			g.removeNode(v)
			merged, err := v.Or(f)
			if err != nil {
				continue
			}
			if _, err := g.addNode(merged, false); err != nil {
				g.log.Warn("lattice: failed to re-insert absorbed vertex", "err", err)
			}
		}
	}

	_ = trace
	if !recurse {
		g.updateGraphCompleteness()
		g.updateNodeCompleteness(f)
	}

	return f, nil
}

func isSubset(small, big *face.Face) bool {
	for _, h := range small.Halfspaces() {
		if !big.Has(h) {
			return false
		}
	}
	return true
}

// removeNode deletes f and every face that depends on it, decrementing
// the f-vector and re-propagating completeness to surviving real
// predecessors, grounded on LatticeGraph.remove_node.
func (g *LatticeGraph) removeNode(f *face.Face) {
	for _, c := range g.successors(f, nil) {
		g.removeNode(c)
	}

	st, ok := g.nodes[f]
	if !ok {
		return
	}

	wasComplete := st.complete
	var realParents []*face.Face
	if wasComplete {
		realParents = g.predecessors(f, boolPtr(true))
	}

	g.log.Info("lattice: removing face", "id", f.ID())
	delete(g.nodes, f)
	delete(g.faceByKey, f.Key())
	for c := range g.children[f] {
		delete(g.parents[c], f)
	}
	for p := range g.parents[f] {
		delete(g.children[p], f)
	}
	delete(g.children, f)
	delete(g.parents, f)
	g.frontier.Discard(f)
	f.Detach()

	if wasComplete {
		g.fVector[f.Level()]--
		for _, p := range realParents {
			pst := g.nodes[p]
			if pst == nil {
				continue
			}
			// REDESIGN FLAG: the Python original computes
			// min(0, completeChildren-1), which resets any
			// positive counter to 0 and drives a counter that is
			// already 0 or below further negative. This clamp is
			// a floor at zero instead, i.e.
			// max(0, completeChildren-1).
			next := pst.completeChildren - 1
			if next < 0 {
				next = 0
			}
			pst.completeChildren = next
			g.updateNodeCompleteness(p)
		}
	}
}
