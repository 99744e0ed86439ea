package face

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fluxenvelope/fea/halfspace"
)

// Graph is the narrow callback a Face uses to resolve the vertex points
// contained in a non-vertex face, and whether it has been marked
// complete by its owning lattice. A Face attached to no Graph answers
// VertexPoints with nil and Complete with false, matching the Python
// original's behavior before a Node is inserted into a LatticeGraph.
type Graph interface {
	Complete(f *Face) bool
	VertexPoints(f *Face) [][]float64
}

// Face is an immutable set of halfspaces. Two Faces are equal iff they
// contain the same halfspace pointers.
type Face struct {
	members map[*halfspace.Halfspace]struct{}
	sorted  []*halfspace.Halfspace // canonical ascending-by-ID order

	n   int
	eps float64

	id    int
	idSet bool

	graph Graph

	realCount    int
	realCountSet bool
	levelSet     bool
	level        int
	scoreSet     bool
	score        int
}

// New builds a Face from a set of halfspaces. n and eps, if zero, are
// inferred from the halfspaces themselves (max halfspace dimension, max
// halfspace eps) exactly as Node.n/Node.eps do; an empty halfspace set
// with n==0 is an error since there is nothing to infer from.
func New(halfspaces []*halfspace.Halfspace, n int, eps float64) (*Face, error) {
	f := &Face{
		members: make(map[*halfspace.Halfspace]struct{}, len(halfspaces)),
	}
	seen := make(map[*halfspace.Halfspace]bool, len(halfspaces))
	for _, h := range halfspaces {
		if seen[h] {
			continue
		}
		seen[h] = true
		f.members[h] = struct{}{}
		f.sorted = append(f.sorted, h)
	}
	sort.Slice(f.sorted, func(i, j int) bool { return f.sorted[i].ID() < f.sorted[j].ID() })

	if n == 0 {
		for _, h := range f.sorted {
			if h.Len() > n {
				n = h.Len()
			}
		}
		if n == 0 {
			return nil, ErrEmptyFace
		}
	}
	f.n = n

	if eps == 0 {
		for _, h := range f.sorted {
			if h.Eps() > eps {
				eps = h.Eps()
			}
		}
	}
	f.eps = eps

	return f, nil
}

// Attach associates this Face with the graph that owns it, enabling
// VertexPoints/Complete to answer from live graph state.
func (f *Face) Attach(g Graph) { f.graph = g }

// Detach removes the graph association.
func (f *Face) Detach() { f.graph = nil }

// SetID assigns this face's graph-scoped identifier. It is a no-op if an
// id has already been assigned, mirroring the Python original's
// assign-once-on-first-access laziness without needing a getter callback.
func (f *Face) SetID(id int) {
	if !f.idSet {
		f.id = id
		f.idSet = true
	}
}

// ID returns the assigned identifier, or -1 if SetID has not been called.
func (f *Face) ID() int {
	if !f.idSet {
		return -1
	}
	return f.id
}

// N is the ambient dimension this face was constructed against.
func (f *Face) N() int { return f.n }

// Eps is this face's detection tolerance.
func (f *Face) Eps() float64 { return f.eps }

// Len is the number of halfspaces defining this face.
func (f *Face) Len() int { return len(f.sorted) }

// Halfspaces returns the face's halfspaces in canonical (ascending id)
// order. Callers must not mutate the returned slice.
func (f *Face) Halfspaces() []*halfspace.Halfspace { return f.sorted }

// Has reports whether h is a member of this face.
func (f *Face) Has(h *halfspace.Halfspace) bool {
	_, ok := f.members[h]
	return ok
}

// RealCount is the number of real (non-pseudo) halfspaces in this face.
func (f *Face) RealCount() int {
	if !f.realCountSet {
		count := 0
		for _, h := range f.sorted {
			if h.Real() {
				count++
			}
		}
		f.realCount = count
		f.realCountSet = true
	}
	return f.realCount
}

// Real reports whether every halfspace in this face is real.
func (f *Face) Real() bool { return f.RealCount() == f.Len() }

// Level is max(0, n - len(halfspaces)): the dimension of the face (0 for
// a vertex, n-1 for a facet, n for the polytope itself).
func (f *Face) Level() int {
	if !f.levelSet {
		level := f.n - f.Len()
		if level < 0 {
			level = 0
		}
		f.level = level
		f.levelSet = true
	}
	return f.level
}

// Score is realCount - (n - level): zero when every defining halfspace is
// real, one lower for each pseudo-halfspace. Used to prioritize the
// search frontier; higher is more promising.
func (f *Face) Score() int {
	if !f.scoreSet {
		f.score = f.RealCount() - (f.n - f.Level())
		f.scoreSet = true
	}
	return f.score
}

// SortKey orders faces for the search frontier: highest level first,
// then highest score, matching (level, -score) from the Python original
// (there, heaps pop the minimum; here callers compare with Less using
// this tuple directly).
func (f *Face) SortKey() (level int, negScore int) {
	return f.Level(), -f.Score()
}

// RequiredHalfspaces is the union of every member halfspace's own
// required-halfspace prerequisites.
func (f *Face) RequiredHalfspaces() map[*halfspace.Halfspace]struct{} {
	req := make(map[*halfspace.Halfspace]struct{})
	for _, h := range f.sorted {
		for _, r := range h.Required() {
			req[r] = struct{}{}
		}
	}
	return req
}

// ValidDomain reports whether every required halfspace of every member
// is itself already a member of this face.
func (f *Face) ValidDomain() bool {
	for r := range f.RequiredHalfspaces() {
		if !f.Has(r) {
			return false
		}
	}
	return true
}

// Complete reports whether the owning graph has marked this face
// complete. A detached face is never complete.
func (f *Face) Complete() bool {
	if f.graph == nil {
		return false
	}
	return f.graph.Complete(f)
}

// Key is a canonical string identifying this face by its members' own
// Key()s, suitable for map-based dedup of faces across independent
// construction.
func (f *Face) Key() string {
	var b strings.Builder
	for i, h := range f.sorted {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(h.Key())
	}
	return b.String()
}

// CanonicalKey is a Key variant ordered by each halfspace's own geometric
// Key() rather than by its graph-assigned ID, so two faces built from the
// same halfspaces discovered in a different order (e.g. by two
// independent Solve runs, or after renumbering the search variables)
// compare equal. Supplements Key, which is cheaper but ID-order
// sensitive and so only safe to compare within a single LatticeGraph.
func (f *Face) CanonicalKey() string {
	keys := make([]string, len(f.sorted))
	for i, h := range f.sorted {
		keys[i] = h.Key()
	}
	sort.Strings(keys)
	return strings.Join(keys, "|")
}

// Equal reports whether f and other contain exactly the same halfspaces.
func (f *Face) Equal(other *Face) bool {
	if other == nil || len(f.members) != len(other.members) {
		return false
	}
	for h := range f.members {
		if !other.Has(h) {
			return false
		}
	}
	return true
}

func (f *Face) derive(members []*halfspace.Halfspace) (*Face, error) {
	return New(members, f.n, f.eps)
}

// And returns the intersection of f and other's halfspace sets.
func (f *Face) And(other *Face) (*Face, error) {
	var out []*halfspace.Halfspace
	for _, h := range f.sorted {
		if other.Has(h) {
			out = append(out, h)
		}
	}
	return f.derive(out)
}

// Or returns the union of f and other's halfspace sets.
func (f *Face) Or(other *Face) (*Face, error) {
	out := append([]*halfspace.Halfspace(nil), f.sorted...)
	for _, h := range other.sorted {
		if !f.Has(h) {
			out = append(out, h)
		}
	}
	return f.derive(out)
}

// Xor returns the symmetric difference of f and other's halfspace sets.
func (f *Face) Xor(other *Face) (*Face, error) {
	var out []*halfspace.Halfspace
	for _, h := range f.sorted {
		if !other.Has(h) {
			out = append(out, h)
		}
	}
	for _, h := range other.sorted {
		if !f.Has(h) {
			out = append(out, h)
		}
	}
	return f.derive(out)
}

// Sub returns f's halfspaces minus other's.
func (f *Face) Sub(other *Face) (*Face, error) {
	var out []*halfspace.Halfspace
	for _, h := range f.sorted {
		if !other.Has(h) {
			out = append(out, h)
		}
	}
	return f.derive(out)
}

func (f *Face) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Face(%d) {level=%d; score=%d}", f.ID(), f.Level(), f.Score())
	for _, h := range f.sorted {
		b.WriteString("\n\t")
		b.WriteString(h.String())
	}
	return b.String()
}
