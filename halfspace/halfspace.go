package halfspace

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Halfspace is one linear inequality norm.(x-point) >= 0, represented
// by a normal unit vector, an anchor point, and a detection tolerance.
// It is immutable after construction, grounded on
// original_source/fea/Halfspace.py.
//
// Unlike the Python original, the identifier is supplied by the caller
// (LatticeGraph owns one counter per graph instance) rather than drawn
// from a package-level itertools.count() generator, so that two
// independently constructed LatticeGraph values never collide on id.
type Halfspace struct {
	id       int
	norm     []float64
	point    []float64
	rhs      float64
	eps      float64
	dec      int
	real     bool
	required []*Halfspace
}

// New builds a Halfspace from a normal vector and an anchor point. norm
// is normalized to unit length; rhs is derived as dot(norm, point).
func New(id int, norm, point []float64, real bool, eps float64, required []*Halfspace) (*Halfspace, error) {
	if len(norm) != len(point) {
		return nil, fmt.Errorf("halfspace: %w: norm=%d point=%d", ErrDimensionMismatch, len(norm), len(point))
	}
	length := math.Sqrt(floats.Dot(norm, norm))
	if length == 0 {
		return nil, ErrZeroNormal
	}
	unit := make([]float64, len(norm))
	copy(unit, norm)
	floats.Scale(1/length, unit)

	pt := make([]float64, len(point))
	copy(pt, point)

	h := &Halfspace{
		id:       id,
		norm:     unit,
		point:    pt,
		rhs:      floats.Dot(unit, pt),
		real:     real,
		required: required,
	}
	h.setEps(eps)
	return h, nil
}

func (h *Halfspace) setEps(eps float64) {
	h.eps = math.Min(eps, 1)
	h.dec = int(math.Max(0, -math.Log10(h.eps)))
}

// ID returns the graph-scoped identifier assigned at construction.
func (h *Halfspace) ID() int { return h.id }

// Norm returns the unit normal vector. Callers must not mutate the
// returned slice.
func (h *Halfspace) Norm() []float64 { return h.norm }

// Point returns the anchoring point. Callers must not mutate the
// returned slice.
func (h *Halfspace) Point() []float64 { return h.point }

// RHS returns dot(Norm(), Point()).
func (h *Halfspace) RHS() float64 { return h.rhs }

// Eps returns the detection tolerance.
func (h *Halfspace) Eps() float64 { return h.eps }

// Dec returns the decimal rounding precision implied by Eps, used when
// building the dedup Key.
func (h *Halfspace) Dec() int { return h.dec }

// Real reports whether this is a solver-derived bounding hyperplane
// (true) or a pseudo-halfspace inserted to unstick a degenerate search
// (false).
func (h *Halfspace) Real() bool { return h.real }

// Required lists the halfspaces that must already be active for this one
// to be meaningful; only non-empty for pseudo-halfspaces.
func (h *Halfspace) Required() []*Halfspace { return h.required }

// Distance returns dot(Norm(), point-Point()): positive on the side the
// normal points toward, zero on the hyperplane.
func (h *Halfspace) Distance(point []float64) float64 {
	diff := make([]float64, len(point))
	for i := range point {
		diff[i] = point[i] - h.point[i]
	}
	return floats.Dot(h.norm, diff)
}

// Contains reports whether point lies on this halfspace's hyperplane
// within tolerance eps (Eps() if eps < 0).
func (h *Halfspace) Contains(point []float64, eps float64) bool {
	if eps < 0 {
		eps = h.eps
	}
	return math.Abs(h.Distance(point)) <= eps
}

// Key is a rounded, hashable representation of this halfspace: real flag
// followed by norm and rhs rounded to Dec() places. Two halfspaces with
// equal Key are considered identical for dedup purposes.
func (h *Halfspace) Key() string {
	var b strings.Builder
	if h.real {
		b.WriteByte('1')
	} else {
		b.WriteByte('0')
	}
	scale := math.Pow(10, float64(h.dec))
	for _, n := range h.norm {
		fmt.Fprintf(&b, ",%g", math.Round(n*scale)/scale)
	}
	fmt.Fprintf(&b, ",%g", math.Round(h.rhs*scale)/scale)
	return b.String()
}

// Name is a constraint-safe identifier derived from Key, used to install
// this halfspace as a named constraint in an lpmodel.Model.
func (h *Halfspace) Name() string {
	return strings.ReplaceAll(h.Key(), " ", "")
}

// String renders a short debug trace line, grounded on
// original_source/fea/Halfspace.py's __str__/__repr__.
func (h *Halfspace) String() string {
	var terms []string
	scale := math.Pow(10, float64(h.dec))
	round := func(v float64) float64 { return math.Round(v*scale) / scale }
	for i := range h.norm {
		terms = append(terms, fmt.Sprintf("%g*(v%d-%g)", round(h.norm[i]), i, round(h.point[i])))
	}
	marker := ""
	if !h.real {
		marker = "PSEUDO"
	}
	return fmt.Sprintf("Facet(%d): %s>%s=0+%g", h.id, strings.Join(terms, "+"), marker, round(h.eps))
}

// Len is the dimensionality this halfspace lives in.
func (h *Halfspace) Len() int { return len(h.norm) }
