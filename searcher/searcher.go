package searcher

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/fluxenvelope/fea/halfspace"
	"github.com/fluxenvelope/fea/internal/linalg"
	"github.com/fluxenvelope/fea/lpmodel"
	"github.com/fluxenvelope/fea/varproxy"
)

const (
	multiplier    = 10.0
	maxIterations = 10
)

// Searcher wraps one lpmodel.Model clone and the VarProxy-wrapped
// variables it searches over, grounded on
// original_source/fea/Search.py.
type Searcher struct {
	model lpmodel.Model
	vars  []*varproxy.Proxy
	eps   float64
	n     int
	rng   *rand.Rand
	log   *slog.Logger

	h     []*halfspace.Halfspace
	hCons []lpmodel.Constraint
	o     []float64
}

// New builds a Searcher around an already-cloned model and its
// VarProxy-wrapped variables.
func New(model lpmodel.Model, vars []*varproxy.Proxy, eps float64, rng *rand.Rand, logger *slog.Logger) *Searcher {
	if logger == nil {
		logger = slog.Default()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Searcher{
		model: model,
		vars:  vars,
		eps:   eps,
		n:     len(vars),
		rng:   rng,
		log:   logger,
	}
}

// Model returns the searcher's working model clone.
func (s *Searcher) Model() lpmodel.Model { return s.model }

func (s *Searcher) terms(vec []float64) map[lpmodel.Variable]float64 {
	out := make(map[lpmodel.Variable]float64)
	for i, p := range s.vars {
		for v, c := range p.Terms(vec[i]) {
			out[v] += c
		}
	}
	return out
}

// Deactivate removes the search's currently installed halfspace
// constraints from the model, matching Search.deactivate.
func (s *Searcher) Deactivate() error {
	for _, c := range s.hCons {
		if err := s.model.RemoveConstraint(c); err != nil {
			return err
		}
	}
	s.hCons = nil
	return nil
}

// Set installs hs as tight constraints (offset by eps from each
// halfspace's own RHS) and obj as the maximization objective, replacing
// any previously active search, matching Search.set + Search.activate.
func (s *Searcher) Set(obj []float64, hs []*halfspace.Halfspace) error {
	if len(s.hCons) > 0 {
		if err := s.Deactivate(); err != nil {
			return err
		}
	}

	s.h = append([]*halfspace.Halfspace(nil), hs...)
	s.hCons = make([]lpmodel.Constraint, len(s.h))
	for i, h := range s.h {
		rhs := h.RHS() + s.eps
		c, err := s.model.AddConstraint(h.Name(), s.terms(h.Norm()), rhs, rhs)
		if err != nil {
			return fmt.Errorf("searcher: installing halfspace %d: %w", h.ID(), err)
		}
		s.hCons[i] = c
	}

	length := 0.0
	for _, v := range obj {
		length += v * v
	}
	unit := append([]float64(nil), obj...)
	if length > 0 {
		floats.Scale(1/math.Sqrt(length), unit)
	}
	s.o = unit

	return s.model.SetObjective(s.terms(s.o), false)
}

// VP reads the current primal value of each searched variable.
func (s *Searcher) VP() ([]float64, error) {
	out := make([]float64, s.n)
	for i, p := range s.vars {
		v, err := p.Primal()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// VD reads the current dual value of each searched variable.
func (s *Searcher) VD() ([]float64, error) {
	out := make([]float64, s.n)
	for i, p := range s.vars {
		v, err := p.Dual()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Hd reads the shadow price of the i-th active halfspace constraint.
func (s *Searcher) Hd(i int) (float64, error) {
	if i < 0 || i >= len(s.hCons) {
		return 0, ErrHalfspaceIndex
	}
	return s.model.ConstraintDual(s.hCons[i])
}

// HdAll reads every active halfspace constraint's shadow price.
func (s *Searcher) HdAll() ([]float64, error) {
	out := make([]float64, len(s.hCons))
	for i := range s.hCons {
		v, err := s.Hd(i)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Heps reads how far the i-th active constraint's current RHS has
// drifted (via PerturbCons) from its halfspace's own RHS.
func (s *Searcher) Heps(i int) (float64, error) {
	if i < 0 || i >= len(s.hCons) {
		return 0, ErrHalfspaceIndex
	}
	_, ub, err := s.model.ConstraintBounds(s.hCons[i])
	if err != nil {
		return 0, err
	}
	return ub - s.h[i].RHS(), nil
}

// HepsAll reads Heps for every active constraint.
func (s *Searcher) HepsAll() ([]float64, error) {
	out := make([]float64, len(s.hCons))
	for i := range s.hCons {
		v, err := s.Heps(i)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// GetSolution optimizes the current search, retrying with a perturbed
// constraint up to maxIterations times when the solver does not report
// an optimal status, matching Search.get_solution's recursion (expressed
// as a loop rather than recursion, since Go has no default tail-call
// elimination to rely on for an unbounded retry depth).
func (s *Searcher) GetSolution() (bool, error) {
	for i := 0; i < maxIterations; i++ {
		status, err := s.model.Optimize()
		if err != nil {
			return false, err
		}
		if status == lpmodel.StatusOptimal {
			return true, nil
		}
		s.log.Debug("searcher: solver returned non-optimal status, perturbing", "status", status.String(), "attempt", i)
		if err := s.PerturbCons(-1); err != nil {
			// No active halfspace to perturb (e.g. the very first
			// search at the polytope root): there is nothing left
			// to try, so report "no solution" rather than erroring
			// the whole Solve call out from under an otherwise
			// recoverable empty feasible region.
			if errors.Is(err, ErrNoActiveSearch) {
				return false, nil
			}
			return false, err
		}
	}
	return false, nil
}

// PerturbCons randomly loosens one active constraint's RHS to nudge the
// solver off a degenerate point. index<0 selects a uniformly random
// constraint, matching Search.perturb_cons.
func (s *Searcher) PerturbCons(index int) error {
	if len(s.h) == 0 {
		return ErrNoActiveSearch
	}
	if index < 0 {
		index = s.rng.Intn(len(s.h))
	}
	high, err := s.Heps(index)
	if err != nil {
		return err
	}
	delta := s.rng.Float64() * high
	rhs := s.h[index].RHS() + delta
	s.log.Debug("searcher: perturbing constraint", "halfspace", s.h[index].ID(), "eps", delta)
	return s.model.SetConstraintBounds(s.hCons[index], rhs, rhs)
}

// BoundingHalfspace infers a new bounding halfspace from the current
// optimum's shadow prices via the sensitivity-analysis construction of
// Search.bounding_halfspace. nextID supplies the new halfspace's
// graph-scoped identifier.
func (s *Searcher) BoundingHalfspace(nextID func() int) (*halfspace.Halfspace, error) {
	vp, err := s.VP()
	if err != nil {
		return nil, err
	}

	a := [][]float64{s.o}
	b := []float64{-1}

	a1Base := make([][]float64, 0, len(s.h)+1)
	for _, h := range s.h {
		a1Base = append(a1Base, h.Norm())
	}
	a1Base = append(a1Base, s.o)

	objVal, err := s.model.ObjectiveValue()
	if err != nil {
		return nil, err
	}
	b1Base := make([]float64, 0, len(s.h)+1)
	for i := range s.h {
		_, ub, err := s.model.ConstraintBounds(s.hCons[i])
		if err != nil {
			return nil, err
		}
		b1Base = append(b1Base, ub)
	}
	b1Base = append(b1Base, objVal)

	if len(b1Base) < s.n-1 {
		s.log.Debug("searcher: insufficient equations for bounding halfspace")
		return s.PseudoHalfspace(nextID)
	}

	duals, err := s.HdAll()
	if err != nil {
		return nil, err
	}
	for i, hd := range duals {
		a1 := cloneMatrix(a1Base)
		b1 := append([]float64(nil), b1Base...)
		b1[i] += multiplier
		b1[len(b1)-1] += multiplier * hd

		newA, err := linalg.Solve(a1, b1, s.eps)
		if err != nil {
			s.log.Debug("searcher: lstsq error while scanning shadow prices", "halfspace", s.h[i].ID(), "err", err)
			continue
		}
		for j := range newA {
			newA[j] -= vp[j]
		}
		a = append(a, newA)
		b = append(b, 0)
	}

	if len(a) < s.n {
		s.log.Debug("searcher: insufficient duals for bounding halfspace")
		return s.PseudoHalfspace(nextID)
	}

	normal, err := linalg.Solve(a, b, s.eps)
	if err != nil {
		s.log.Warn("searcher: could not find bounding facet", "err", err)
		return s.PseudoHalfspace(nextID)
	}

	return halfspace.New(nextID(), normal, vp, true, s.eps, nil)
}

// PseudoHalfspace builds a degenerate placeholder halfspace opposing the
// current search direction, used when BoundingHalfspace cannot resolve a
// real one, matching Search.psuedo_halfspace.
func (s *Searcher) PseudoHalfspace(nextID func() int) (*halfspace.Halfspace, error) {
	vp, err := s.VP()
	if err != nil {
		return nil, err
	}
	negO := make([]float64, len(s.o))
	for i, v := range s.o {
		negO[i] = -v
	}
	required := append([]*halfspace.Halfspace(nil), s.h...)
	return halfspace.New(nextID(), negO, vp, false, s.eps, required)
}

func cloneMatrix(m [][]float64) [][]float64 {
	out := make([][]float64, len(m))
	for i, row := range m {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

