package simplex

import (
	"fmt"
	"math"

	"github.com/fluxenvelope/fea/lpmodel"
)

type variable struct {
	name   string
	lb, ub float64
}

func (v *variable) Name() string { return v.name }

type constraint struct {
	name  string
	terms map[*variable]float64
	lb    float64
	ub    float64
}

func (c *constraint) Name() string { return c.name }

// Model is a dense, rebuild-on-solve lpmodel.Model implementation.
type Model struct {
	vars     []*variable
	varIndex map[string]int

	cons     []*constraint
	conIndex map[string]int

	objTerms map[*variable]float64
	minimize bool

	solved   bool
	status   lpmodel.Status
	primal   map[*variable]float64
	varDual  map[*variable]float64
	conDual  map[*constraint]float64
	objValue float64
}

// NewModel returns an empty model, minimizing a zero objective.
func NewModel() *Model {
	return &Model{
		varIndex: make(map[string]int),
		conIndex: make(map[string]int),
		objTerms: make(map[*variable]float64),
		minimize: true,
	}
}

func (m *Model) asVariable(v lpmodel.Variable) (*variable, error) {
	vv, ok := v.(*variable)
	if !ok {
		return nil, ErrForeignVariable
	}
	if _, known := m.varIndex[vv.name]; !known {
		return nil, fmt.Errorf("simplex: %w", lpmodel.ErrVariableNotFound)
	}
	if m.vars[m.varIndex[vv.name]] != vv {
		return nil, ErrForeignVariable
	}
	return vv, nil
}

func (m *Model) asConstraint(c lpmodel.Constraint) (*constraint, error) {
	cc, ok := c.(*constraint)
	if !ok {
		return nil, ErrForeignVariable
	}
	idx, known := m.conIndex[cc.name]
	if !known || m.cons[idx] != cc {
		return nil, ErrForeignVariable
	}
	return cc, nil
}

// Clone returns an independent deep copy of the model, excluding solved
// state (matching Search.py's clone-before-search pattern).
func (m *Model) Clone() lpmodel.Model {
	clone := NewModel()
	clone.minimize = m.minimize

	remap := make(map[*variable]*variable, len(m.vars))
	for _, v := range m.vars {
		nv := &variable{name: v.name, lb: v.lb, ub: v.ub}
		remap[v] = nv
		clone.vars = append(clone.vars, nv)
		clone.varIndex[nv.name] = len(clone.vars) - 1
	}

	for _, c := range m.cons {
		nc := &constraint{name: c.name, lb: c.lb, ub: c.ub, terms: make(map[*variable]float64, len(c.terms))}
		for v, coeff := range c.terms {
			nc.terms[remap[v]] = coeff
		}
		clone.cons = append(clone.cons, nc)
		clone.conIndex[nc.name] = len(clone.cons) - 1
	}

	for v, coeff := range m.objTerms {
		clone.objTerms[remap[v]] = coeff
	}

	return clone
}

func (m *Model) Variables() []lpmodel.Variable {
	out := make([]lpmodel.Variable, len(m.vars))
	for i, v := range m.vars {
		out[i] = v
	}
	return out
}

func (m *Model) VariableByName(name string) (lpmodel.Variable, bool) {
	idx, ok := m.varIndex[name]
	if !ok {
		return nil, false
	}
	return m.vars[idx], true
}

func (m *Model) AddVariable(name string, lb, ub float64) (lpmodel.Variable, error) {
	if _, exists := m.varIndex[name]; exists {
		return nil, fmt.Errorf("simplex: %w: %s", lpmodel.ErrDuplicateName, name)
	}
	if math.IsInf(lb, -1) {
		return nil, ErrUnboundedBelow
	}
	if lb > ub {
		return nil, fmt.Errorf("simplex: invalid bounds for %s: lb=%g ub=%g", name, lb, ub)
	}
	v := &variable{name: name, lb: lb, ub: ub}
	m.vars = append(m.vars, v)
	m.varIndex[name] = len(m.vars) - 1
	m.solved = false
	return v, nil
}

func (m *Model) SetBounds(vi lpmodel.Variable, lb, ub float64) error {
	v, err := m.asVariable(vi)
	if err != nil {
		return err
	}
	if math.IsInf(lb, -1) {
		return ErrUnboundedBelow
	}
	if lb > ub {
		return fmt.Errorf("simplex: invalid bounds: lb=%g ub=%g", lb, ub)
	}
	v.lb, v.ub = lb, ub
	m.solved = false
	return nil
}

func (m *Model) Bounds(vi lpmodel.Variable) (float64, float64, error) {
	v, err := m.asVariable(vi)
	if err != nil {
		return 0, 0, err
	}
	return v.lb, v.ub, nil
}

func (m *Model) AddConstraint(name string, terms map[lpmodel.Variable]float64, lb, ub float64) (lpmodel.Constraint, error) {
	if _, exists := m.conIndex[name]; exists {
		return nil, fmt.Errorf("simplex: %w: %s", lpmodel.ErrDuplicateName, name)
	}
	if lb > ub {
		return nil, fmt.Errorf("simplex: invalid constraint bounds: lb=%g ub=%g", lb, ub)
	}
	resolved := make(map[*variable]float64, len(terms))
	for vi, coeff := range terms {
		v, err := m.asVariable(vi)
		if err != nil {
			return nil, err
		}
		resolved[v] += coeff
	}
	c := &constraint{name: name, terms: resolved, lb: lb, ub: ub}
	m.cons = append(m.cons, c)
	m.conIndex[name] = len(m.cons) - 1
	m.solved = false
	return c, nil
}

func (m *Model) RemoveConstraint(ci lpmodel.Constraint) error {
	c, err := m.asConstraint(ci)
	if err != nil {
		return err
	}
	idx := m.conIndex[c.name]
	m.cons = append(m.cons[:idx], m.cons[idx+1:]...)
	delete(m.conIndex, c.name)
	for i := idx; i < len(m.cons); i++ {
		m.conIndex[m.cons[i].name] = i
	}
	m.solved = false
	return nil
}

func (m *Model) SetConstraintBounds(ci lpmodel.Constraint, lb, ub float64) error {
	c, err := m.asConstraint(ci)
	if err != nil {
		return err
	}
	if lb > ub {
		return fmt.Errorf("simplex: invalid constraint bounds: lb=%g ub=%g", lb, ub)
	}
	c.lb, c.ub = lb, ub
	m.solved = false
	return nil
}

func (m *Model) ConstraintBounds(ci lpmodel.Constraint) (float64, float64, error) {
	c, err := m.asConstraint(ci)
	if err != nil {
		return 0, 0, err
	}
	return c.lb, c.ub, nil
}

func (m *Model) SetObjective(terms map[lpmodel.Variable]float64, minimize bool) error {
	resolved := make(map[*variable]float64, len(terms))
	for vi, coeff := range terms {
		v, err := m.asVariable(vi)
		if err != nil {
			return err
		}
		resolved[v] += coeff
	}
	m.objTerms = resolved
	m.minimize = minimize
	m.solved = false
	return nil
}

func (m *Model) Optimize() (lpmodel.Status, error) {
	status, err := solve(m)
	m.status = status
	m.solved = err == nil
	return status, err
}

func (m *Model) Primal(vi lpmodel.Variable) (float64, error) {
	v, err := m.asVariable(vi)
	if err != nil {
		return 0, err
	}
	if !m.solved {
		return 0, lpmodel.ErrNoSolution
	}
	return m.primal[v], nil
}

func (m *Model) VariableDual(vi lpmodel.Variable) (float64, error) {
	v, err := m.asVariable(vi)
	if err != nil {
		return 0, err
	}
	if !m.solved {
		return 0, lpmodel.ErrNoSolution
	}
	return m.varDual[v], nil
}

func (m *Model) ConstraintDual(ci lpmodel.Constraint) (float64, error) {
	c, err := m.asConstraint(ci)
	if err != nil {
		return 0, err
	}
	if !m.solved {
		return 0, lpmodel.ErrNoSolution
	}
	return m.conDual[c], nil
}

func (m *Model) ObjectiveValue() (float64, error) {
	if !m.solved {
		return 0, lpmodel.ErrNoSolution
	}
	return m.objValue, nil
}
