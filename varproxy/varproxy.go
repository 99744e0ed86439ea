package varproxy

import (
	"fmt"
	"math"

	"github.com/fluxenvelope/fea/lpmodel"
)

// coeff mirrors the Python wrapper's [1, -1] sign convention: a split
// proxy's logical value is forward - reverse.
var coeff = [2]float64{1, -1}

// Spec describes how one logical decision variable is represented inside
// an lpmodel.Model: either a single (possibly boxed) variable, or a pair
// of non-negative forward/reverse variables whose difference is the
// logical value.
type Spec struct {
	// Name is the underlying variable name for a simple (non-split) proxy.
	Name string
	// ForwardName and ReverseName name the two non-negative variables of a
	// split proxy. Both must be non-empty to select the split form.
	ForwardName string
	ReverseName string
}

// split reports whether the spec describes a forward/reverse pair.
func (s Spec) split() bool {
	return s.ForwardName != "" && s.ReverseName != ""
}

// Proxy is a logical signed variable backed by one or two lpmodel
// variables in a single model instance, grounded on
// original_source/fea/VWrapper.py.
type Proxy struct {
	model   lpmodel.Model
	complex bool
	vars    [2]lpmodel.Variable // vars[1] unused when !complex
}

// New resolves spec against model, creating the underlying variable(s) if
// they do not already exist with the given default bounds. A simple spec
// creates one variable bounded by [lb, ub] (an existing one keeps its own
// bounds); a split spec creates two variables pinned non-negative and
// applies [lb, ub] to them, matching the Python constructor's two code
// paths.
func New(model lpmodel.Model, spec Spec, lb, ub float64) (*Proxy, error) {
	if model == nil {
		return nil, fmt.Errorf("varproxy: %w", ErrNoUnderlyingVariable)
	}
	if spec.split() {
		fwd, err := resolveOrCreate(model, spec.ForwardName, 0, math.Inf(1))
		if err != nil {
			return nil, err
		}
		rev, err := resolveOrCreate(model, spec.ReverseName, 0, math.Inf(1))
		if err != nil {
			return nil, err
		}
		p := &Proxy{model: model, complex: true}
		p.vars[0], p.vars[1] = fwd, rev
		if err := p.SetBounds(lb, ub); err != nil {
			return nil, err
		}
		return p, nil
	}
	v, err := resolveOrCreate(model, spec.Name, lb, ub)
	if err != nil {
		return nil, err
	}
	p := &Proxy{model: model}
	p.vars[0] = v
	return p, nil
}

// CloneInto rebuilds p against a cloned model, resolving each underlying
// variable by name the way the Python constructor's
// `isinstance(var, VWrapper)` branch re-wraps a VWrapper against a new
// model.
func (p *Proxy) CloneInto(clone lpmodel.Model) (*Proxy, error) {
	q := &Proxy{model: clone, complex: p.complex}
	v0, ok := clone.VariableByName(p.vars[0].Name())
	if !ok {
		return nil, fmt.Errorf("varproxy: %w: %s", ErrNoUnderlyingVariable, p.vars[0].Name())
	}
	q.vars[0] = v0
	if p.complex {
		v1, ok := clone.VariableByName(p.vars[1].Name())
		if !ok {
			return nil, fmt.Errorf("varproxy: %w: %s", ErrNoUnderlyingVariable, p.vars[1].Name())
		}
		q.vars[1] = v1
	}
	return q, nil
}

func (p *Proxy) arity() int {
	if p.complex {
		return 2
	}
	return 1
}

// Name is the name of the proxy's primary (forward, for a split proxy)
// underlying variable.
func (p *Proxy) Name() string {
	return p.vars[0].Name()
}

func (p *Proxy) String() string {
	return p.Name()
}

// Terms returns the signed coefficient map this proxy contributes to a
// linear expression, suitable for lpmodel.Model.AddConstraint /
// SetObjective: {forward: +1} or {forward: +1, reverse: -1}.
func (p *Proxy) Terms(weight float64) map[lpmodel.Variable]float64 {
	terms := make(map[lpmodel.Variable]float64, p.arity())
	for i := 0; i < p.arity(); i++ {
		terms[p.vars[i]] = weight * coeff[i]
	}
	return terms
}

// Primal reads the logical value sum(coeff[i]*vars[i].primal).
func (p *Proxy) Primal() (float64, error) {
	var sum float64
	for i := 0; i < p.arity(); i++ {
		v, err := p.model.Primal(p.vars[i])
		if err != nil {
			return 0, err
		}
		sum += coeff[i] * v
	}
	return sum, nil
}

// Dual reads the logical reduced cost sum(coeff[i]*vars[i].dual).
func (p *Proxy) Dual() (float64, error) {
	var sum float64
	for i := 0; i < p.arity(); i++ {
		d, err := p.model.VariableDual(p.vars[i])
		if err != nil {
			return 0, err
		}
		sum += coeff[i] * d
	}
	return sum, nil
}

// UB reads the logical upper bound.
func (p *Proxy) UB() (float64, error) {
	_, ub0, err := p.model.Bounds(p.vars[0])
	if err != nil {
		return 0, err
	}
	if p.complex && ub0 == 0 {
		lb1, _, err := p.model.Bounds(p.vars[1])
		if err != nil {
			return 0, err
		}
		return -lb1, nil
	}
	return ub0, nil
}

// LB reads the logical lower bound.
func (p *Proxy) LB() (float64, error) {
	if p.complex {
		_, ub1, err := p.model.Bounds(p.vars[1])
		if err != nil {
			return 0, err
		}
		if ub1 == 0 {
			lb0, _, err := p.model.Bounds(p.vars[0])
			return lb0, err
		}
		return -ub1, nil
	}
	lb0, _, err := p.model.Bounds(p.vars[0])
	return lb0, err
}

// SetUB sets the logical upper bound, repinning the reverse variable for
// a split proxy exactly as VWrapper.ub's setter does.
func (p *Proxy) SetUB(val float64) error {
	if p.complex {
		if val < 0 {
			if err := setUB(p.model, p.vars[0], 0); err != nil {
				return err
			}
			return setLB(p.model, p.vars[1], -val)
		}
		if err := setUB(p.model, p.vars[0], val); err != nil {
			return err
		}
		return setLB(p.model, p.vars[1], 0)
	}
	return setUB(p.model, p.vars[0], val)
}

// SetLB sets the logical lower bound, repinning the reverse variable for
// a split proxy exactly as VWrapper.lb's setter does.
func (p *Proxy) SetLB(val float64) error {
	if p.complex {
		if val > 0 {
			if err := setUB(p.model, p.vars[1], 0); err != nil {
				return err
			}
			return setLB(p.model, p.vars[0], val)
		}
		if err := setUB(p.model, p.vars[1], -val); err != nil {
			return err
		}
		return setLB(p.model, p.vars[0], 0)
	}
	return setLB(p.model, p.vars[0], val)
}

// SetBounds sets both bounds. For a split proxy the two setters must run
// in an order that never produces a transient lb > ub on either
// underlying variable.
func (p *Proxy) SetBounds(lb, ub float64) error {
	if lb > ub {
		return fmt.Errorf("varproxy: %w: lb=%g ub=%g", ErrInvalidBounds, lb, ub)
	}
	curLB, err := p.LB()
	if err != nil {
		return err
	}
	if ub < curLB {
		// Moving the box below its current lower bound: lower lb first.
		if err := p.SetLB(lb); err != nil {
			return err
		}
		return p.SetUB(ub)
	}
	if err := p.SetUB(ub); err != nil {
		return err
	}
	return p.SetLB(lb)
}

func resolveOrCreate(model lpmodel.Model, name string, lb, ub float64) (lpmodel.Variable, error) {
	if v, ok := model.VariableByName(name); ok {
		return v, nil
	}
	return model.AddVariable(name, lb, ub)
}

func setUB(model lpmodel.Model, v lpmodel.Variable, ub float64) error {
	lb, _, err := model.Bounds(v)
	if err != nil {
		return err
	}
	return model.SetBounds(v, lb, ub)
}

func setLB(model lpmodel.Model, v lpmodel.Variable, lb float64) error {
	_, ub, err := model.Bounds(v)
	if err != nil {
		return err
	}
	return model.SetBounds(v, lb, ub)
}

