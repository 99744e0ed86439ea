package fea

import (
	"fmt"

	"github.com/fluxenvelope/fea/lattice"
	"github.com/fluxenvelope/fea/lpmodel"
	"github.com/fluxenvelope/fea/varproxy"
)

// Option configures a LatticeGraph at construction time; re-exported from
// package lattice so callers need only import this top-level package for
// the common case.
type Option = lattice.Option

var (
	WithMaxValue = lattice.WithMaxValue
	WithEpsilon  = lattice.WithEpsilon
	WithMaxIter  = lattice.WithMaxIter
	WithExhaust  = lattice.WithExhaust
	WithLogger   = lattice.WithLogger
	WithRand     = lattice.WithRand
	WithSeed     = lattice.WithSeed
)

// Analyze builds the face lattice of model's feasible region over the
// given variables and runs the search to completion (or to the
// configured iteration budget), grounded on original_source/fea's
// top-level `LatticeGraph(model, variables).solve()` usage pattern.
//
// The returned graph is never nil on a successful call, even if the
// iteration budget was exhausted before the lattice reported complete;
// callers can inspect graph.Complete() and call graph.Solve again to
// continue. An error is returned only for programmer-level misuse (a nil
// model or an empty variable list) or an unrecoverable failure in the
// underlying solver.
func Analyze(model lpmodel.Model, variables []varproxy.Spec, opts ...Option) (*lattice.LatticeGraph, error) {
	graph, err := lattice.New(model, variables, opts...)
	if err != nil {
		return nil, fmt.Errorf("fea: %w", err)
	}
	if _, err := graph.Solve(); err != nil {
		return graph, fmt.Errorf("fea: %w", err)
	}
	return graph, nil
}
