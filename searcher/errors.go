package searcher

import "errors"

// Sentinel errors returned by package searcher.
var (
	// ErrSolverUnoptimal indicates Optimize never reached an optimal
	// status within the configured retry budget, even after perturbing
	// the active constraints.
	ErrSolverUnoptimal = errors.New("searcher: solver did not reach an optimal status")

	// ErrNoActiveSearch indicates PerturbCons found no active halfspace
	// constraint to perturb (no Set call yet, or a Set with no halfspaces).
	ErrNoActiveSearch = errors.New("searcher: no active search set")

	// ErrHalfspaceIndex indicates an out-of-range halfspace index was
	// requested from Hd/Heps/PerturbCons.
	ErrHalfspaceIndex = errors.New("searcher: halfspace index out of range")
)
