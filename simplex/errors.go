package simplex

import "errors"

// Sentinel errors returned by package simplex, named after the
// vocabulary of _examples/other_examples/...thinkeridea-optimize__convex-lp-simplex.go.
var (
	// ErrInfeasible indicates the model's constraints admit no point.
	ErrInfeasible = errors.New("simplex: problem is infeasible")

	// ErrUnbounded indicates the objective is unbounded over the
	// feasible region.
	ErrUnbounded = errors.New("simplex: problem is unbounded")

	// ErrUnboundedBelow indicates a variable was given a lower bound of
	// -Inf, which this dense standard-form solver cannot represent; every
	// variable must have a finite lower bound (0, in the common case of a
	// varproxy-split variable).
	ErrUnboundedBelow = errors.New("simplex: variable must have a finite lower bound")

	// ErrIterationLimit indicates the simplex loop did not converge
	// within its iteration cap, most likely due to cycling.
	ErrIterationLimit = errors.New("simplex: iteration limit reached")

	// ErrForeignVariable indicates a Variable or Constraint handle from a
	// different Model (or a different lpmodel.Model implementation
	// entirely) was passed to this Model.
	ErrForeignVariable = errors.New("simplex: variable or constraint belongs to a different model")
)
