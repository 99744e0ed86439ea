package varproxy

import "errors"

// Sentinel errors returned by package varproxy.
var (
	// ErrInvalidBounds indicates a requested [lb, ub] pair has lb > ub.
	ErrInvalidBounds = errors.New("varproxy: invalid bounds")

	// ErrSplitNegativeBound indicates a split (forward/reverse) proxy was
	// asked to represent a bound that cannot be expressed as the
	// difference of two non-negative variables pinned per Set/Spec rules.
	ErrSplitNegativeBound = errors.New("varproxy: split proxy cannot represent bound")

	// ErrNoUnderlyingVariable indicates a Spec named a variable that does
	// not exist (and could not be created) in the target model.
	ErrNoUnderlyingVariable = errors.New("varproxy: no underlying variable")
)
