package linalg

import "errors"

// Sentinel errors returned by package linalg.
var (
	// ErrEmptySystem indicates Solve was called with zero equations.
	ErrEmptySystem = errors.New("linalg: empty system")

	// ErrSingular indicates the system could not be solved (singular
	// square matrix, or a rank-deficient least-squares system).
	ErrSingular = errors.New("linalg: singular system")

	// ErrInvalidResult indicates a least-squares solution exists but its
	// residual exceeds the caller's tolerance, mirroring util.py's lstsq
	// raising ValueError when the residual sum of squares is too large.
	ErrInvalidResult = errors.New("linalg: least-squares result exceeds tolerance")
)
