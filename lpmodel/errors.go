package lpmodel

import "errors"

// Sentinel errors returned by Model implementations.
var (
	// ErrVariableNotFound indicates a requested variable does not exist in the model.
	ErrVariableNotFound = errors.New("lpmodel: variable not found")

	// ErrConstraintNotFound indicates a requested constraint does not exist in the model.
	ErrConstraintNotFound = errors.New("lpmodel: constraint not found")

	// ErrDuplicateName indicates a variable or constraint name collides with an existing one.
	ErrDuplicateName = errors.New("lpmodel: duplicate name")

	// ErrNoSolution indicates primal/dual/objective readouts were requested before a
	// successful Optimize call.
	ErrNoSolution = errors.New("lpmodel: no solution available")
)
