package face

import "errors"

// Sentinel errors returned by package face.
var (
	// ErrNotVertex indicates an operation requiring a vertex (level 0,
	// non-negative score) was attempted on a higher-level face.
	ErrNotVertex = errors.New("face: not a vertex")

	// ErrNoOrthogonalDirection indicates OrthogonalVector could not find a
	// direction pointing away from every excluded child halfspace.
	ErrNoOrthogonalDirection = errors.New("face: no orthogonal direction avoiding children")

	// ErrEmptyFace indicates an operation required at least one halfspace
	// (or an explicit dimension) and got neither.
	ErrEmptyFace = errors.New("face: empty face has no inferable dimension")
)
