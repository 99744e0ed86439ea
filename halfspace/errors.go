package halfspace

import "errors"

// Sentinel errors returned by package halfspace.
var (
	// ErrDimensionMismatch indicates norm and point have different lengths.
	ErrDimensionMismatch = errors.New("halfspace: point and norm do not have the same dimensions")

	// ErrZeroNormal indicates a normal vector of zero length was supplied,
	// which cannot be normalized into a unit vector.
	ErrZeroNormal = errors.New("halfspace: normal vector has zero length")
)
