package lattice

import "errors"

// Sentinel errors returned by package lattice.
var (
	// ErrNilModel indicates Analyze/New was called with a nil lpmodel.Model.
	ErrNilModel = errors.New("lattice: model is nil")

	// ErrNoVariables indicates Analyze/New was called with an empty
	// variable list; there is nothing to build a lattice over.
	ErrNoVariables = errors.New("lattice: no variables given")

	// ErrInvalidFace indicates a face was rejected for addition: it was
	// already present, its domain was invalid (a member halfspace's
	// prerequisite is missing), or one of its required halfspaces is
	// itself not a member.
	ErrInvalidFace = errors.New("lattice: invalid face for addition")

	// ErrFaceNotFound indicates an operation referenced a face that is not
	// currently in the graph.
	ErrFaceNotFound = errors.New("lattice: face not found")
)
