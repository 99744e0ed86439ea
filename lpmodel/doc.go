// Package lpmodel declares the narrow interface the face-lattice engine
// requires from an LP solver.
//
// Nothing in this package solves an LP. It is the plug-in boundary: any
// backend that can clone a model, add/remove named linear constraints,
// set an objective, optimize, and report primal/dual values after a solve
// can drive the engine in package lattice. The package ships no adapter of
// its own; see package simplex for a concrete, dependency-light
// implementation used by this repository's own tests.
package lpmodel
