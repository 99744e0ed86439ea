// Package simplex implements lpmodel.Model with a dense, rebuild-on-
// solve two-phase simplex: mutable named variables and constraints are
// converted to standard form (Ax=b, x>=0) and solved from scratch on
// every Optimize call.
//
// Its shape — named mutable variables/constraints, a two-phase
// artificial-variable solve, and the ErrInfeasible/ErrUnbounded error
// vocabulary — is grounded on
// _examples/other_examples/1681843c_thinkeridea-optimize__convex-lp-simplex.go,
// a gonum-backed standard-form simplex. The pivot mechanics here are a
// self-contained dense tableau rather than that file's revised-simplex
// basis replacement, since this package additionally needs live
// constraint activation/deactivation and per-constraint shadow prices
// that a static A·x=b solver does not expose.
package simplex
