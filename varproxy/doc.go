// Package varproxy adapts the face-lattice engine's signed, possibly
// unbounded decision variables onto whatever non-negative or boxed
// variables a concrete lpmodel.Model actually exposes.
//
// Some LP backends only accept non-negative variables; a logical signed
// variable x is then split into two non-negative variables (forward,
// reverse) with x = forward - reverse. Other backends accept a boxed
// variable directly. Proxy hides the distinction: callers read and write
// one logical primal/dual value and one [lb, ub] pair regardless of how
// many underlying lpmodel.Variable values back it.
package varproxy
