// Package face implements Face: an immutable set of halfspace.Halfspace
// pointers identifying one face of the polytope's face lattice (a
// vertex, an edge, ..., a facet, or the polytope itself).
//
// A Face behaves like Python's frozenset-backed Node in
// original_source/fea/Node.py: its level and score are derived
// quantities computed once and cached, its point is solved on each call
// to Point, and set algebra (And/Or/Xor/Sub)
// produces new, equally immutable Face values. Unlike the Python
// original, a Face's identifier is assigned by the owning LatticeGraph's
// own counter, not a package-level generator, matching the same
// instance-scoped-id redesign applied in package halfspace.
package face
