// Package searcher drives one LP clone through a single bounded search:
// pin a set of already-known halfspaces tight, optimize along a
// direction, and read the shadow prices at the optimum back into a new
// bounding halfspace.
//
// A Searcher is deliberately separable from package lattice (which owns
// the frontier and the face graph) so that independent searches could be
// run concurrently against independent model clones, grounded on
// original_source/fea/Search.py's own separation from LatticeGraph.
package searcher
