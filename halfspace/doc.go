// Package halfspace implements the Halfspace value type: a unit normal,
// an anchor point, and a detection tolerance defining one linear
// inequality of the face lattice.
//
// A Halfspace never talks to an LP solver directly; it is a pure,
// comparable description of a bounding hyperplane. Package searcher
// installs a Halfspace as a live equality constraint against a specific
// lpmodel.Model clone when it needs to pin a search direction onto it.
package halfspace
