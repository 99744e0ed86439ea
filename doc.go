// Package fea builds the face lattice of the feasible region a linear
// program describes: the vertices, edges, facets, and every face in
// between, discovered one bounding halfspace at a time by repeatedly
// solving the program over a shrinking frontier of open faces.
//
// # What is fea?
//
// A small, pluggable library that brings together:
//
//   - lpmodel  — the narrow solver interface every LP backend implements
//   - simplex  — a dense two-phase tableau lpmodel.Model, used as the
//     default backend and in every test
//   - varproxy — split (forward/reverse) or single signed logical
//     variables layered over an lpmodel.Model
//   - halfspace/face/searcher — the geometric primitives a lattice
//     search discovers and accumulates
//   - lattice  — the orchestrator: LatticeGraph ties the above together
//     into a frontier-driven search loop
//
// Under the hood, everything is organized under focused subpackages:
//
//	lpmodel/   — the solver-agnostic Model/Variable/Constraint contract
//	simplex/   — a self-contained dense simplex lpmodel.Model
//	varproxy/  — logical signed variables over split or single columns
//	halfspace/ — bounding hyperplane value objects
//	face/      — immutable halfspace-set faces with level/score/point
//	searcher/  — one LP-backed directional probe of the feasible region
//	lattice/   — the face-lattice graph and its search loop
//
// Analyze wires an lpmodel.Model and a set of named decision variables
// into a LatticeGraph and runs it to completion (or to its iteration
// budget), returning the graph for further inspection, export, or
// incremental continuation via lattice.Solve.
package fea
