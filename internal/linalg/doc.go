// Package linalg wraps the one numeric primitive the engine needs beyond
// what an lpmodel.Model already provides: solving a (possibly
// overdetermined) linear system for the point or direction a bounding
// hyperplane must pass through.
//
// It is the Go-native replacement for original_source/fea/util.py's
// lstsq helper, built on gonum's dense solvers instead of numpy.
package linalg
