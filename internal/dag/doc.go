// Package dag builds the data-dependency graph of a set of units.
//
// A unit depends on another when one of its declared inputs names a product
// of that unit. Inputs naming units outside the set are external inputs:
// they must be supplied by whatever feeds the event, not by a member. The
// graph is stored in a gonum simple.DirectedGraph and ordered with
// gonum's topo package.
package dag
