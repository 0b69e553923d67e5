package dag

import (
	"errors"
	"sync"

	"github.com/specialistvlad/recoseq/internal/inputtag"
	"github.com/specialistvlad/recoseq/internal/unit"
	"gonum.org/v1/gonum/graph/simple"
)

var (
	// ErrCycle is returned when units depend on each other circularly.
	ErrCycle = errors.New("cycle detected")
	// ErrUnknownProduct is returned when a unit consumes a product instance
	// that the named member unit does not put.
	ErrUnknownProduct = errors.New("consumed product is not produced")
	// ErrUnknownUnit is returned for operations on names that are not in the graph.
	ErrUnknownUnit = errors.New("unit not found")
)

// Graph is a directed acyclic graph of units. An edge from A to B means B
// consumes a product of A. All operations are concurrency-safe.
type Graph struct {
	mutex sync.RWMutex
	g     *simple.DirectedGraph
	// ids maps unit names to gonum node IDs.
	ids map[string]int64
	// units is indexed by gonum node ID.
	units []*unit.Unit
	// external holds consumed tags whose module is not a member.
	external map[inputtag.Tag]struct{}
}
