package dag

import (
	"fmt"
	"sort"
	"strings"

	"github.com/specialistvlad/recoseq/internal/inputtag"
	"github.com/specialistvlad/recoseq/internal/unit"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		g:        simple.NewDirectedGraph(),
		ids:      make(map[string]int64),
		external: make(map[inputtag.Tag]struct{}),
	}
}

// AddUnit adds a unit as a node. Adding the same unit twice does nothing;
// adding a different unit under an existing name is an error.
func (g *Graph) AddUnit(u *unit.Unit) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if id, ok := g.ids[u.Name()]; ok {
		if g.units[id] != u {
			return fmt.Errorf("a different unit named %q is already in the graph", u.Name())
		}
		return nil
	}

	id := int64(len(g.units))
	g.g.AddNode(simple.Node(id))
	g.ids[u.Name()] = id
	g.units = append(g.units, u)
	return nil
}

// AddEdge creates a directed edge from the `fromName` unit to the `toName`
// unit, meaning `toName` depends on `fromName`.
func (g *Graph) AddEdge(fromName, toName string) error {
	if fromName == toName {
		return fmt.Errorf("self-referential edge not allowed: %s -> %s", fromName, fromName)
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()

	from, ok := g.ids[fromName]
	if !ok {
		return fmt.Errorf("source %q: %w", fromName, ErrUnknownUnit)
	}
	to, ok := g.ids[toName]
	if !ok {
		return fmt.Errorf("destination %q: %w", toName, ErrUnknownUnit)
	}

	g.g.SetEdge(g.g.NewEdge(simple.Node(from), simple.Node(to)))
	return nil
}

// Dependencies returns the sorted names of the units the given unit depends on.
func (g *Graph) Dependencies(name string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	id, ok := g.ids[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownUnit)
	}
	return g.namesOf(g.g.To(id)), nil
}

// Dependents returns the sorted names of the units that depend on the given unit.
func (g *Graph) Dependents(name string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	id, ok := g.ids[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownUnit)
	}
	return g.namesOf(g.g.From(id)), nil
}

// Unit returns the unit with the given name.
func (g *Graph) Unit(name string) (*unit.Unit, bool) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	id, ok := g.ids[name]
	if !ok {
		return nil, false
	}
	return g.units[id], true
}

// Len returns the number of units in the graph.
func (g *Graph) Len() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return len(g.units)
}

// External returns the sorted tags consumed from outside the graph.
func (g *Graph) External() []inputtag.Tag {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	tags := make([]inputtag.Tag, 0, len(g.external))
	for tag := range g.external {
		tags = append(tags, tag)
	}
	return inputtag.Sort(tags)
}

// DetectCycles returns an error wrapping ErrCycle if the graph is not acyclic.
func (g *Graph) DetectCycles() error {
	_, err := g.Order()
	return err
}

// Order returns the units in a topological order. Among units whose
// dependencies are equally satisfied, names sort lexically, so the order is
// deterministic.
func (g *Graph) Order() ([]*unit.Unit, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	sorted, err := topo.SortStabilized(g.g, g.byName)
	if err != nil {
		if cycles, ok := err.(topo.Unorderable); ok && len(cycles) > 0 {
			return nil, fmt.Errorf("%w involving units %s", ErrCycle, strings.Join(g.sortedNames(cycles[0]), ", "))
		}
		return nil, fmt.Errorf("%w: %v", ErrCycle, err)
	}

	units := make([]*unit.Unit, len(sorted))
	for i, n := range sorted {
		units[i] = g.units[n.ID()]
	}
	return units, nil
}

// Levels groups units into waves: every unit in wave i depends only on units
// in waves before i, so units of one wave may run concurrently.
func (g *Graph) Levels() ([][]*unit.Unit, error) {
	order, err := g.Order()
	if err != nil {
		return nil, err
	}

	g.mutex.RLock()
	defer g.mutex.RUnlock()

	depth := make(map[int64]int, len(order))
	var levels [][]*unit.Unit
	for _, u := range order {
		id := g.ids[u.Name()]
		d := 0
		preds := g.g.To(id)
		for preds.Next() {
			if pd := depth[preds.Node().ID()] + 1; pd > d {
				d = pd
			}
		}
		depth[id] = d
		if d == len(levels) {
			levels = append(levels, nil)
		}
		levels[d] = append(levels[d], u)
	}
	for _, level := range levels {
		sort.Slice(level, func(i, j int) bool { return level[i].Name() < level[j].Name() })
	}
	return levels, nil
}

// byName orders gonum nodes by unit name, in place.
func (g *Graph) byName(nodes []graph.Node) {
	sort.Slice(nodes, func(i, j int) bool {
		return g.units[nodes[i].ID()].Name() < g.units[nodes[j].ID()].Name()
	})
}

func (g *Graph) namesOf(it graph.Nodes) []string {
	return g.sortedNames(graph.NodesOf(it))
}

func (g *Graph) sortedNames(nodes []graph.Node) []string {
	names := make([]string, 0, len(nodes))
	for _, n := range nodes {
		names = append(names, g.units[n.ID()].Name())
	}
	sort.Strings(names)
	return names
}
