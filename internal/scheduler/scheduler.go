package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/specialistvlad/recoseq/internal/ctxlog"
	"github.com/specialistvlad/recoseq/internal/dag"
	"github.com/specialistvlad/recoseq/internal/inputtag"
	"github.com/specialistvlad/recoseq/internal/pipeline"
	"github.com/specialistvlad/recoseq/internal/registry"
	"github.com/specialistvlad/recoseq/internal/unit"
)

var (
	// ErrMissingCondition is returned when no ES producer provides a record a unit needs.
	ErrMissingCondition = errors.New("conditions record has no provider")
	// ErrUnknownSequence is returned by ScheduleByName for undefined sequences.
	ErrUnknownSequence = errors.New("unknown sequence")
)

// Plan is the execution plan of one sequence.
type Plan struct {
	// Sequence is the planned sequence.
	Sequence *pipeline.Sequence
	// Order is a topological order of every member unit.
	Order []*unit.Unit
	// Levels groups Order into waves of mutually independent units.
	Levels [][]*unit.Unit
	// External lists inputs consumed by members but produced outside the sequence.
	External []inputtag.Tag
	// Conditions maps every needed record to the names of its providers.
	Conditions map[string][]string

	graph *dag.Graph
}

// ScheduleByName looks up a sequence in ns and plans it.
func ScheduleByName(ctx context.Context, ns *registry.Namespace, name string) (*Plan, error) {
	seq, ok := ns.Sequence(name)
	if !ok {
		if kind, defined := ns.KindOf(name); defined {
			return nil, fmt.Errorf("%q is a %s, not a sequence: %w", name, kind, pipeline.ErrKindMismatch)
		}
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownSequence)
	}
	return Schedule(ctx, ns, seq)
}

// Schedule builds the plan for seq. Conditions are checked against the ES
// producers defined in ns.
func Schedule(ctx context.Context, ns *registry.Namespace, seq *pipeline.Sequence) (*Plan, error) {
	logger := ctxlog.FromContext(ctx).With("sequence", seq.Name())
	logger.Debug("Planning sequence.", "units", seq.Membership().Len())

	g, err := dag.Build(ctx, seq.Membership().Units())
	if err != nil {
		return nil, fmt.Errorf("sequence %q: %w", seq.Name(), err)
	}
	order, err := g.Order()
	if err != nil {
		return nil, fmt.Errorf("sequence %q: %w", seq.Name(), err)
	}
	levels, err := g.Levels()
	if err != nil {
		return nil, fmt.Errorf("sequence %q: %w", seq.Name(), err)
	}
	conditions, err := resolveConditions(ns, order)
	if err != nil {
		return nil, fmt.Errorf("sequence %q: %w", seq.Name(), err)
	}

	p := &Plan{
		Sequence:   seq,
		Order:      order,
		Levels:     levels,
		External:   g.External(),
		Conditions: conditions,
		graph:      g,
	}
	logger.Debug("Sequence planned.", "waves", len(levels), "external_inputs", len(p.External), "records", len(conditions))
	return p, nil
}

func resolveConditions(ns *registry.Namespace, units []*unit.Unit) (map[string][]string, error) {
	conditions := make(map[string][]string)
	var missing []string

	for _, u := range units {
		for _, record := range u.Conditions() {
			if _, done := conditions[record]; done {
				continue
			}
			providers := ns.ProvidersOf(record)
			if len(providers) == 0 {
				missing = append(missing, fmt.Sprintf("unit %q needs %q", u.Name(), record))
				continue
			}
			names := make([]string, len(providers))
			for i, p := range providers {
				names[i] = p.Name()
			}
			sort.Strings(names)
			conditions[record] = names
		}
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingCondition, strings.Join(missing, "; "))
	}
	return conditions, nil
}

// Dependencies returns the names of the members whose products the named unit consumes.
func (p *Plan) Dependencies(name string) []string {
	deps, _ := p.graph.Dependencies(name)
	return deps
}

// Dependents returns the names of the members that consume the named unit's products.
func (p *Plan) Dependents(name string) []string {
	deps, _ := p.graph.Dependents(name)
	return deps
}

// Unit returns the member unit with the given name.
func (p *Plan) Unit(name string) (*unit.Unit, bool) {
	return p.graph.Unit(name)
}

// Len returns the number of member units.
func (p *Plan) Len() int {
	return len(p.Order)
}

// IsExternal reports whether tag is fed from outside the sequence.
func (p *Plan) IsExternal(tag inputtag.Tag) bool {
	for _, ext := range p.External {
		if ext == tag {
			return true
		}
	}
	return false
}
