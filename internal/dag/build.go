package dag

import (
	"context"
	"fmt"

	"github.com/specialistvlad/recoseq/internal/ctxlog"
	"github.com/specialistvlad/recoseq/internal/unit"
)

// Build constructs a validated dependency graph over the given units.
func Build(ctx context.Context, units []*unit.Unit) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting graph construction.", "unit_count", len(units))
	g := New()

	// First pass: create all nodes.
	for _, u := range units {
		if err := g.AddUnit(u); err != nil {
			return nil, err
		}
	}

	// Second pass: link consumers to producers.
	for _, consumer := range units {
		for _, tag := range consumer.Consumes() {
			producer, ok := g.Unit(tag.Module)
			if !ok {
				logger.Debug("Recording external input.", "unit", consumer.Name(), "tag", tag.String())
				g.mutex.Lock()
				g.external[tag] = struct{}{}
				g.mutex.Unlock()
				continue
			}
			if !producer.ProducesInstance(tag.Instance) {
				return nil, fmt.Errorf("unit %q consumes %q: %w", consumer.Name(), tag.String(), ErrUnknownProduct)
			}
			logger.Debug("Linking data dependency.", "from", producer.Name(), "to", consumer.Name(), "tag", tag.String())
			if err := g.AddEdge(producer.Name(), consumer.Name()); err != nil {
				return nil, err
			}
		}
	}

	if err := g.DetectCycles(); err != nil {
		return nil, fmt.Errorf("error validating dependency graph: %w", err)
	}
	logger.Debug("Build: Graph construction successful.")
	return g, nil
}
