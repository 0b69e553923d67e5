package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/specialistvlad/recoseq/internal/inputtag"
	"github.com/specialistvlad/recoseq/internal/scheduler"
	"github.com/specialistvlad/recoseq/internal/unit"
)

// Plan loads the configuration, plans the configured sequence and prints
// its membership, waves, external inputs and conditions.
func (a *App) Plan(ctx context.Context) error {
	p, err := a.plan(ctx)
	if err != nil {
		return err
	}
	writePlan(a.outW, p)
	return nil
}

func (a *App) plan(ctx context.Context) (*scheduler.Plan, error) {
	if a.config.Sequence == "" {
		return nil, fmt.Errorf("no sequence selected")
	}
	ns, err := a.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	p, err := scheduler.ScheduleByName(a.withLogger(ctx), ns, a.config.Sequence)
	if err != nil {
		return nil, fmt.Errorf("failed to plan sequence: %w", err)
	}
	return p, nil
}

func writePlan(w io.Writer, p *scheduler.Plan) {
	fmt.Fprintf(w, "sequence %s: %d units in %d waves\n", p.Sequence.Name(), p.Len(), len(p.Levels))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, level := range p.Levels {
		for _, u := range level {
			fmt.Fprintf(tw, "  wave %d\t%s\t%s\t%s\n", i, u.Name(), u.Type(), describeInputs(u))
		}
	}
	tw.Flush()

	if len(p.External) > 0 {
		fmt.Fprintf(w, "external inputs: %s\n", joinTags(p.External))
	}
	for _, record := range sortedKeys(p.Conditions) {
		fmt.Fprintf(w, "conditions: %s <- %s\n", record, strings.Join(p.Conditions[record], ", "))
	}
}

func describeInputs(u *unit.Unit) string {
	consumes := u.Consumes()
	if len(consumes) == 0 {
		return "-"
	}
	return "<- " + joinTags(consumes)
}

func joinTags(tags []inputtag.Tag) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}
