// Package relay provides the stand-in handler for opaque unit types. A
// relay unit reads all of its declared inputs and publishes one Product per
// declared instance, so any configuration fragment can be dry-run without
// the real algorithms.
package relay

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/specialistvlad/recoseq/internal/ctxlog"
	"github.com/specialistvlad/recoseq/internal/eventstore"
	"github.com/specialistvlad/recoseq/internal/handlers"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// TypeName is the unit type the relay handler is registered under.
const TypeName = "Relay"

// Module implements the handlers.Module interface for this package.
type Module struct {
	// Fallback also installs the relay handler for every unregistered type.
	Fallback bool
}

// Product is the value a relay unit publishes.
type Product struct {
	Unit      string
	Instance  string
	Iteration int
	// Inputs counts the values read from upstream.
	Inputs int
}

func (p Product) String() string {
	name := p.Unit
	if p.Instance != "" {
		name += ":" + p.Instance
	}
	return fmt.Sprintf("%s#%d(%d inputs)", name, p.Iteration, p.Inputs)
}

// OnRun is the relay handler. Its only recognised param is "delay", a
// duration string used to simulate work; other params are ignored.
func OnRun(ctx context.Context, view *eventstore.View, params any) error {
	delay, err := delayParam(params)
	if err != nil {
		return err
	}
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	inputs, err := view.Inputs()
	if err != nil {
		return err
	}

	u := view.Unit()
	for _, tag := range u.Produces() {
		p := Product{Unit: u.Name(), Instance: tag.Instance, Iteration: view.Iteration(), Inputs: len(inputs)}
		if err := view.Put(tag.Instance, p); err != nil {
			return err
		}
	}
	ctxlog.FromContext(ctx).Debug("Relay published products.", "count", len(u.Produces()), "inputs", len(inputs))
	return nil
}

func delayParam(params any) (time.Duration, error) {
	raw, _ := params.(map[string]cty.Value)
	v, ok := raw["delay"]
	if !ok || v.IsNull() {
		return 0, nil
	}
	s, err := convert.Convert(v, cty.String)
	if err != nil {
		return 0, fmt.Errorf("param \"delay\": %w", err)
	}
	d, err := time.ParseDuration(strings.TrimSpace(s.AsString()))
	if err != nil {
		return 0, fmt.Errorf("param \"delay\": %w", err)
	}
	return d, nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *handlers.Handlers) {
	h := &handlers.Handler{RawParams: true, Fn: OnRun}
	r.Register(TypeName, h)
	if m.Fallback {
		r.SetFallback(h)
	}
}
