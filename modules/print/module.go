// Package print provides a handler that writes the inputs of a unit to an
// io.Writer, one line per input tag.
package print

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/specialistvlad/recoseq/internal/eventstore"
	"github.com/specialistvlad/recoseq/internal/handlers"
	"github.com/specialistvlad/recoseq/internal/inputtag"
)

// TypeName is the unit type the print handler is registered under.
const TypeName = "Print"

// Params defines the arguments for the print handler.
type Params struct {
	Prefix string `cty:"prefix"`
}

// Module implements the handlers.Module interface for this package.
type Module struct {
	// Out receives the printed lines. Defaults to os.Stdout.
	Out io.Writer

	mu sync.Mutex
}

// OnRun prints every declared input and publishes the number of printed
// lines to each declared instance.
func (m *Module) OnRun(ctx context.Context, view *eventstore.View, params any) error {
	p := params.(*Params)
	inputs, err := view.Inputs()
	if err != nil {
		return err
	}

	tags := make([]inputtag.Tag, 0, len(inputs))
	for tag := range inputs {
		tags = append(tags, tag)
	}
	tags = inputtag.Sort(tags)

	out := m.Out
	if out == nil {
		out = os.Stdout
	}
	m.mu.Lock()
	for _, tag := range tags {
		fmt.Fprintf(out, "%s[%d] %s = %v\n", p.Prefix, view.Iteration(), tag, inputs[tag])
	}
	m.mu.Unlock()

	for _, tag := range view.Unit().Produces() {
		if err := view.Put(tag.Instance, len(tags)); err != nil {
			return err
		}
	}
	return nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *handlers.Handlers) {
	r.Register(TypeName, &handlers.Handler{
		NewParams: func() any { return &Params{} },
		Fn:        m.OnRun,
	})
}
