package executor

import (
	"context"
	"fmt"

	"github.com/specialistvlad/recoseq/internal/ctxlog"
	"github.com/specialistvlad/recoseq/internal/handlers"
)

// boundUnit is a unit's handler together with its decoded params.
type boundUnit struct {
	handler *handlers.Handler
	params  any
}

// bind resolves the handler of every member and decodes its params once,
// before the first iteration.
func (e *Executor) bind(ctx context.Context) error {
	if e.bound != nil {
		return nil
	}
	logger := ctxlog.FromContext(ctx)
	bound := make(map[string]*boundUnit, e.plan.Len())

	for _, u := range e.plan.Order {
		h, err := e.handlers.Lookup(u.Type())
		if err != nil {
			return fmt.Errorf("unit %q: %w", u.Name(), err)
		}

		b := &boundUnit{handler: h}
		switch {
		case h.RawParams:
			b.params = u.Params()
		case h.NewParams != nil:
			b.params = h.NewParams()
			if err := e.opts.Decoder.DecodeParams(ctx, u.Params(), b.params); err != nil {
				return fmt.Errorf("unit %q: %w", u.Name(), err)
			}
		case len(u.ParamNames()) > 0:
			return fmt.Errorf("unit %q: type %q accepts no params, got %v", u.Name(), u.Type(), u.ParamNames())
		}

		logger.Debug("Bound unit to handler.", "unit", u.Name(), "type", u.Type())
		bound[u.Name()] = b
	}
	e.bound = bound
	return nil
}
