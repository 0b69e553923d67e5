package executor

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/specialistvlad/recoseq/internal/ctxlog"
	"github.com/specialistvlad/recoseq/internal/eventstore"
	"github.com/specialistvlad/recoseq/internal/unit"
	"golang.org/x/sync/errgroup"
)

type result struct {
	unit *unit.Unit
	err  error
}

// runIteration executes every member once. A coordinator loop owns the
// dependency counters; workers only run handlers and report back.
func (e *Executor) runIteration(ctx context.Context, iteration int) (*eventstore.Event, error) {
	ctx = ctxlog.With(ctx, "iteration", iteration)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Iteration started.")

	ev := eventstore.New(iteration)
	for _, tag := range e.plan.External {
		v, err := e.opts.Source(ctx, iteration, tag)
		if err != nil {
			return ev, fmt.Errorf("iteration %d: external input %s: %w", iteration, tag, err)
		}
		if err := ev.Put(tag, v); err != nil {
			return ev, fmt.Errorf("iteration %d: %w", iteration, err)
		}
	}

	total := e.plan.Len()
	ready := make(chan *unit.Unit, total)
	done := make(chan result, total)
	depCount := make(map[string]int, total)
	dispatched := make(map[string]struct{}, total)

	for _, u := range e.plan.Order {
		n := len(e.plan.Dependencies(u.Name()))
		depCount[u.Name()] = n
		if n == 0 {
			ready <- u
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Workers)

	var failure error
	for remaining := total; remaining > 0 && failure == nil; {
		select {
		case u := <-ready:
			if _, twice := dispatched[u.Name()]; twice {
				panic(fmt.Sprintf("unit %q dispatched twice in iteration %d", u.Name(), iteration))
			}
			dispatched[u.Name()] = struct{}{}
			g.Go(func() error {
				err := e.runUnit(gctx, ev, u)
				done <- result{unit: u, err: err}
				return err
			})

		case r := <-done:
			remaining--
			if r.err != nil {
				failure = iterationFailure(ctx, ev, iteration, r)
				continue
			}
			for _, name := range e.plan.Dependents(r.unit.Name()) {
				depCount[name]--
				if depCount[name] == 0 {
					dependent, _ := e.plan.Unit(name)
					logger.Debug("Unlocking dependent unit.", "unit", name, "after", r.unit.Name())
					ready <- dependent
				}
			}
		}
	}

	// Units still running observe the cancelled context.
	_ = g.Wait()
	for _, u := range e.plan.Order {
		if ev.Status(u.Name()) == eventstore.Pending {
			ev.SetStatus(u.Name(), eventstore.Skipped)
		}
	}

	if failure != nil {
		logger.Error("Iteration aborted.", "error", failure)
		return ev, failure
	}
	logger.Debug("Iteration finished.")
	return ev, nil
}

// iterationFailure blames r's unit unless the run itself was cancelled and
// the unit was either never started or only reported the cancellation.
func iterationFailure(ctx context.Context, ev *eventstore.Event, iteration int, r result) error {
	if err := ctx.Err(); err != nil {
		if ev.Status(r.unit.Name()) == eventstore.Skipped || errors.Is(r.err, err) {
			return fmt.Errorf("iteration %d: %w", iteration, err)
		}
	}
	return &UnitError{Unit: r.unit.Name(), Iteration: iteration, Err: r.err}
}

// runUnit executes one unit's handler against a view of the event.
func (e *Executor) runUnit(ctx context.Context, ev *eventstore.Event, u *unit.Unit) (err error) {
	if err := ctx.Err(); err != nil {
		ev.SetStatus(u.Name(), eventstore.Skipped)
		return err
	}
	ctx = ctxlog.With(ctx, "unit", u.Name())
	logger := ctxlog.FromContext(ctx)

	b := e.bound[u.Name()]
	view := ev.ViewFor(u)
	ev.SetStatus(u.Name(), eventstore.Running)
	logger.Debug("Unit started.", "type", u.Type())

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Unit handler panicked.", "panic", r, "stack", string(debug.Stack()))
			err = fmt.Errorf("handler panicked: %v", r)
		}
		if err != nil {
			ev.SetError(u.Name(), err)
			return
		}
		ev.SetStatus(u.Name(), eventstore.Done)
		e.executions[u.Name()].Add(1)
		logger.Debug("Unit finished.")
	}()

	if err := b.handler.Fn(ctx, view, b.params); err != nil {
		return err
	}
	if missing := view.Unpublished(); len(missing) > 0 {
		return fmt.Errorf("missing instances %q: %w", missing, ErrProductMismatch)
	}
	return nil
}
