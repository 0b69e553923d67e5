package executor

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/specialistvlad/recoseq/internal/config"
	"github.com/specialistvlad/recoseq/internal/ctxlog"
	"github.com/specialistvlad/recoseq/internal/eventstore"
	"github.com/specialistvlad/recoseq/internal/handlers"
	"github.com/specialistvlad/recoseq/internal/hcl"
	"github.com/specialistvlad/recoseq/internal/journal"
	"github.com/specialistvlad/recoseq/internal/scheduler"
)

// ErrProductMismatch is returned when a handler returns without publishing
// every product its unit declares.
var ErrProductMismatch = errors.New("unit did not publish its declared products")

// UnitError reports the unit that aborted a run.
type UnitError struct {
	Unit      string
	Iteration int
	Err       error
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("iteration %d: unit %q failed: %v", e.Iteration, e.Unit, e.Err)
}

func (e *UnitError) Unwrap() error { return e.Err }

// Options tune an Executor. The zero value is usable.
type Options struct {
	// Workers bounds the number of units executing at once. Defaults to GOMAXPROCS.
	Workers int
	// Source seeds external inputs. Defaults to IterationIndex.
	Source Source
	// Journal receives one record per Run. Defaults to journal.Noop.
	Journal journal.Journal
	// Decoder binds unit params to handler params structs. Defaults to the HCL converter.
	Decoder config.ParamsDecoder
	// RunID identifies the run in logs and the journal. Generated when empty.
	RunID string
}

// Report summarises a Run.
type Report struct {
	RunID      string
	Sequence   string
	Iterations int
	Completed  int
	// Executions counts successful executions per unit.
	Executions map[string]int
	// Last is the event of the last iteration that was started.
	Last     *eventstore.Event
	Duration time.Duration
}

// Executor runs one plan.
type Executor struct {
	plan     *scheduler.Plan
	handlers *handlers.Handlers
	opts     Options

	bound      map[string]*boundUnit
	executions map[string]*atomic.Int64
}

// New creates an Executor for plan, resolving unit types through h.
func New(plan *scheduler.Plan, h *handlers.Handlers, opts Options) *Executor {
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.Source == nil {
		opts.Source = IterationIndex
	}
	if opts.Journal == nil {
		opts.Journal = journal.Noop{}
	}
	if opts.Decoder == nil {
		opts.Decoder = hcl.NewConverter()
	}
	if opts.RunID == "" {
		opts.RunID = journal.NewRunID()
	}

	executions := make(map[string]*atomic.Int64, plan.Len())
	for _, u := range plan.Order {
		executions[u.Name()] = new(atomic.Int64)
	}
	return &Executor{plan: plan, handlers: h, opts: opts, executions: executions}
}

// RunID returns the identifier of the executor's run.
func (e *Executor) RunID() string {
	return e.opts.RunID
}

// Run executes the plan for the given number of iterations and records the
// outcome in the journal.
func (e *Executor) Run(ctx context.Context, iterations int) (*Report, error) {
	if iterations < 1 {
		return nil, fmt.Errorf("iterations must be at least 1, got %d", iterations)
	}
	for _, n := range e.executions {
		n.Store(0)
	}
	ctx = ctxlog.With(ctx, "run_id", e.opts.RunID, "sequence", e.plan.Sequence.Name())
	logger := ctxlog.FromContext(ctx)
	logger.Info("Run started.", "units", e.plan.Len(), "iterations", iterations, "workers", e.opts.Workers)

	start := time.Now()
	report := &Report{
		RunID:      e.opts.RunID,
		Sequence:   e.plan.Sequence.Name(),
		Iterations: iterations,
	}
	rec := journal.Record{
		ID:         e.opts.RunID,
		Sequence:   e.plan.Sequence.Name(),
		Units:      e.plan.Len(),
		Iterations: iterations,
		StartedAt:  start.UTC(),
	}

	runErr := e.bind(ctx)
	for i := 0; runErr == nil && i < iterations; i++ {
		ev, err := e.runIteration(ctx, i)
		report.Last = ev
		if err != nil {
			runErr = err
			break
		}
		report.Completed++
	}

	report.Duration = time.Since(start)
	report.Executions = make(map[string]int, len(e.executions))
	for name, n := range e.executions {
		report.Executions[name] = int(n.Load())
	}

	rec.Completed = report.Completed
	rec.FinishedAt = rec.StartedAt.Add(report.Duration)
	if runErr != nil {
		rec.Error = runErr.Error()
		var unitErr *UnitError
		if errors.As(runErr, &unitErr) {
			rec.FailedUnit = unitErr.Unit
		}
	}
	if err := e.opts.Journal.Record(ctx, rec); err != nil {
		logger.Error("Failed to record run in journal.", "error", err)
		if runErr == nil {
			runErr = err
		}
	}

	if runErr != nil {
		logger.Error("Run failed.", "completed", report.Completed, "error", runErr)
		return report, runErr
	}
	logger.Info("Run finished.", "completed", report.Completed, "duration", report.Duration)
	return report, nil
}
