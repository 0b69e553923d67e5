package app

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/specialistvlad/recoseq/internal/executor"
	"github.com/specialistvlad/recoseq/internal/journal"
)

// Run plans the configured sequence and executes it for the configured
// number of iterations.
func (a *App) Run(ctx context.Context) error {
	ctx = a.withLogger(ctx)
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		a.startHealthcheckServer(ctx)
		defer a.closeHealthcheckServer(ctx)
	}

	p, err := a.plan(ctx)
	if err != nil {
		return err
	}

	j, err := a.openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	exec := executor.New(p, a.handlers, executor.Options{
		Workers: a.config.WorkerCount,
		Journal: j,
	})
	a.logger.Info("🚀 Starting execution...", "sequence", p.Sequence.Name(), "run_id", exec.RunID())
	report, err := exec.Run(ctx, a.config.Iterations)
	if report != nil {
		fmt.Fprintf(a.outW, "run %s: %d/%d iterations of %s in %s\n",
			report.RunID, report.Completed, report.Iterations, report.Sequence, report.Duration)
	}
	if err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}
	a.logger.Info("🏁 Execution finished.", "executions", report.Executions)
	return nil
}

func (a *App) openJournal() (journal.Journal, error) {
	if a.config.JournalPath == "" {
		return journal.Noop{}, nil
	}
	return journal.OpenBolt(a.config.JournalPath)
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
