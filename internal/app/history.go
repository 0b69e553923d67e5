package app

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/specialistvlad/recoseq/internal/journal"
)

// History prints every run recorded in the configured journal.
func (a *App) History(ctx context.Context) error {
	if a.config.JournalPath == "" {
		return fmt.Errorf("no journal file configured")
	}
	j, err := journal.OpenBolt(a.config.JournalPath)
	if err != nil {
		return err
	}
	defer j.Close()

	records, err := j.List(a.withLogger(ctx))
	if err != nil {
		return fmt.Errorf("failed to read journal: %w", err)
	}
	if len(records) == 0 {
		fmt.Fprintln(a.outW, "no runs recorded")
		return nil
	}

	tw := tabwriter.NewWriter(a.outW, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tSEQUENCE\tSTARTED\tITERATIONS\tSTATUS")
	for _, r := range records {
		status := "ok"
		if !r.Succeeded() {
			status = "failed"
			if r.FailedUnit != "" {
				status += " at " + r.FailedUnit
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d/%d\t%s\n",
			r.ID, r.Sequence, r.StartedAt.Format(time.RFC3339), r.Completed, r.Iterations, status)
	}
	return tw.Flush()
}
