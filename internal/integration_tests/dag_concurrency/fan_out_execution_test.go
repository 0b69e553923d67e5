package integration_tests

import (
	"testing"
	"time"

	"github.com/specialistvlad/recoseq/internal/app"
	"github.com/specialistvlad/recoseq/internal/testutil"
	"github.com/stretchr/testify/require"
)

// TestDagConcurrency_FanOutExecution validates that independent units in the
// same wave run concurrently.
func TestDagConcurrency_FanOutExecution(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	const sleep = 150 * time.Millisecond
	sleeper := testutil.NewMockSleeperModule(sleep)
	cfg := app.Config{Sequence: "fan", WorkerCount: 4}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, map[string]string{"fan.hcl": fanHCL}, cfg, (*app.App).Run, sleeper)

	// --- Assert ---
	require.NoError(t, result.Err)

	var earliestStart, latestEnd time.Time
	for _, name := range []string{"A", "B", "C", "D"} {
		records := sleeper.Executions(name)
		require.Len(t, records, 1, "unit %s should run once", name)
		if earliestStart.IsZero() || records[0].Start.Before(earliestStart) {
			earliestStart = records[0].Start
		}
		if records[0].End.After(latestEnd) {
			latestEnd = records[0].End
		}
	}

	// Run serially the workers would take at least 4*sleep.
	require.Less(t, latestEnd.Sub(earliestStart), 3*sleep, "fan-out units did not overlap")
}
