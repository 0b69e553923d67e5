package integration_tests

import (
	"errors"
	"testing"

	"github.com/specialistvlad/recoseq/internal/app"
	"github.com/specialistvlad/recoseq/internal/dag"
	"github.com/specialistvlad/recoseq/internal/hcl"
	"github.com/specialistvlad/recoseq/internal/pipeline"
	"github.com/specialistvlad/recoseq/internal/registry"
	"github.com/specialistvlad/recoseq/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestErrorHandling_InvalidConfigurationIsRejected checks that broken
// configurations fail before any unit runs.
func TestErrorHandling_InvalidConfigurationIsRejected(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		hcl     string
		wantErr error
	}{
		{
			name: "unresolved members",
			hcl: `
unit "NoOp" "A" {}
task "t" {
  members = [unit.A, unit.E, unit.F]
}
sequence "s" {
  members = [task.t]
}`,
			wantErr: pipeline.ErrUnresolvedReference,
		},
		{
			name: "task listed as unit",
			hcl: `
unit "NoOp" "A" {}
task "inner" {
  members = [unit.A]
}
task "t" {
  members = [unit.inner]
}
sequence "s" {
  members = [task.t]
}`,
			wantErr: pipeline.ErrKindMismatch,
		},
		{
			name: "duplicate label",
			hcl: `
unit "NoOp" "A" {}
unit "NoOp" "A" {}
task "t" {
  members = [unit.A]
}
sequence "s" {
  members = [task.t]
}`,
			wantErr: registry.ErrDuplicateDefinition,
		},
		{
			name: "sequences referencing each other",
			hcl: `
unit "NoOp" "A" {}
task "t" {
  members = [unit.A]
}
sequence "s" {
  members = [task.t, sequence.u]
}
sequence "u" {
  members = [sequence.s]
}`,
			wantErr: hcl.ErrReferenceCycle,
		},
		{
			name: "data cycle",
			hcl: `
unit "NoOp" "A" {
  consumes = ["B"]
}
unit "NoOp" "B" {
  consumes = ["A"]
}
task "t" {
  members = [unit.A, unit.B]
}
sequence "s" {
  members = [task.t]
}`,
			wantErr: dag.ErrCycle,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			// --- Act ---
			result := testutil.RunIntegrationTest(t, map[string]string{"main.hcl": tc.hcl}, app.Config{Sequence: "s"}, (*app.App).Run, &testutil.NoOpModule{})

			// --- Assert ---
			require.Error(t, result.Err)
			assert.True(t, errors.Is(result.Err, tc.wantErr), "got %v, want %v", result.Err, tc.wantErr)
			testutil.AssertUnitNotRan(t, result, "A")
		})
	}
}
