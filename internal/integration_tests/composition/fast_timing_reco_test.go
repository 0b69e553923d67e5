package integration_tests

import (
	"strings"
	"testing"

	"github.com/specialistvlad/recoseq/internal/app"
	"github.com/specialistvlad/recoseq/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fastTimingDir = "../../../configs/fasttiming"

var fastTimingUnits = []string{"mtdUncalibratedRecHits", "mtdRecHits", "mtdClusters", "mtdTrackingRecHits"}

// TestComposition_FastTimingRunsEndToEnd runs the shipped configuration with
// the default modules, which relay every opaque producer type.
func TestComposition_FastTimingRunsEndToEnd(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	cfg := app.Config{
		Paths:      []string{fastTimingDir},
		Sequence:   "fastTimingLocalReco",
		Iterations: 3,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, nil, cfg, (*app.App).Run)

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.Contains(t, result.Output, "3/3 iterations of fastTimingLocalReco")
	for _, name := range fastTimingUnits {
		testutil.AssertUnitRan(t, result, name)
	}
}

// TestComposition_FastTimingPlan checks the waves follow the data flow even
// though the task lists its members in no particular order.
func TestComposition_FastTimingPlan(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	cfg := app.Config{Paths: []string{fastTimingDir}, Sequence: "fastTimingLocalReco"}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, nil, cfg, (*app.App).Plan)

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.Contains(t, result.Output, "sequence fastTimingLocalReco: 4 units in 4 waves")
	for i, name := range fastTimingUnits {
		assert.Regexp(t, `wave `+string(rune('0'+i))+`\s+`+name+`\s`, result.Output)
	}
	assert.Contains(t, result.Output, "external inputs: mix:FTLBarrel, mix:FTLEndcap")
	assert.Contains(t, result.Output, "conditions: MTDClusterParameterEstimator <- MTDCPEESProducer")
	assert.Contains(t, result.Output, "conditions: MTDTimeCalibration <- MTDTimeCalibESProducer")
}

// TestComposition_WrappingKeepsThePlan checks that wrapping the task in
// further sequences, across files, yields the same plan.
func TestComposition_WrappingKeepsThePlan(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	wrappers := map[string]string{"wrappers.hcl": `
sequence "outer" {
  members = [sequence.fastTimingLocalReco]
}
sequence "outermost" {
  members = [sequence.outer, task.fastTimingLocalRecoTask]
}
`}
	plans := make(map[string]string)

	// --- Act ---
	for _, name := range []string{"fastTimingLocalReco", "outermost"} {
		cfg := app.Config{Paths: []string{fastTimingDir}, Sequence: name}
		result := testutil.RunIntegrationTest(t, wrappers, cfg, (*app.App).Plan)
		require.NoError(t, result.Err)
		_, body, found := strings.Cut(result.Output, "\n")
		require.True(t, found)
		plans[name] = body
	}

	// --- Assert ---
	assert.Equal(t, plans["fastTimingLocalReco"], plans["outermost"])
}
