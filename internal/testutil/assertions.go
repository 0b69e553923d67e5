package testutil

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertUnitRan checks the debug log of a HarnessResult for a unit's
// completion, so tests don't depend on executor internals.
func AssertUnitRan(t *testing.T, result *HarnessResult, unitName string) {
	t.Helper()
	assert.True(t, unitFinished(result.LogOutput, unitName), "expected log output for unit %q was not found", unitName)
}

// AssertUnitNotRan is the negation of AssertUnitRan.
func AssertUnitNotRan(t *testing.T, result *HarnessResult, unitName string) {
	t.Helper()
	assert.False(t, unitFinished(result.LogOutput, unitName), "unit %q ran but was expected not to", unitName)
}

func unitFinished(logs, unitName string) bool {
	for _, line := range strings.Split(logs, "\n") {
		if strings.Contains(line, `msg="Unit finished."`) && slices.Contains(strings.Fields(line), "unit="+unitName) {
			return true
		}
	}
	return false
}
