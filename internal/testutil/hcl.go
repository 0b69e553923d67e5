package testutil

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/specialistvlad/recoseq/internal/hcl"
	"github.com/specialistvlad/recoseq/internal/unit"
	"github.com/stretchr/testify/require"
)

// UnitTestCase defines a single scenario for testing the parsing of a
// `unit` block.
type UnitTestCase struct {
	Name string
	// HCL holds only the content inside `unit "Relay" "a" { ... }`.
	HCL string
	// ExpectErr should be true if a parsing error is expected.
	ExpectErr bool
	// ErrContains must appear in the error message if ExpectErr is true.
	ErrContains string
	// Validate performs assertions on the parsed unit.
	Validate func(t *testing.T, u *unit.Unit)
}

// RunUnitParsingTests runs a table of unit block parsing scenarios.
func RunUnitParsingTests(t *testing.T, cases []UnitTestCase) {
	t.Helper()

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			src := fmt.Sprintf("unit \"Relay\" \"a\" {\n%s\n}\n", unindent(tc.HCL))
			ns, err := hcl.NewLoader().LoadSource(context.Background(), "unit.hcl", []byte(src))

			if tc.ExpectErr {
				require.Error(t, err, "Expected a parsing error, but got none")
				if tc.ErrContains != "" {
					require.Contains(t, err.Error(), tc.ErrContains)
				}
				return
			}

			require.NoError(t, err, "Expected successful parsing, but got an error")
			u, ok := ns.Unit("a")
			require.True(t, ok)
			if tc.Validate != nil {
				tc.Validate(t, u)
			}
		})
	}
}

// unindent removes common leading whitespace from a multi-line string,
// allowing for readable, indented HCL snippets in Go tests.
func unindent(s string) string {
	lines := strings.Split(s, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	minIndent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if minIndent == -1 || indent < minIndent {
			minIndent = indent
		}
	}
	if minIndent <= 0 {
		return strings.Join(lines, "\n")
	}

	for i, line := range lines {
		if len(line) >= minIndent {
			lines[i] = line[minIndent:]
		} else {
			lines[i] = strings.TrimSpace(line)
		}
	}
	return strings.Join(lines, "\n")
}
