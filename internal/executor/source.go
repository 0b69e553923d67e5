package executor

import (
	"context"

	"github.com/specialistvlad/recoseq/internal/inputtag"
)

// Source returns the value of an external input for one iteration.
type Source func(ctx context.Context, iteration int, tag inputtag.Tag) (any, error)

// IterationIndex is the default Source: every external input carries the
// iteration index.
func IterationIndex(_ context.Context, iteration int, _ inputtag.Tag) (any, error) {
	return iteration, nil
}
