package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, slog.Default(), FromContext(context.Background()))
}

func TestWith_AttachesAttributes(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ctx := WithLogger(context.Background(), logger)
	ctx = With(ctx, "unit", "mtdRecHits")
	FromContext(ctx).Info("hello")

	require.NotEmpty(t, buf.String())
	assert.Contains(t, buf.String(), "unit=mtdRecHits")
	assert.Contains(t, buf.String(), "msg=hello")
}
