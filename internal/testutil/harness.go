package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/recoseq/internal/app"
	"github.com/specialistvlad/recoseq/internal/handlers"
	"github.com/specialistvlad/recoseq/internal/hcl"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// WriteFiles writes files, keyed by relative path, into a fresh temporary
// directory and returns the directory.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Output    string
	LogOutput string
	Err       error
	App       *app.App
}

// Operation is one of the App's entry points, e.g. (*app.App).Run.
type Operation func(a *app.App, ctx context.Context) error

// RunIntegrationTest writes files to a temporary directory, builds an App
// configured with cfg for that directory and runs op. Debug logs are
// captured; set RECOSEQ_TEST_LOGS=true to print them.
func RunIntegrationTest(t *testing.T, files map[string]string, cfg app.Config, op Operation, modules ...handlers.Module) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, cfg, op, modules...)
}

// RunIntegrationTestWithContext is RunIntegrationTest with a caller-provided context.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, cfg app.Config, op Operation, modules ...handlers.Module) *HarnessResult {
	t.Helper()

	if len(files) > 0 {
		cfg.Paths = append(cfg.Paths, WriteFiles(t, files))
	}
	cfg.LogLevel = "debug"
	cfg.LogFormat = "text"
	validated, err := app.NewConfig(cfg)
	require.NoError(t, err)

	out := &SafeBuffer{}
	logs := &SafeBuffer{}
	testApp := app.NewApp(out, logs, validated, hcl.NewLoader(), modules...)
	runErr := op(testApp, ctx)

	if os.Getenv("RECOSEQ_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
	}

	return &HarnessResult{
		Output:    out.String(),
		LogOutput: logs.String(),
		Err:       runErr,
		App:       testApp,
	}
}
