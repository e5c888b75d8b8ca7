package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/cellan/internal/app"
	"github.com/vk/cellan/internal/hcl"
	"github.com/vk/cellan/internal/report"
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

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Output    string
	LogOutput string
	Report    *report.Report
	Err       error
	App       *app.App
}

// RunIntegrationTest provides a standardized harness for running integration tests
// using a default background context.
func RunIntegrationTest(t *testing.T, files map[string]string, opts ...func(*app.Config)) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, opts...)
}

// RunIntegrationTestWithContext writes files into a temporary model directory
// and runs the full application over it. Each option adjusts the config
// before it is validated.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, opts ...func(*app.Config)) *HarnessResult {
	t.Helper()

	modelDir := filepath.Join(t.TempDir(), "model")
	require.NoError(t, os.Mkdir(modelDir, 0o755))

	// The test provides relative paths, which may include subdirectories.
	for name, content := range files {
		filePath := filepath.Join(modelDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	cfg := app.DefaultConfig()
	cfg.ModelPath = modelDir
	cfg.OutputFormat = "json"
	cfg.LogLevel = "debug"
	for _, opt := range opts {
		opt(&cfg)
	}
	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	out := &SafeBuffer{}
	logs := &SafeBuffer{}
	testApp := app.NewApp(out, logs, appConfig, hcl.NewLoader())
	rep, runErr := testApp.Run(ctx)

	if os.Getenv("CELLAN_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
	}

	return &HarnessResult{
		Output:    out.String(),
		LogOutput: logs.String(),
		Report:    rep,
		Err:       runErr,
		App:       testApp,
	}
}
