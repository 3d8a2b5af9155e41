package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/cellconf/internal/app"
	"github.com/vk/cellconf/internal/hcl"
)

// SafeBuffer is a thread-safe buffer for capturing combined log and render
// output in tests.
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

// HarnessResult holds the outcomes of a workspace test run.
type HarnessResult struct {
	Output string
	Err    error
	App    *app.App
}

// WriteWorkspace materializes a file map into a temporary workspace tree.
// Map keys are paths relative to the workspace root (e.g. "workspace.hcl",
// "other/cell.conf.hcl"); intermediate directories are created as needed.
// It returns the workspace root directory.
func WriteWorkspace(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

// RunApp provides a standardized harness: it writes the given workspace
// tree, constructs the app over it, and executes the configured query. App
// construction panics on load failures; the harness recovers them into
// HarnessResult.Err so tests can assert on failure modes.
func RunApp(t *testing.T, files map[string]string, mutate func(*app.Config)) *HarnessResult {
	t.Helper()

	root := WriteWorkspace(t, files)

	appConfig := &app.Config{
		WorkspacePath: root,
		Strict:        true,
		LogLevel:      "error",
		LogFormat:     "text",
		WorkerCount:   4,
	}
	if mutate != nil {
		mutate(appConfig)
	}

	out := &SafeBuffer{}

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(out, appConfig, hcl.NewLoader())
	}()

	if panicErr != nil {
		return &HarnessResult{
			Output: out.String(),
			Err:    fmt.Errorf("application startup panicked | %v", panicErr),
		}
	}

	runErr := testApp.Run(context.Background())
	return &HarnessResult{
		Output: out.String(),
		Err:    runErr,
		App:    testApp,
	}
}
