package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polo-ai/polo/internal/config"
)

// chdir changes the working directory for the duration of the test,
// restoring the original directory on cleanup (t.Chdir needs Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func TestLoad_Defaults(t *testing.T) {
	// Run from an empty directory so a developer's polo.yaml cannot leak in.
	chdir(t, t.TempDir())

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, int64(5<<20), cfg.MaxFileSize)
	assert.Equal(t, 5, cfg.ContextWindow)
	assert.Equal(t, "polo_memory.jsonl", cfg.StoragePath)
	assert.Equal(t, "!", cfg.ToolPrefix)
	assert.Equal(t, "", cfg.WorkspaceRoot)
	assert.Equal(t, 50, cfg.FindLimit)
	assert.False(t, cfg.Observe)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "polo.yaml")
	content := `
timeout: 45s
max_file_size: 1024
context_window: 9
storage_path: /tmp/custom.jsonl
tool_prefix: "$"
find_limit: 7
observe: true
log_level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 45*time.Second, cfg.Timeout)
	assert.Equal(t, int64(1024), cfg.MaxFileSize)
	assert.Equal(t, 9, cfg.ContextWindow)
	assert.Equal(t, "/tmp/custom.jsonl", cfg.StoragePath)
	assert.Equal(t, "$", cfg.ToolPrefix)
	assert.Equal(t, 7, cfg.FindLimit)
	assert.True(t, cfg.Observe)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_EnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("POLO_TOOL_PREFIX", "%")
	t.Setenv("POLO_CONTEXT_WINDOW", "12")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "%", cfg.ToolPrefix)
	assert.Equal(t, 12, cfg.ContextWindow)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "polo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timeout: [not: valid"), 0o644))

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
