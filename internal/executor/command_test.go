package executor_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polo-ai/polo/internal/executor"
	"github.com/polo-ai/polo/internal/safety"
)

func newExecutor(t *testing.T, opts executor.Options) *executor.Executor {
	t.Helper()
	return executor.New(opts, zerolog.Nop(), nil)
}

func TestRunCommand_Success(t *testing.T) {
	e := newExecutor(t, executor.Options{})
	res := e.RunCommand(context.Background(), "echo hello", 0)

	require.True(t, res.Success)
	assert.Equal(t, "hello\n", res.Output)
	require.NotNil(t, res.ExitCode)
	assert.Equal(t, 0, *res.ExitCode)
	assert.Nil(t, res.Err)
	assert.Greater(t, res.Duration, time.Duration(0))
}

func TestRunCommand_CapturesStderr(t *testing.T) {
	e := newExecutor(t, executor.Options{})
	res := e.RunCommand(context.Background(), "echo oops >&2", 0)

	require.True(t, res.Success)
	assert.Equal(t, "oops\n", res.Output)
}

func TestRunCommand_NonzeroExit(t *testing.T) {
	e := newExecutor(t, executor.Options{})
	res := e.RunCommand(context.Background(), "echo partial; exit 3", 0)

	assert.False(t, res.Success)
	require.NotNil(t, res.ExitCode)
	assert.Equal(t, 3, *res.ExitCode)
	assert.Nil(t, res.Err, "a nonzero exit is a failed result, not an infrastructure error")
	assert.Equal(t, "partial\n", res.Output)
}

func TestRunCommand_EmptyCommand(t *testing.T) {
	e := newExecutor(t, executor.Options{})
	res := e.RunCommand(context.Background(), "   ", 0)

	assert.False(t, res.Success)
	assert.Equal(t, safety.CodeInvalidInput, res.ErrorCode())
}

func TestRunCommand_Timeout(t *testing.T) {
	e := newExecutor(t, executor.Options{})

	start := time.Now()
	res := e.RunCommand(context.Background(), "echo before; sleep 30", 300*time.Millisecond)
	elapsed := time.Since(start)

	assert.False(t, res.Success)
	assert.Equal(t, safety.CodeTimeout, res.ErrorCode())
	assert.Contains(t, res.Output, "before", "output produced before the deadline is kept")
	assert.Less(t, elapsed, 3*time.Second, "the process group must be killed, not waited for")
}

func TestRunCommand_TimeoutKillsChildren(t *testing.T) {
	e := newExecutor(t, executor.Options{})

	// A pipeline forces sh to fork children; reaping must not block on them.
	start := time.Now()
	res := e.RunCommand(context.Background(), "sleep 30 | sleep 30", 200*time.Millisecond)

	assert.Equal(t, safety.CodeTimeout, res.ErrorCode())
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestRunCommand_DefaultTimeoutApplies(t *testing.T) {
	e := newExecutor(t, executor.Options{Timeout: 250 * time.Millisecond})

	res := e.RunCommand(context.Background(), "sleep 30", 0)
	assert.Equal(t, safety.CodeTimeout, res.ErrorCode())
}

func TestRunCommand_WorkspaceRootIsCwd(t *testing.T) {
	dir := t.TempDir()
	root, err := safety.InitWorkspaceRoot(dir)
	require.NoError(t, err)
	e := newExecutor(t, executor.Options{WorkspaceRoot: root})

	res := e.RunCommand(context.Background(), "pwd", 0)
	require.True(t, res.Success)
	assert.Equal(t, root+"\n", res.Output)
}

func TestRunCommand_ContextCancellation(t *testing.T) {
	e := newExecutor(t, executor.Options{})
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	res := e.RunCommand(ctx, "sleep 30", 10*time.Second)
	assert.Equal(t, safety.CodeTimeout, res.ErrorCode())
	require.NotNil(t, res.Err)
	assert.Contains(t, res.Err.Message, "cancelled", "cancellation must not read like a timeout")
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestRunCommand_TimeoutMessage(t *testing.T) {
	e := newExecutor(t, executor.Options{})
	res := e.RunCommand(context.Background(), "sleep 30", 200*time.Millisecond)

	require.NotNil(t, res.Err)
	assert.Contains(t, res.Err.Message, "timeout")
}

func TestSystemInfo(t *testing.T) {
	e := newExecutor(t, executor.Options{})
	res := e.SystemInfo(context.Background())

	require.True(t, res.Success)
	assert.Contains(t, res.Output, "cwd:")
	assert.Contains(t, res.Output, "os:")
	assert.Contains(t, res.Output, "cpus:")

	h := e.History(1)
	require.Len(t, h, 1)
	assert.Equal(t, "system_info", h[0].Tool)
}
