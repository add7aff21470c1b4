package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/polo-ai/polo/internal/safety"
)

// RunCommand spawns command under `sh -c` in its own process group and
// enforces timeout by killing the whole group, so no child survives a
// timed-out pipeline. Output captured before the kill is returned with the
// timeout error. A zero timeout uses the configured default.
func (e *Executor) RunCommand(ctx context.Context, command string, timeout time.Duration) ToolResult {
	start := time.Now()
	if strings.TrimSpace(command) == "" {
		return e.record(ctx, "run_command", command,
			fail(safety.NewError(safety.CodeInvalidInput, "empty command"), time.Since(start)))
	}
	if timeout <= 0 {
		timeout = e.opts.Timeout
	}

	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.Command("sh", "-c", command)
	if e.opts.WorkspaceRoot != "" {
		cmd.Dir = e.opts.WorkspaceRoot
	}
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	configureCommandProcess(cmd)

	if err := cmd.Start(); err != nil {
		return e.record(ctx, "run_command", command, fail(safety.MapFSError(err, "sh"), time.Since(start)))
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	var waitErr error
	select {
	case <-cctx.Done():
		terminateCommandProcess(cmd)
		<-done // reap; the group is already killed
		msg := fmt.Sprintf("command exceeded %s timeout", timeout)
		if errors.Is(cctx.Err(), context.Canceled) {
			msg = "command cancelled before completion"
		}
		te := safety.NewError(safety.CodeTimeout, msg)
		res := ToolResult{
			Success:  false,
			Output:   buf.String(),
			Err:      &te,
			Duration: time.Since(start),
		}
		return e.record(ctx, "run_command", command, res)
	case waitErr = <-done:
	}

	res := ToolResult{
		Output:   buf.String(),
		Duration: time.Since(start),
	}
	var exitErr *exec.ExitError
	switch {
	case waitErr == nil:
		res.Success = true
		code := 0
		res.ExitCode = &code
	case errors.As(waitErr, &exitErr):
		// Nonzero exit is a failed result, not an infrastructure error.
		code := exitErr.ExitCode()
		res.ExitCode = &code
	default:
		te := safety.NewError(safety.CodeStorage, waitErr.Error())
		res.Err = &te
	}
	return e.record(ctx, "run_command", command, res)
}
