// Package executor is the single component allowed to touch the process table
// and the filesystem. Every operation returns a structured ToolResult and is
// recorded in a process-lifetime usage history.
package executor

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/polo-ai/polo/internal/safety"
	"github.com/polo-ai/polo/internal/telemetry"
)

// maxUsageHistory bounds the in-memory usage ring.
const maxUsageHistory = 100

// Options configures an Executor. Zero values fall back to defaults.
type Options struct {
	Timeout       time.Duration // default bound for RunCommand
	MaxFileSize   int64         // read ceiling in bytes
	WorkspaceRoot string        // resolved absolute confinement root, "" = none
	FindLimit     int           // result cap for FindFiles
}

// ToolResult is the outcome of one tool invocation. Produced once, never mutated.
type ToolResult struct {
	Success  bool              `json:"success"`
	Output   string            `json:"output"`
	Err      *safety.ToolError `json:"error,omitempty"`
	Duration time.Duration     `json:"duration"`
	ExitCode *int              `json:"exit_code,omitempty"`
}

// ErrorCode returns the taxonomy code of a failed result, "" on success.
func (r ToolResult) ErrorCode() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Code
}

// Usage is one row of the in-memory tool usage history.
type Usage struct {
	Time     time.Time     `json:"time"`
	Tool     string        `json:"tool"`
	Args     string        `json:"args"`
	Success  bool          `json:"success"`
	Duration time.Duration `json:"duration"`
}

// Executor runs shell commands and file operations. It is not safe for
// concurrent use; the session processes one input at a time.
type Executor struct {
	opts    Options
	log     zerolog.Logger
	rec     *telemetry.Recorder
	history []Usage
}

// New builds an Executor. rec may be nil when no telemetry sink is wired.
func New(opts Options, log zerolog.Logger, rec *telemetry.Recorder) *Executor {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = 5 << 20
	}
	if opts.FindLimit <= 0 {
		opts.FindLimit = 50
	}
	return &Executor{opts: opts, log: log, rec: rec}
}

// History returns the most recent n usage records in chronological order.
func (e *Executor) History(n int) []Usage {
	if n <= 0 || len(e.history) == 0 {
		return nil
	}
	if n > len(e.history) {
		n = len(e.history)
	}
	out := make([]Usage, n)
	copy(out, e.history[len(e.history)-n:])
	return out
}

// ClearHistory drops all usage records.
func (e *Executor) ClearHistory() {
	e.history = nil
}

// record appends a usage row, trims the ring, and emits a tool_exec event.
func (e *Executor) record(ctx context.Context, tool, args string, res ToolResult) ToolResult {
	e.history = append(e.history, Usage{
		Time:     time.Now(),
		Tool:     tool,
		Args:     args,
		Success:  res.Success,
		Duration: res.Duration,
	})
	if len(e.history) > maxUsageHistory {
		e.history = e.history[len(e.history)-maxUsageHistory:]
	}

	turnID, _ := telemetry.TurnIDFromContext(ctx)
	fields := map[string]any{
		"tool_name":   tool,
		"duration_ms": res.Duration.Milliseconds(),
		"output_size": len(res.Output),
		"success":     res.Success,
		"turn_id":     turnID,
	}
	if res.Err != nil {
		fields["error"] = res.Err.Code
	}
	if e.rec != nil {
		e.rec.Emit("tool_exec", fields)
	}
	return res
}

// fail is a shorthand for a failed result carrying a taxonomy error.
func fail(err error, d time.Duration) ToolResult {
	te, ok := err.(safety.ToolError)
	if !ok {
		te = safety.NewError(safety.CodeStorage, err.Error())
	}
	return ToolResult{Success: false, Err: &te, Duration: d}
}
