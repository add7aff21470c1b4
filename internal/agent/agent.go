// Package agent classifies user input and turns it into tool executions,
// canned responses, or context-aware chat replies. It owns no side effects:
// file and process work is delegated to the tool registry, persistence to the
// memory store.
package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/polo-ai/polo/internal/executor"
	"github.com/polo-ai/polo/internal/metrics"
	"github.com/polo-ai/polo/internal/safety"
	"github.com/polo-ai/polo/internal/telemetry"
	"github.com/polo-ai/polo/memory"
	"github.com/polo-ai/polo/tools"
)

// Dispatcher processes one input at a time. It is stateless between calls
// except through the memory store.
type Dispatcher struct {
	store  *memory.Store
	defs   []tools.ToolDefinition
	prefix string
	window int
	log    zerolog.Logger
	rec    *telemetry.Recorder
	now    func() time.Time
}

// New builds a Dispatcher. window caps the turns of chat context; prefix is
// the tool-command lead character.
func New(store *memory.Store, defs []tools.ToolDefinition, prefix string, window int, log zerolog.Logger, rec *telemetry.Recorder) *Dispatcher {
	if prefix == "" {
		prefix = "!"
	}
	if window <= 0 {
		window = 5
	}
	return &Dispatcher{
		store:  store,
		defs:   defs,
		prefix: prefix,
		window: window,
		log:    log,
		rec:    rec,
		now:    time.Now,
	}
}

// Handle classifies input, dispatches it, and persists the exchange as a
// user turn plus an assistant turn. Failures of tools or persistence come
// back as readable text in the reply; the session is never aborted.
func (d *Dispatcher) Handle(ctx context.Context, input string) string {
	turnID := telemetry.NewTurnID()
	ctx = telemetry.WithTurnID(ctx, turnID)

	f := metrics.CountFeatures(input)
	if d.rec != nil {
		d.rec.Emit("input_received", map[string]any{
			"turn_id": turnID,
			"bytes":   f.Bytes,
			"runes":   f.Runes,
			"words":   f.Words,
			"lines":   f.Lines,
		})
	}

	c := classify(input, d.prefix)

	var (
		reply string
		inv   *memory.ToolInvocation
	)
	switch c.kind {
	case kindTool:
		reply, inv = d.dispatchTool(ctx, c)
	case kindIntent:
		reply = c.intent.respond(d.now())
	default:
		reply = chatReply(input, len(d.store.ContextFor(input, d.window)))
	}

	if err := d.store.Append(memory.NewTurn(memory.RoleUser, input, nil)); err != nil {
		d.log.Warn().Err(err).Msg("failed to persist user turn")
		reply += "\n(warning: this exchange could not be saved to the conversation log)"
		// The assistant turn below shares the log's fate; skip the duplicate warning.
		_ = d.store.Append(memory.NewTurn(memory.RoleAssistant, reply, inv))
		return reply
	}
	if err := d.store.Append(memory.NewTurn(memory.RoleAssistant, reply, inv)); err != nil {
		d.log.Warn().Err(err).Msg("failed to persist assistant turn")
		reply += "\n(warning: this exchange could not be saved to the conversation log)"
	}
	return reply
}

// dispatchTool resolves and runs a tool command, mapping unknown names to a
// readable UnknownTool reply instead of failing the session.
func (d *Dispatcher) dispatchTool(ctx context.Context, c classification) (string, *memory.ToolInvocation) {
	inv := &memory.ToolInvocation{ToolName: c.tool}

	def, ok := tools.Find(d.defs, c.tool)
	if !ok {
		te := safety.NewError(safety.CodeUnknownTool, "unknown tool: "+c.tool)
		inv.ResultSummary = te.Code
		return fmt.Sprintf("unknown tool %q; use /tools to see recent tool activity or /help for the command list", c.tool), inv
	}

	input, args, err := buildToolInput(c.tool, c.rawArg)
	if err != nil {
		inv.ResultSummary = safety.CodeOf(err)
		return err.Error(), inv
	}
	inv.Arguments = args

	res := def.Function(ctx, input)
	if res.Success {
		inv.ResultSummary = fmt.Sprintf("ok in %s", res.Duration.Round(time.Millisecond))
	} else if res.Err != nil {
		inv.ResultSummary = res.Err.Code
	} else {
		inv.ResultSummary = "failed"
	}

	return formatResult(c.tool, res), inv
}

// formatResult renders a ToolResult for the terminal.
func formatResult(tool string, res executor.ToolResult) string {
	var b strings.Builder
	if res.Success {
		out := strings.TrimRight(res.Output, "\n")
		if out == "" {
			out = "(no output)"
		}
		b.WriteString(out)
		fmt.Fprintf(&b, "\n[%s completed in %s]", tool, res.Duration.Round(time.Millisecond))
		return b.String()
	}

	if res.Output != "" {
		b.WriteString(strings.TrimRight(res.Output, "\n"))
		b.WriteString("\n")
	}
	if res.Err != nil {
		fmt.Fprintf(&b, "[%s failed: %s] %s", tool, res.Err.Code, res.Err.Message)
	} else if res.ExitCode != nil {
		fmt.Fprintf(&b, "[%s exited with status %d]", tool, *res.ExitCode)
	} else {
		fmt.Fprintf(&b, "[%s failed]", tool)
	}
	return b.String()
}
