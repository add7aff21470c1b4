package tools

import (
	"context"
	"encoding/json"
	"time"

	"github.com/polo-ai/polo/internal/executor"
)

type RunCommandInput struct {
	Command        string `json:"command" jsonschema_description:"Shell command line to execute."`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" jsonschema_description:"Execution bound in seconds; 0 uses the configured default."`
}

// NewRunCommandTool executes a shell command under the configured timeout.
// The process group is killed on expiry so no children are left behind.
func NewRunCommandTool(e *executor.Executor) ToolDefinition {
	return ToolDefinition{
		Name:        "run_command",
		Description: "Execute a shell command and capture stdout/stderr. Terminated forcibly when it exceeds the timeout.",
		InputSchema: GenerateSchema[RunCommandInput](),
		Function: func(ctx context.Context, input json.RawMessage) executor.ToolResult {
			var in RunCommandInput
			if err := json.Unmarshal(input, &in); err != nil {
				return invalidInput(err)
			}
			return e.RunCommand(ctx, in.Command, time.Duration(in.TimeoutSeconds)*time.Second)
		},
	}
}
