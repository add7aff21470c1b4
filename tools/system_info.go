package tools

import (
	"context"
	"encoding/json"

	"github.com/polo-ai/polo/internal/executor"
)

type SystemInfoInput struct{}

// NewSystemInfoTool reports host and environment details.
func NewSystemInfoTool(e *executor.Executor) ToolDefinition {
	return ToolDefinition{
		Name:        "system_info",
		Description: "Report host, user, working directory, OS, CPU, and disk information.",
		InputSchema: GenerateSchema[SystemInfoInput](),
		Function: func(ctx context.Context, input json.RawMessage) executor.ToolResult {
			var in SystemInfoInput
			if err := json.Unmarshal(input, &in); err != nil {
				return invalidInput(err)
			}
			return e.SystemInfo(ctx)
		},
	}
}
