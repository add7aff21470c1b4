package tools

import (
	"context"
	"encoding/json"

	"github.com/invopop/jsonschema"

	"github.com/polo-ai/polo/internal/executor"
	"github.com/polo-ai/polo/internal/safety"
)

// ToolDefinition binds a tool name and input schema to its handler.
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema *jsonschema.Schema
	Function    func(ctx context.Context, input json.RawMessage) executor.ToolResult
}

// Registry returns all tool definitions wired against e.
func Registry(e *executor.Executor) []ToolDefinition {
	return []ToolDefinition{
		NewRunCommandTool(e),
		NewReadFileTool(e),
		NewWriteFileTool(e),
		NewListDirectoryTool(e),
		NewCopyFileTool(e),
		NewMoveFileTool(e),
		NewDeleteFileTool(e),
		NewFindFilesTool(e),
		NewSystemInfoTool(e),
	}
}

// Find looks a tool up by name, reporting whether it exists.
func Find(defs []ToolDefinition, name string) (ToolDefinition, bool) {
	for _, d := range defs {
		if d.Name == name {
			return d, true
		}
	}
	return ToolDefinition{}, false
}

// invalidInput converts a JSON decode failure into a structured result.
func invalidInput(err error) executor.ToolResult {
	te := safety.NewError(safety.CodeInvalidInput, "bad tool input: "+err.Error())
	return executor.ToolResult{Success: false, Err: &te}
}
