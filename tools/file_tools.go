package tools

import (
	"context"
	"encoding/json"

	"github.com/polo-ai/polo/internal/executor"
)

type ReadFileInput struct {
	Path string `json:"path" jsonschema_description:"File path to read."`
}

// NewReadFileTool returns full file contents, bounded by the configured size ceiling.
func NewReadFileTool(e *executor.Executor) ToolDefinition {
	return ToolDefinition{
		Name:        "read_file",
		Description: "Read the contents of a file. Oversized files and directories are rejected.",
		InputSchema: GenerateSchema[ReadFileInput](),
		Function: func(ctx context.Context, input json.RawMessage) executor.ToolResult {
			var in ReadFileInput
			if err := json.Unmarshal(input, &in); err != nil {
				return invalidInput(err)
			}
			return e.ReadFile(ctx, in.Path)
		},
	}
}

type WriteFileInput struct {
	Path      string `json:"path" jsonschema_description:"Target file path."`
	Content   string `json:"content" jsonschema_description:"Full content to write."`
	Overwrite bool   `json:"overwrite,omitempty" jsonschema_description:"Replace an existing file when true."`
}

// NewWriteFileTool writes a file atomically, creating parent directories.
func NewWriteFileTool(e *executor.Executor) ToolDefinition {
	return ToolDefinition{
		Name:        "write_file",
		Description: "Write content to a file. Refuses to replace an existing file unless overwrite is set.",
		InputSchema: GenerateSchema[WriteFileInput](),
		Function: func(ctx context.Context, input json.RawMessage) executor.ToolResult {
			var in WriteFileInput
			if err := json.Unmarshal(input, &in); err != nil {
				return invalidInput(err)
			}
			return e.WriteFile(ctx, in.Path, in.Content, in.Overwrite)
		},
	}
}

type ListDirectoryInput struct {
	Path string `json:"path,omitempty" jsonschema_description:"Directory to list; defaults to the current directory."`
}

// NewListDirectoryTool lists entries with kind and size.
func NewListDirectoryTool(e *executor.Executor) ToolDefinition {
	return ToolDefinition{
		Name:        "list_directory",
		Description: "List a directory's entries with type and size.",
		InputSchema: GenerateSchema[ListDirectoryInput](),
		Function: func(ctx context.Context, input json.RawMessage) executor.ToolResult {
			var in ListDirectoryInput
			if err := json.Unmarshal(input, &in); err != nil {
				return invalidInput(err)
			}
			return e.ListDirectory(ctx, in.Path)
		},
	}
}

type CopyFileInput struct {
	Src       string `json:"src" jsonschema_description:"Source file path."`
	Dst       string `json:"dst" jsonschema_description:"Destination path."`
	Overwrite bool   `json:"overwrite,omitempty" jsonschema_description:"Replace an existing destination when true."`
}

// NewCopyFileTool copies a file.
func NewCopyFileTool(e *executor.Executor) ToolDefinition {
	return ToolDefinition{
		Name:        "copy_file",
		Description: "Copy a file to a new location.",
		InputSchema: GenerateSchema[CopyFileInput](),
		Function: func(ctx context.Context, input json.RawMessage) executor.ToolResult {
			var in CopyFileInput
			if err := json.Unmarshal(input, &in); err != nil {
				return invalidInput(err)
			}
			return e.CopyFile(ctx, in.Src, in.Dst, in.Overwrite)
		},
	}
}

type MoveFileInput struct {
	Src       string `json:"src" jsonschema_description:"Source file path."`
	Dst       string `json:"dst" jsonschema_description:"Destination path."`
	Overwrite bool   `json:"overwrite,omitempty" jsonschema_description:"Replace an existing destination when true."`
}

// NewMoveFileTool moves a file, atomically where the filesystem allows.
func NewMoveFileTool(e *executor.Executor) ToolDefinition {
	return ToolDefinition{
		Name:        "move_file",
		Description: "Move or rename a file.",
		InputSchema: GenerateSchema[MoveFileInput](),
		Function: func(ctx context.Context, input json.RawMessage) executor.ToolResult {
			var in MoveFileInput
			if err := json.Unmarshal(input, &in); err != nil {
				return invalidInput(err)
			}
			return e.MoveFile(ctx, in.Src, in.Dst, in.Overwrite)
		},
	}
}

type DeleteFileInput struct {
	Path  string `json:"path" jsonschema_description:"File or directory to delete."`
	Force bool   `json:"force,omitempty" jsonschema_description:"Required to delete a directory tree."`
}

// NewDeleteFileTool removes a file, or a directory with force.
func NewDeleteFileTool(e *executor.Executor) ToolDefinition {
	return ToolDefinition{
		Name:        "delete_file",
		Description: "Delete a file. Directories require force.",
		InputSchema: GenerateSchema[DeleteFileInput](),
		Function: func(ctx context.Context, input json.RawMessage) executor.ToolResult {
			var in DeleteFileInput
			if err := json.Unmarshal(input, &in); err != nil {
				return invalidInput(err)
			}
			return e.DeleteFile(ctx, in.Path, in.Force)
		},
	}
}

type FindFilesInput struct {
	Pattern string `json:"pattern" jsonschema_description:"Glob pattern matched against base names."`
	Path    string `json:"path,omitempty" jsonschema_description:"Directory to search from; defaults to the current directory."`
}

// NewFindFilesTool searches recursively for matching file names.
func NewFindFilesTool(e *executor.Executor) ToolDefinition {
	return ToolDefinition{
		Name:        "find_files",
		Description: "Recursively find files whose names match a glob pattern. Hidden entries are skipped.",
		InputSchema: GenerateSchema[FindFilesInput](),
		Function: func(ctx context.Context, input json.RawMessage) executor.ToolResult {
			var in FindFilesInput
			if err := json.Unmarshal(input, &in); err != nil {
				return invalidInput(err)
			}
			return e.FindFiles(ctx, in.Pattern, in.Path)
		},
	}
}
