// Package tools defines tool contracts and implementations.
//
// Includes:
//   - ToolDefinition: name, description, JSON input schema, handler.
//   - GenerateSchema[T](): derive JSON Schema from Go structs.
//   - Command tool: run_command (timeout-bounded shell execution).
//   - File tools: read_file, write_file, list_directory, copy_file,
//     move_file, delete_file, find_files.
//
// Every handler returns a structured result; failures never panic across the
// package boundary.
package tools
