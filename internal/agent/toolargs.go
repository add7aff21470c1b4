package agent

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/sjson"

	"github.com/polo-ai/polo/internal/safety"
)

// buildToolInput turns the raw argument remainder of a tool command into the
// JSON input document the tool's schema expects, plus the argument list
// recorded on the persisted turn.
func buildToolInput(name, rawArg string) (json.RawMessage, []string, error) {
	doc := "{}"
	set := func(key string, value any) {
		doc, _ = sjson.Set(doc, key, value)
	}

	switch name {
	case "run_command":
		if rawArg == "" {
			return nil, nil, safety.NewError(safety.CodeInvalidInput, "usage: shell <command>")
		}
		set("command", rawArg)
		return json.RawMessage(doc), []string{rawArg}, nil

	case "read_file":
		if rawArg == "" {
			return nil, nil, safety.NewError(safety.CodeInvalidInput, "usage: read <path>")
		}
		set("path", rawArg)
		return json.RawMessage(doc), []string{rawArg}, nil

	case "write_file":
		path, content, ok := strings.Cut(rawArg, " ")
		if !ok || path == "" {
			return nil, nil, safety.NewError(safety.CodeInvalidInput, "usage: write <path> <content>")
		}
		set("path", path)
		set("content", content)
		set("overwrite", true)
		return json.RawMessage(doc), []string{path, content}, nil

	case "list_directory":
		if rawArg == "" {
			rawArg = "."
		}
		set("path", rawArg)
		return json.RawMessage(doc), []string{rawArg}, nil

	case "find_files":
		fields := strings.Fields(rawArg)
		if len(fields) == 0 {
			return nil, nil, safety.NewError(safety.CodeInvalidInput, "usage: find <pattern> [path]")
		}
		set("pattern", fields[0])
		if len(fields) > 1 {
			set("path", fields[1])
		}
		return json.RawMessage(doc), fields, nil

	case "copy_file", "move_file":
		fields := strings.Fields(rawArg)
		if len(fields) < 2 {
			return nil, nil, safety.NewError(safety.CodeInvalidInput, "usage: <src> <dst> [--overwrite]")
		}
		set("src", fields[0])
		set("dst", fields[1])
		if hasFlag(fields[2:], "--overwrite", "-f") {
			set("overwrite", true)
		}
		return json.RawMessage(doc), fields, nil

	case "delete_file":
		fields := strings.Fields(rawArg)
		if len(fields) == 0 {
			return nil, nil, safety.NewError(safety.CodeInvalidInput, "usage: delete <path> [--force]")
		}
		set("path", fields[0])
		if hasFlag(fields[1:], "--force", "-f") {
			set("force", true)
		}
		return json.RawMessage(doc), fields, nil
	}

	// Unknown names still produce a well-formed (empty) input; the dispatcher
	// reports ERR_UNKNOWN_TOOL when the lookup fails.
	return json.RawMessage(doc), strings.Fields(rawArg), nil
}

func hasFlag(fields []string, flags ...string) bool {
	for _, f := range fields {
		for _, want := range flags {
			if f == want {
				return true
			}
		}
	}
	return false
}
