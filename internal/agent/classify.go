package agent

import "strings"

// inputKind tags the classification outcome. Rules run in a fixed priority
// order: tool prefix, then known intents, then chat.
type inputKind int

const (
	kindTool inputKind = iota
	kindIntent
	kindChat
)

type classification struct {
	kind   inputKind
	tool   string // canonical tool name (kindTool)
	rawArg string // unparsed argument remainder (kindTool)
	intent *intent
	text   string // original input
}

// toolAliases maps the short names accepted after the tool prefix onto
// canonical tool names.
var toolAliases = map[string]string{
	"shell":   "run_command",
	"sh":      "run_command",
	"run":     "run_command",
	"read":    "read_file",
	"cat":     "read_file",
	"write":   "write_file",
	"echo":    "write_file",
	"ls":      "list_directory",
	"list":    "list_directory",
	"find":    "find_files",
	"search":  "find_files",
	"copy":    "copy_file",
	"cp":      "copy_file",
	"move":    "move_file",
	"mv":      "move_file",
	"delete":  "delete_file",
	"rm":      "delete_file",
	"sysinfo": "system_info",
}

// classify resolves one input line. prefix is the configured tool prefix.
func classify(input, prefix string) classification {
	trimmed := strings.TrimSpace(input)

	if strings.HasPrefix(trimmed, prefix) {
		rest := strings.TrimSpace(strings.TrimPrefix(trimmed, prefix))
		name, arg, _ := strings.Cut(rest, " ")
		name = strings.ToLower(name)
		if canonical, ok := toolAliases[name]; ok {
			name = canonical
		}
		return classification{kind: kindTool, tool: name, rawArg: strings.TrimSpace(arg), text: input}
	}

	for i := range intents {
		if intents[i].match(trimmed) {
			return classification{kind: kindIntent, intent: &intents[i], text: input}
		}
	}

	return classification{kind: kindChat, text: input}
}
