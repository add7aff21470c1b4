package memory

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies which side of the exchange produced a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ToolInvocation records a tool call folded into a turn. The yaml tags must
// mirror the json ones: imports normalise YAML to JSON before decoding, so a
// diverging key would silently drop the field.
type ToolInvocation struct {
	ToolName      string   `json:"tool_name" yaml:"tool_name"`
	Arguments     []string `json:"arguments,omitempty" yaml:"arguments,omitempty"`
	ResultSummary string   `json:"result_summary,omitempty" yaml:"result_summary,omitempty"`
}

// Turn is one recorded exchange entry. Immutable once appended.
type Turn struct {
	ID        string          `json:"id" yaml:"id"`
	Timestamp time.Time       `json:"timestamp" yaml:"timestamp"`
	Role      Role            `json:"role" yaml:"role"`
	Text      string          `json:"text" yaml:"text"`
	Tool      *ToolInvocation `json:"tool_invocation,omitempty" yaml:"tool_invocation,omitempty"`
}

// NewTurn stamps a turn with a fresh ID and the current time.
func NewTurn(role Role, text string, tool *ToolInvocation) Turn {
	return Turn{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Role:      role,
		Text:      text,
		Tool:      tool,
	}
}

// dedupeKey identifies a turn for import merging: exact timestamp+role+text
// matches are considered the same record.
func (t Turn) dedupeKey() string {
	return t.Timestamp.UTC().Format(time.RFC3339Nano) + "\x00" + string(t.Role) + "\x00" + t.Text
}
