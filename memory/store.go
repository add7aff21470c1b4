package memory

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/polo-ai/polo/internal/fsops"
	"github.com/polo-ai/polo/internal/metrics"
	"github.com/polo-ai/polo/internal/safety"
)

// Store owns the conversation log for a single process. It is not safe for
// concurrent use and takes no cross-process lock; see the package doc.
type Store struct {
	path     string
	log      zerolog.Logger
	turns    []Turn
	salvaged int // records dropped during the last Open
}

// Stats summarises the log. Zero values mean "empty log", never an error.
type Stats struct {
	TotalTurns      int       `json:"total_turns"`
	FirstTimestamp  time.Time `json:"first_timestamp,omitempty"`
	LastTimestamp   time.Time `json:"last_timestamp,omitempty"`
	AvgUserLen      float64   `json:"avg_user_len"`
	AvgAssistantLen float64   `json:"avg_assistant_len"`
	FileSize        int64     `json:"file_size"`
}

// Open loads the log at path. A missing file yields an empty store. Malformed
// records never fail the load: the valid prefix is kept, the rest is dropped
// with a warning.
func Open(path string, log zerolog.Logger) (*Store, error) {
	s := &Store{path: path, log: log}

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, safety.MapFSError(err, path)
	}

	lines := bytes.Split(b, []byte("\n"))
	for i, line := range lines {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		turn, ok := decodeRecord(line)
		if !ok {
			// Structural corruption: keep the prefix, drop this record and
			// everything after it.
			for _, rest := range lines[i:] {
				if len(bytes.TrimSpace(rest)) > 0 {
					s.salvaged++
				}
			}
			log.Warn().
				Str("path", path).
				Int("kept", len(s.turns)).
				Int("dropped", s.salvaged).
				Msg("conversation log corrupt; recovered valid prefix")
			break
		}
		s.turns = append(s.turns, turn)
	}
	return s, nil
}

// decodeRecord parses one JSONL line into a Turn, reporting whether the
// record is structurally sound.
func decodeRecord(line []byte) (Turn, bool) {
	if !gjson.ValidBytes(line) {
		return Turn{}, false
	}
	role := gjson.GetBytes(line, "role").String()
	if role != string(RoleUser) && role != string(RoleAssistant) {
		return Turn{}, false
	}
	if !gjson.GetBytes(line, "timestamp").Exists() {
		return Turn{}, false
	}
	var t Turn
	if err := json.Unmarshal(line, &t); err != nil {
		return Turn{}, false
	}
	return t, true
}

// Path returns the storage file location.
func (s *Store) Path() string { return s.path }

// Salvaged reports how many records the last Open had to drop.
func (s *Store) Salvaged() int { return s.salvaged }

// Len returns the number of turns currently held.
func (s *Store) Len() int { return len(s.turns) }

// Append adds turn to the in-memory log and persists immediately. On a
// persistence failure the turn stays in memory and an ERR_STORAGE error is
// returned; the caller may retry with Flush.
func (s *Store) Append(turn Turn) error {
	s.turns = append(s.turns, turn)
	return s.Flush()
}

// Flush rewrites the full log atomically.
func (s *Store) Flush() error {
	var buf bytes.Buffer
	for _, t := range s.turns {
		b, err := json.Marshal(t)
		if err != nil {
			return safety.NewError(safety.CodeStorage, "encode turn: "+err.Error())
		}
		buf.Write(b)
		buf.WriteByte('\n')
	}
	if err := fsops.WriteFile(s.path, buf.String(), true); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("conversation log flush failed")
		return safety.NewError(safety.CodeStorage, "persist conversation log: "+err.Error())
	}
	return nil
}

// Recent returns the last n turns in chronological order. n <= 0 returns
// empty; n beyond the log length returns everything.
func (s *Store) Recent(n int) []Turn {
	if n <= 0 || len(s.turns) == 0 {
		return nil
	}
	if n > len(s.turns) {
		n = len(s.turns)
	}
	out := make([]Turn, n)
	copy(out, s.turns[len(s.turns)-n:])
	return out
}

// ContextFor returns the most recent window turns. The query is accepted for
// interface stability but does not influence selection; there is no semantic
// search.
func (s *Store) ContextFor(query string, window int) []Turn {
	_ = query
	return s.Recent(window)
}

// Stats computes log statistics. An empty log yields zero values.
func (s *Store) Stats() Stats {
	st := Stats{TotalTurns: len(s.turns)}
	if len(s.turns) == 0 {
		return st
	}
	st.FirstTimestamp = s.turns[0].Timestamp
	st.LastTimestamp = s.turns[len(s.turns)-1].Timestamp

	var userTexts, assistantTexts []string
	for _, t := range s.turns {
		switch t.Role {
		case RoleUser:
			userTexts = append(userTexts, t.Text)
		case RoleAssistant:
			assistantTexts = append(assistantTexts, t.Text)
		}
	}
	st.AvgUserLen = metrics.MeanLength(userTexts)
	st.AvgAssistantLen = metrics.MeanLength(assistantTexts)

	if fi, err := os.Stat(s.path); err == nil {
		st.FileSize = fi.Size()
	}
	return st
}

// Clear irreversibly empties the log, in memory and on disk. It refuses to
// act without confirm.
func (s *Store) Clear(confirm bool) error {
	if !confirm {
		return safety.NewError(safety.CodeConfirmationRequired, "clear requires confirmation")
	}
	s.turns = nil
	s.salvaged = 0
	return s.Flush()
}

// Preview renders a short one-line summary of a turn for listings.
func Preview(t Turn, max int) string {
	text := strings.ReplaceAll(t.Text, "\n", " ")
	r := []rune(text)
	if len(r) > max {
		text = string(r[:max]) + "..."
	}
	return t.Timestamp.Format("2006-01-02 15:04") + " " + string(t.Role) + ": " + text
}
