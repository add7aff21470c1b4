// Package telemetry correlates handled inputs with tool executions and,
// when enabled, mirrors events to a JSONL file for offline inspection.
package telemetry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Recorder emits structured events. Events always reach the debug log;
// the JSONL sink is written only when observe mode is on.
type Recorder struct {
	log     zerolog.Logger
	dir     string
	observe bool
}

// NewRecorder builds a Recorder writing JSONL events under dir when observe
// is set. dir defaults to ".polo".
func NewRecorder(log zerolog.Logger, dir string, observe bool) *Recorder {
	if dir == "" {
		dir = ".polo"
	}
	return &Recorder{log: log, dir: dir, observe: observe}
}

// Emit records a single named event. It augments fields with RFC3339Nano time
// and the event name; callers' maps are not mutated.
func (r *Recorder) Emit(name string, fields map[string]any) {
	ev := r.log.Debug().Str("event", name)
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg("telemetry event")

	if !r.observe {
		return
	}

	m := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		m[k] = v
	}
	m["time"] = time.Now().UTC().Format(time.RFC3339Nano)
	m["event"] = name

	b, err := json.Marshal(m)
	if err != nil {
		r.log.Warn().Err(err).Msg("telemetry: marshal")
		return
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		r.log.Warn().Err(err).Str("dir", r.dir).Msg("telemetry: mkdir")
		return
	}
	path := filepath.Join(r.dir, "events.jsonl")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		r.log.Warn().Err(err).Str("path", path).Msg("telemetry: open")
		return
	}
	defer f.Close()
	if _, err := f.Write(append(b, '\n')); err != nil {
		r.log.Warn().Err(err).Str("path", path).Msg("telemetry: write")
	}
}
