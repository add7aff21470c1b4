package memory

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/polo-ai/polo/internal/fsops"
	"github.com/polo-ai/polo/internal/safety"
)

// exportSchema is the contract every import file must satisfy before merging.
const exportSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["timestamp", "role", "text"],
    "properties": {
      "id": {"type": "string"},
      "timestamp": {"type": "string"},
      "role": {"type": "string", "enum": ["user", "assistant"]},
      "text": {"type": "string"},
      "tool_invocation": {
        "type": "object",
        "required": ["tool_name"],
        "properties": {
          "tool_name": {"type": "string"},
          "arguments": {"type": "array", "items": {"type": "string"}},
          "result_summary": {"type": "string"}
        }
      }
    }
  }
}`

// Export serialises the full log to path as a JSON array, or YAML when the
// path ends in .yaml/.yml.
func (s *Store) Export(path string) error {
	turns := s.turns
	if turns == nil {
		turns = []Turn{}
	}

	var (
		data []byte
		err  error
	)
	if isYAMLPath(path) {
		data, err = yaml.Marshal(turns)
	} else {
		data, err = json.MarshalIndent(turns, "", "  ")
	}
	if err != nil {
		return safety.NewError(safety.CodeStorage, "encode export: "+err.Error())
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return safety.MapFSError(err, path)
	}
	if err := fsops.AtomicWrite(path, data); err != nil {
		return safety.NewError(safety.CodeStorage, "write export: "+err.Error())
	}
	return nil
}

// Import merges the turns from path into the log: records are validated
// against the export schema, combined with the current log, de-duplicated on
// exact timestamp+role+text matches, ordered by timestamp, and persisted.
// A schema mismatch returns ERR_SCHEMA and leaves the log untouched.
func (s *Store) Import(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return safety.MapFSError(err, path)
	}

	// Normalise YAML to JSON so a single schema validation path covers both.
	if isYAMLPath(path) {
		var doc any
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return safety.NewError(safety.CodeSchema, "import file is not valid YAML: "+err.Error())
		}
		raw, err = json.Marshal(doc)
		if err != nil {
			return safety.NewError(safety.CodeSchema, "import file could not be normalised: "+err.Error())
		}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(exportSchema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return safety.NewError(safety.CodeSchema, "import file is not valid JSON: "+err.Error())
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return safety.NewError(safety.CodeSchema, "import file does not match the log schema: "+strings.Join(msgs, "; "))
	}

	var imported []Turn
	if err := json.Unmarshal(raw, &imported); err != nil {
		return safety.NewError(safety.CodeSchema, "decode import: "+err.Error())
	}

	merged := make([]Turn, 0, len(s.turns)+len(imported))
	seen := make(map[string]struct{}, len(s.turns)+len(imported))
	for _, t := range append(append([]Turn{}, s.turns...), imported...) {
		key := t.dedupeKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, t)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Timestamp.Before(merged[j].Timestamp)
	})

	prev := s.turns
	s.turns = merged
	if err := s.Flush(); err != nil {
		s.turns = prev
		return err
	}
	return nil
}

func isYAMLPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
