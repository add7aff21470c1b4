package memory_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polo-ai/polo/internal/safety"
	"github.com/polo-ai/polo/memory"
)

func seededStore(t *testing.T, texts ...string) *memory.Store {
	t.Helper()
	s := testStore(t)
	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	for i, txt := range texts {
		role := memory.RoleUser
		if i%2 == 1 {
			role = memory.RoleAssistant
		}
		require.NoError(t, s.Append(turnAt(base.Add(time.Duration(i)*time.Minute), role, txt)))
	}
	return s
}

func TestExportImport_JSONRoundTrip(t *testing.T) {
	src := seededStore(t, "hello", "hi there", "what time is it")
	exportPath := filepath.Join(t.TempDir(), "dump.json")
	require.NoError(t, src.Export(exportPath))

	dst := testStore(t)
	require.NoError(t, dst.Import(exportPath))
	require.Equal(t, src.Len(), dst.Len())

	want := src.Recent(src.Len())
	got := dst.Recent(dst.Len())
	for i := range want {
		assert.Equal(t, want[i].Text, got[i].Text)
		assert.Equal(t, want[i].Role, got[i].Role)
		assert.True(t, want[i].Timestamp.Equal(got[i].Timestamp))
	}
}

func TestExportImport_YAMLRoundTrip(t *testing.T) {
	src := seededStore(t, "alpha", "beta")
	inv := &memory.ToolInvocation{ToolName: "run_command", Arguments: []string{"ls"}, ResultSummary: "ok in 2ms"}
	withTool := turnAt(time.Date(2026, 2, 1, 9, 5, 0, 0, time.UTC), memory.RoleAssistant, "listing")
	withTool.Tool = inv
	require.NoError(t, src.Append(withTool))

	exportPath := filepath.Join(t.TempDir(), "dump.yaml")
	require.NoError(t, src.Export(exportPath))

	dst := testStore(t)
	require.NoError(t, dst.Import(exportPath))
	require.Equal(t, 3, dst.Len())
	got := dst.Recent(3)
	assert.Equal(t, "alpha", got[0].Text)
	assert.Equal(t, "beta", got[1].Text)
	require.NotNil(t, got[2].Tool, "tool invocation must survive a YAML round trip")
	assert.Equal(t, "run_command", got[2].Tool.ToolName)
	assert.Equal(t, []string{"ls"}, got[2].Tool.Arguments)
	assert.Equal(t, "ok in 2ms", got[2].Tool.ResultSummary)
}

func TestExport_EmptyLog(t *testing.T) {
	s := testStore(t)
	exportPath := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, s.Export(exportPath))

	b, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(b))
}

func TestImport_SchemaRejection(t *testing.T) {
	cases := map[string]string{
		"not json":       `this is not json at all`,
		"not an array":   `{"role":"user"}`,
		"missing fields": `[{"role":"user"}]`,
		"bad role":       `[{"timestamp":"2026-01-01T00:00:00Z","role":"wizard","text":"hi"}]`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			s := seededStore(t, "keep")
			path := filepath.Join(t.TempDir(), "bad.json")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

			err := s.Import(path)
			require.Error(t, err)
			assert.Equal(t, safety.CodeSchema, safety.CodeOf(err))
			assert.Equal(t, 1, s.Len())
		})
	}
}

func TestImport_MissingFile(t *testing.T) {
	s := testStore(t)
	err := s.Import(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Equal(t, safety.CodeNotFound, safety.CodeOf(err))
}

func TestImport_MergeDedupesAndSorts(t *testing.T) {
	s := seededStore(t, "one", "two")

	// Export and re-import into the same store: every record is a duplicate.
	exportPath := filepath.Join(t.TempDir(), "self.json")
	require.NoError(t, s.Export(exportPath))
	require.NoError(t, s.Import(exportPath))
	assert.Equal(t, 2, s.Len())

	// An import with one overlapping and one earlier record merges in order.
	other := testStore(t)
	require.NoError(t, other.Append(turnAt(time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC), memory.RoleUser, "earlier")))
	require.NoError(t, other.Append(s.Recent(1)[0]))
	otherPath := filepath.Join(t.TempDir(), "other.json")
	require.NoError(t, other.Export(otherPath))

	require.NoError(t, s.Import(otherPath))
	require.Equal(t, 3, s.Len())
	got := s.Recent(3)
	assert.Equal(t, "earlier", got[0].Text)
	assert.Equal(t, "one", got[1].Text)
	assert.Equal(t, "two", got[2].Text)
}

func TestImport_PersistsMerge(t *testing.T) {
	s := seededStore(t, "local")
	other := seededStore(t, "remote")
	exportPath := filepath.Join(t.TempDir(), "remote.json")
	require.NoError(t, other.Export(exportPath))

	require.NoError(t, s.Import(exportPath))
	reopened, err := memory.Open(s.Path(), zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 2, reopened.Len())
}
