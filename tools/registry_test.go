package tools_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polo-ai/polo/internal/executor"
	"github.com/polo-ai/polo/tools"
)

func testRegistry(t *testing.T) []tools.ToolDefinition {
	t.Helper()
	e := executor.New(executor.Options{}, zerolog.Nop(), nil)
	return tools.Registry(e)
}

func TestRegistry_AllToolsPresent(t *testing.T) {
	defs := testRegistry(t)
	want := []string{
		"run_command", "read_file", "write_file", "list_directory",
		"copy_file", "move_file", "delete_file", "find_files", "system_info",
	}
	require.Len(t, defs, len(want))
	for _, name := range want {
		def, ok := tools.Find(defs, name)
		require.True(t, ok, "tool %s missing", name)
		assert.Equal(t, name, def.Name)
		assert.NotEmpty(t, def.Description)
		require.NotNil(t, def.InputSchema, "tool %s has no schema", name)
		assert.Equal(t, "object", def.InputSchema.Type)
		assert.NotNil(t, def.Function)
	}
}

func TestFind_Unknown(t *testing.T) {
	_, ok := tools.Find(testRegistry(t), "teleport")
	assert.False(t, ok)
}

func TestToolFunction_BadInput(t *testing.T) {
	defs := testRegistry(t)
	for _, name := range []string{"run_command", "read_file", "write_file"} {
		def, ok := tools.Find(defs, name)
		require.True(t, ok)
		res := def.Function(context.Background(), json.RawMessage(`{not json`))
		assert.False(t, res.Success, "tool %s", name)
		assert.Equal(t, "ERR_INVALID_INPUT", res.ErrorCode(), "tool %s", name)
	}
}

func TestToolFunction_EndToEnd(t *testing.T) {
	defs := testRegistry(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.txt")
	require.NoError(t, os.WriteFile(path, []byte("from disk"), 0o644))

	def, ok := tools.Find(defs, "read_file")
	require.True(t, ok)

	input, err := json.Marshal(tools.ReadFileInput{Path: path})
	require.NoError(t, err)
	res := def.Function(context.Background(), input)
	require.True(t, res.Success, "%v", res.Err)
	assert.Equal(t, "from disk", res.Output)
}

func TestGenerateSchema(t *testing.T) {
	s := tools.GenerateSchema[tools.RunCommandInput]()
	require.NotNil(t, s)
	assert.Equal(t, "object", s.Type)
	_, ok := s.Properties.Get("command")
	assert.True(t, ok)
}
