package fsops_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polo-ai/polo/internal/fsops"
	"github.com/polo-ai/polo/internal/safety"
)

func TestReadFile_SizeCeiling(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("0123456789"), 0o644))

	content, err := fsops.ReadFile(path, 10)
	require.NoError(t, err)
	assert.Equal(t, "0123456789", content)

	_, err = fsops.ReadFile(path, 9)
	assert.Equal(t, safety.CodeTooLarge, safety.CodeOf(err))

	// Zero ceiling means unbounded.
	_, err = fsops.ReadFile(path, 0)
	assert.NoError(t, err)
}

func TestWriteFile_CreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "c.txt")
	require.NoError(t, fsops.WriteFile(path, "deep", false))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "deep", string(b))
}

func TestAtomicWrite_NoTempLeftBehind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	require.NoError(t, fsops.AtomicWrite(path, []byte("v1")))
	require.NoError(t, fsops.AtomicWrite(path, []byte("v2")))

	des, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, des, 1)
	assert.Equal(t, "out.txt", des[0].Name())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(b))
}

func TestListDir_SortedWithSizes(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "zz.txt"), []byte("123"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "aa"), 0o755))

	entries, err := fsops.ListDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, fsops.Entry{Name: "aa", Dir: true, Size: 0}, entries[0])
	assert.Equal(t, fsops.Entry{Name: "zz.txt", Dir: false, Size: 3}, entries[1])
}

func TestCopyFile_PreservesMode(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "run.sh")
	dst := filepath.Join(dir, "run-copy.sh")
	require.NoError(t, os.WriteFile(src, []byte("#!/bin/sh\n"), 0o755))

	n, err := fsops.CopyFile(src, dst, false)
	require.NoError(t, err)
	assert.Equal(t, int64(10), n)

	fi, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), fi.Mode().Perm())
}

func TestCopyFile_DirectorySource(t *testing.T) {
	dir := t.TempDir()
	_, err := fsops.CopyFile(dir, filepath.Join(dir, "copy"), false)
	assert.Equal(t, safety.CodeNotAFile, safety.CodeOf(err))
}

func TestFindFiles_BadPattern(t *testing.T) {
	_, err := fsops.FindFiles(t.TempDir(), "[", 10)
	assert.Equal(t, safety.CodeInvalidInput, safety.CodeOf(err))
}

func TestFindFiles_SkipsHiddenDirs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git", "config.go"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), nil, 0o644))

	matches, err := fsops.FindFiles(dir, "*.go", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"main.go"}, matches)
}

func TestFindFiles_MissingRoot(t *testing.T) {
	_, err := fsops.FindFiles(filepath.Join(t.TempDir(), "nope"), "*", 10)
	assert.Equal(t, safety.CodeNotFound, safety.CodeOf(err))
}
