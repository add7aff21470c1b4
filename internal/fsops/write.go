package fsops

import (
	"os"
	"path/filepath"

	"github.com/polo-ai/polo/internal/safety"
)

// WriteFile writes content to absPath, creating parent directories as needed.
// When overwrite is false an existing target is refused. The write goes
// through a temp file in the same directory followed by a rename, so a crash
// never leaves a half-written target.
func WriteFile(absPath, content string, overwrite bool) error {
	if _, err := os.Stat(absPath); err == nil {
		if !overwrite {
			return safety.NewError(safety.CodeAlreadyExists, "refusing to overwrite existing file: "+absPath)
		}
	} else if !os.IsNotExist(err) {
		return safety.MapFSError(err, absPath)
	}

	dir := filepath.Dir(absPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return safety.MapFSError(err, dir)
	}
	return AtomicWrite(absPath, []byte(content))
}

// AtomicWrite commits data to absPath via temp file + rename. The rename is
// the commit point; on any earlier failure the temp file is removed and the
// previous target contents are untouched.
func AtomicWrite(absPath string, data []byte) error {
	dir := filepath.Dir(absPath)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(absPath)+".tmp-*")
	if err != nil {
		return safety.MapFSError(err, dir)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return safety.MapFSError(err, tmpName)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return safety.MapFSError(err, tmpName)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return safety.MapFSError(err, tmpName)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return safety.MapFSError(err, tmpName)
	}
	if err := os.Rename(tmpName, absPath); err != nil {
		os.Remove(tmpName)
		return safety.MapFSError(err, absPath)
	}
	return nil
}
