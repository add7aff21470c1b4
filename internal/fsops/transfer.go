package fsops

import (
	"io"
	"os"
	"path/filepath"

	"github.com/polo-ai/polo/internal/safety"
)

// CopyFile copies src to dst, creating dst's parent directories. An existing
// destination is refused unless overwrite is set. The copy lands via a temp
// file + rename so a partial copy never shadows an existing destination.
func CopyFile(src, dst string, overwrite bool) (int64, error) {
	sfi, err := os.Stat(src)
	if err != nil {
		return 0, safety.MapFSError(err, src)
	}
	if sfi.IsDir() {
		return 0, safety.NewError(safety.CodeNotAFile, "source is a directory: "+src)
	}
	if err := checkDest(dst, overwrite); err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return 0, safety.MapFSError(err, dst)
	}

	in, err := os.Open(src)
	if err != nil {
		return 0, safety.MapFSError(err, src)
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".tmp-*")
	if err != nil {
		return 0, safety.MapFSError(err, dst)
	}
	tmpName := tmp.Name()
	n, err := io.Copy(tmp, in)
	if err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return 0, safety.MapFSError(err, dst)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return 0, safety.MapFSError(err, dst)
	}
	if err := os.Chmod(tmpName, sfi.Mode().Perm()); err != nil {
		os.Remove(tmpName)
		return 0, safety.MapFSError(err, dst)
	}
	if err := os.Rename(tmpName, dst); err != nil {
		os.Remove(tmpName)
		return 0, safety.MapFSError(err, dst)
	}
	return n, nil
}

// MoveFile moves src to dst. Rename is attempted first; when the filesystem
// refuses (cross-device), it degrades to copy-then-delete with cleanup of the
// destination if the source removal fails.
func MoveFile(src, dst string, overwrite bool) error {
	if _, err := os.Stat(src); err != nil {
		return safety.MapFSError(err, src)
	}
	if err := checkDest(dst, overwrite); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return safety.MapFSError(err, dst)
	}

	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	if _, err := CopyFile(src, dst, overwrite); err != nil {
		return err
	}
	if err := os.Remove(src); err != nil {
		// Keep exactly one copy: the move failed, so drop the new one.
		os.Remove(dst)
		return safety.MapFSError(err, src)
	}
	return nil
}

// DeleteFile removes a file, or a directory tree when force is set.
func DeleteFile(absPath string, force bool) error {
	fi, err := os.Stat(absPath)
	if err != nil {
		return safety.MapFSError(err, absPath)
	}
	if fi.IsDir() {
		if !force {
			return safety.NewError(safety.CodeConfirmationRequired, "target is a directory; pass force to delete it: "+absPath)
		}
		if err := os.RemoveAll(absPath); err != nil {
			return safety.MapFSError(err, absPath)
		}
		return nil
	}
	if err := os.Remove(absPath); err != nil {
		return safety.MapFSError(err, absPath)
	}
	return nil
}

func checkDest(dst string, overwrite bool) error {
	if _, err := os.Stat(dst); err == nil {
		if !overwrite {
			return safety.NewError(safety.CodeAlreadyExists, "destination already exists: "+dst)
		}
	} else if !os.IsNotExist(err) {
		return safety.MapFSError(err, dst)
	}
	return nil
}
