// Package fsops implements the filesystem primitives behind the file tools.
// All paths are absolute and already validated by safety; every failure is
// mapped onto the safety taxonomy before it leaves this package.
package fsops

import (
	"fmt"
	"os"

	"github.com/polo-ai/polo/internal/safety"
)

// ReadFile returns the full contents of absPath. Files larger than maxSize
// bytes are refused before reading to protect memory.
func ReadFile(absPath string, maxSize int64) (string, error) {
	fi, err := os.Stat(absPath)
	if err != nil {
		return "", safety.MapFSError(err, absPath)
	}
	if fi.IsDir() {
		return "", safety.NewError(safety.CodeNotAFile, "path is a directory: "+absPath)
	}
	if maxSize > 0 && fi.Size() > maxSize {
		return "", safety.NewError(safety.CodeTooLarge,
			fmt.Sprintf("file is %d bytes, exceeds the %d byte read ceiling", fi.Size(), maxSize))
	}
	b, err := os.ReadFile(absPath)
	if err != nil {
		return "", safety.MapFSError(err, absPath)
	}
	return string(b), nil
}
