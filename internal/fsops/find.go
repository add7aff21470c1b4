package fsops

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/polo-ai/polo/internal/safety"
)

// FindFiles walks absRoot and returns paths (relative to absRoot) whose base
// name matches the glob pattern. Hidden entries are skipped and the result is
// capped at maxResults. Unreadable subtrees are skipped, not fatal.
func FindFiles(absRoot, pattern string, maxResults int) ([]string, error) {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, safety.NewError(safety.CodeInvalidInput, "bad glob pattern: "+pattern)
	}
	if _, err := ListDir(absRoot); err != nil {
		return nil, err
	}
	if maxResults <= 0 {
		maxResults = 50
	}

	var results []string
	err := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if path == absRoot {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if ok, _ := filepath.Match(pattern, d.Name()); ok {
			rel, relErr := filepath.Rel(absRoot, path)
			if relErr != nil {
				return nil
			}
			results = append(results, rel)
			if len(results) >= maxResults {
				return fs.SkipAll
			}
		}
		return nil
	})
	if err != nil {
		return nil, safety.MapFSError(err, absRoot)
	}
	return results, nil
}
