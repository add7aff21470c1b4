package fsops

import (
	"os"
	"sort"

	"github.com/polo-ai/polo/internal/safety"
)

// Entry is one directory listing row.
type Entry struct {
	Name string `json:"name"`
	Dir  bool   `json:"dir"`
	Size int64  `json:"size"`
}

// ListDir returns the entries of absPath sorted by name. Directories report
// size 0; entry sizes come from Lstat so a broken symlink does not fail the
// whole listing.
func ListDir(absPath string) ([]Entry, error) {
	fi, err := os.Stat(absPath)
	if err != nil {
		return nil, safety.MapFSError(err, absPath)
	}
	if !fi.IsDir() {
		return nil, safety.NewError(safety.CodeNotADirectory, "not a directory: "+absPath)
	}

	des, err := os.ReadDir(absPath)
	if err != nil {
		return nil, safety.MapFSError(err, absPath)
	}

	entries := make([]Entry, 0, len(des))
	for _, de := range des {
		e := Entry{Name: de.Name(), Dir: de.IsDir()}
		if !de.IsDir() {
			if info, err := de.Info(); err == nil {
				e.Size = info.Size()
			}
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}
