package executor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/polo-ai/polo/internal/fsops"
	"github.com/polo-ai/polo/internal/safety"
)

// ReadFile returns the full contents of path, subject to the configured size
// ceiling.
func (e *Executor) ReadFile(ctx context.Context, path string) ToolResult {
	start := time.Now()
	abs, err := safety.ResolvePath(e.opts.WorkspaceRoot, path)
	if err != nil {
		return e.record(ctx, "read_file", path, fail(err, time.Since(start)))
	}
	content, err := fsops.ReadFile(abs, e.opts.MaxFileSize)
	if err != nil {
		return e.record(ctx, "read_file", path, fail(err, time.Since(start)))
	}
	return e.record(ctx, "read_file", path, ToolResult{
		Success:  true,
		Output:   content,
		Duration: time.Since(start),
	})
}

// WriteFile writes content to path, creating parents, refusing an existing
// target unless overwrite is set.
func (e *Executor) WriteFile(ctx context.Context, path, content string, overwrite bool) ToolResult {
	start := time.Now()
	abs, err := safety.ResolvePath(e.opts.WorkspaceRoot, path)
	if err != nil {
		return e.record(ctx, "write_file", path, fail(err, time.Since(start)))
	}
	if err := fsops.WriteFile(abs, content, overwrite); err != nil {
		return e.record(ctx, "write_file", path, fail(err, time.Since(start)))
	}
	return e.record(ctx, "write_file", path, ToolResult{
		Success:  true,
		Output:   fmt.Sprintf("wrote %d bytes to %s", len(content), path),
		Duration: time.Since(start),
	})
}

// ListDirectory lists path's entries with kind and size.
func (e *Executor) ListDirectory(ctx context.Context, path string) ToolResult {
	start := time.Now()
	abs, err := safety.ResolvePath(e.opts.WorkspaceRoot, path)
	if err != nil {
		return e.record(ctx, "list_directory", path, fail(err, time.Since(start)))
	}
	entries, err := fsops.ListDir(abs)
	if err != nil {
		return e.record(ctx, "list_directory", path, fail(err, time.Since(start)))
	}

	var b strings.Builder
	dirs, files := 0, 0
	var total int64
	for _, en := range entries {
		if en.Dir {
			dirs++
			fmt.Fprintf(&b, "%10s  %s/\n", "<DIR>", en.Name)
		} else {
			files++
			total += en.Size
			fmt.Fprintf(&b, "%10s  %s\n", formatSize(en.Size), en.Name)
		}
	}
	fmt.Fprintf(&b, "%d dirs, %d files, %s total", dirs, files, formatSize(total))
	return e.record(ctx, "list_directory", path, ToolResult{
		Success:  true,
		Output:   b.String(),
		Duration: time.Since(start),
	})
}

// CopyFile copies src to dst.
func (e *Executor) CopyFile(ctx context.Context, src, dst string, overwrite bool) ToolResult {
	start := time.Now()
	args := src + " -> " + dst
	absSrc, err := safety.ResolvePath(e.opts.WorkspaceRoot, src)
	if err != nil {
		return e.record(ctx, "copy_file", args, fail(err, time.Since(start)))
	}
	absDst, err := safety.ResolvePath(e.opts.WorkspaceRoot, dst)
	if err != nil {
		return e.record(ctx, "copy_file", args, fail(err, time.Since(start)))
	}
	n, err := fsops.CopyFile(absSrc, absDst, overwrite)
	if err != nil {
		return e.record(ctx, "copy_file", args, fail(err, time.Since(start)))
	}
	return e.record(ctx, "copy_file", args, ToolResult{
		Success:  true,
		Output:   fmt.Sprintf("copied %s (%s)", args, formatSize(n)),
		Duration: time.Since(start),
	})
}

// MoveFile moves src to dst, atomically where the filesystem allows.
func (e *Executor) MoveFile(ctx context.Context, src, dst string, overwrite bool) ToolResult {
	start := time.Now()
	args := src + " -> " + dst
	absSrc, err := safety.ResolvePath(e.opts.WorkspaceRoot, src)
	if err != nil {
		return e.record(ctx, "move_file", args, fail(err, time.Since(start)))
	}
	absDst, err := safety.ResolvePath(e.opts.WorkspaceRoot, dst)
	if err != nil {
		return e.record(ctx, "move_file", args, fail(err, time.Since(start)))
	}
	if err := fsops.MoveFile(absSrc, absDst, overwrite); err != nil {
		return e.record(ctx, "move_file", args, fail(err, time.Since(start)))
	}
	return e.record(ctx, "move_file", args, ToolResult{
		Success:  true,
		Output:   "moved " + args,
		Duration: time.Since(start),
	})
}

// DeleteFile removes a file, or a directory tree when force is set.
func (e *Executor) DeleteFile(ctx context.Context, path string, force bool) ToolResult {
	start := time.Now()
	abs, err := safety.ResolvePath(e.opts.WorkspaceRoot, path)
	if err != nil {
		return e.record(ctx, "delete_file", path, fail(err, time.Since(start)))
	}
	if err := fsops.DeleteFile(abs, force); err != nil {
		return e.record(ctx, "delete_file", path, fail(err, time.Since(start)))
	}
	return e.record(ctx, "delete_file", path, ToolResult{
		Success:  true,
		Output:   "deleted " + path,
		Duration: time.Since(start),
	})
}

// FindFiles searches root recursively for base names matching pattern.
func (e *Executor) FindFiles(ctx context.Context, pattern, root string) ToolResult {
	start := time.Now()
	args := pattern + " in " + root
	abs, err := safety.ResolvePath(e.opts.WorkspaceRoot, root)
	if err != nil {
		return e.record(ctx, "find_files", args, fail(err, time.Since(start)))
	}
	matches, err := fsops.FindFiles(abs, pattern, e.opts.FindLimit)
	if err != nil {
		return e.record(ctx, "find_files", args, fail(err, time.Since(start)))
	}

	var out string
	if len(matches) == 0 {
		out = "no files matching " + pattern
	} else {
		out = strings.Join(matches, "\n")
		if len(matches) >= e.opts.FindLimit {
			out += fmt.Sprintf("\n(first %d results only)", e.opts.FindLimit)
		}
	}
	return e.record(ctx, "find_files", args, ToolResult{
		Success:  true,
		Output:   out,
		Duration: time.Since(start),
	})
}

func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGT"[exp])
}
