// Package safety provides the error taxonomy and optional workspace confinement
// for file and command tools.
package safety

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// InitWorkspaceRoot resolves the absolute confinement root. An empty root
// disables confinement and ResolvePath passes paths through unchanged.
func InitWorkspaceRoot(root string) (string, error) {
	if root == "" {
		return "", nil
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("abs(workspace_root): %w", err)
	}
	// Resolve symlinks where possible so boundary checks are reliable.
	if r, err := filepath.EvalSymlinks(abs); err == nil {
		abs = r
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("workspace_root: %w", err)
	}
	if !fi.IsDir() {
		return "", fmt.Errorf("workspace_root %s is not a directory", abs)
	}
	return abs, nil
}

// ResolvePath normalises p for tool use. With no root configured, relative
// paths resolve against the current directory and absolute paths pass through.
// With a root, absolute inputs are rejected and the resolved path must stay
// inside the root; escapes via .. or symlinked parents return a ToolError.
func ResolvePath(absRoot, p string) (string, error) {
	if p == "" {
		p = "."
	}
	if absRoot == "" {
		abs, err := filepath.Abs(p)
		if err != nil {
			return "", ToolError{Code: CodeInvalidInput, Message: "unresolvable path: " + p}
		}
		return abs, nil
	}

	if filepath.IsAbs(p) {
		return "", ToolError{Code: CodeOutsideSandbox, Message: "absolute paths are not allowed inside a workspace root"}
	}

	candidate := filepath.Join(absRoot, filepath.Clean(p))

	// Best-effort symlink resolution: the whole candidate when it exists,
	// otherwise its deepest existing ancestor so a symlinked parent cannot
	// smuggle the path outside the root.
	if resolved, err := filepath.EvalSymlinks(candidate); err == nil {
		candidate = resolved
	} else {
		parent := filepath.Dir(candidate)
		if resolvedParent, err2 := filepath.EvalSymlinks(parent); err2 == nil {
			candidate = filepath.Join(resolvedParent, filepath.Base(candidate))
		}
	}

	rel, err := filepath.Rel(absRoot, candidate)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", ToolError{Code: CodeOutsideSandbox, Message: "requested path resolves outside the workspace root"}
	}
	return candidate, nil
}
