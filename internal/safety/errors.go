package safety

import (
	"encoding/json"
	"errors"
	"io/fs"
	"syscall"
)

// Taxonomy codes surfaced by the executor and the memory store. Callers match
// on Code rather than message text.
const (
	CodeNotFound             = "ERR_NOT_FOUND"
	CodeAlreadyExists        = "ERR_ALREADY_EXISTS"
	CodePermissionDenied     = "ERR_PERMISSION_DENIED"
	CodeTimeout              = "ERR_TIMEOUT"
	CodeTooLarge             = "ERR_TOO_LARGE"
	CodeNotADirectory        = "ERR_NOT_A_DIRECTORY"
	CodeNotAFile             = "ERR_NOT_A_FILE"
	CodeStorage              = "ERR_STORAGE"
	CodeSchema               = "ERR_SCHEMA"
	CodeConfirmationRequired = "ERR_CONFIRMATION_REQUIRED"
	CodeUnknownTool          = "ERR_UNKNOWN_TOOL"
	CodeOutsideSandbox       = "ERR_PATH_OUTSIDE_SANDBOX"
	CodeInvalidInput         = "ERR_INVALID_INPUT"
)

// ToolError is a machine-readable error body surfaced back to the user as JSON.
type ToolError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error returns a compact, single-line JSON string to keep result payloads small.
func (e ToolError) Error() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// NewError builds a ToolError with the given taxonomy code.
func NewError(code, message string) ToolError {
	return ToolError{Code: code, Message: message}
}

// CodeOf extracts the taxonomy code from err, or "" when err carries none.
func CodeOf(err error) string {
	var te ToolError
	if errors.As(err, &te) {
		return te.Code
	}
	return ""
}

// MapFSError converts a filesystem error into a taxonomy ToolError.
// Unrecognised errors map to CodeStorage so nothing escapes untyped.
func MapFSError(err error, path string) ToolError {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ToolError{Code: CodeNotFound, Message: "no such file or directory: " + path}
	case errors.Is(err, fs.ErrPermission):
		return ToolError{Code: CodePermissionDenied, Message: "permission denied: " + path}
	case errors.Is(err, fs.ErrExist):
		return ToolError{Code: CodeAlreadyExists, Message: "already exists: " + path}
	case isNotDir(err):
		return ToolError{Code: CodeNotADirectory, Message: "not a directory: " + path}
	default:
		return ToolError{Code: CodeStorage, Message: err.Error()}
	}
}

func isNotDir(err error) bool {
	return errors.Is(err, syscall.ENOTDIR)
}
