package dombind

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Error codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType      = "invalid_type"
	CodeOverflow         = "overflow"
	CodeInvalidCharacter = "invalid_character"
	CodeInvalidEnum      = "invalid_enum"
	CodeProtocolMisuse   = "protocol_misuse"
	CodeNonFinite        = "non_finite_number"
	CodeDepthExceeded    = "depth_exceeded"
	CodeUnsupportedType  = "unsupported_type"
	CodeParseError       = "parse_error"
)

// Error is a single conversion failure. Propagation is short-circuit: the
// first error anywhere in a traversal aborts the whole conversion.
type Error struct {
	Path    string // JSON Pointer to the offending node ("" for the root).
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error.
}

func (e *Error) Error() string {
	path := e.Path
	if path == "" {
		path = "/"
	}
	return fmt.Sprintf("%s at %s: %s", e.Code, path, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// CodeOf extracts the error code when err is (or wraps) an *Error.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func newError(code, path, format string, args ...any) *Error {
	return &Error{Code: code, Path: path, Message: fmt.Sprintf(format, args...)}
}

// childPath extends a JSON Pointer with an object key, escaping per RFC 6901.
func childPath(path, key string) string {
	key = strings.ReplaceAll(strings.ReplaceAll(key, "~", "~0"), "/", "~1")
	return path + "/" + key
}

// indexPath extends a JSON Pointer with an array index.
func indexPath(path string, i int) string {
	return path + "/" + strconv.Itoa(i)
}
