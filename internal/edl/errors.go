package edl

import (
	"errors"
	"fmt"
)

// Kind is the closed set of failure categories a conversion can hit.
type Kind int

const (
	// KindNotFound - an expected file or directory is absent
	KindNotFound Kind = iota
	// KindParse - the manifest is malformed
	KindParse
	// KindValidation - wrong classification, missing metadata fields,
	// empty timestamp series, unknown manifest type
	KindValidation
	// KindExternalTool - ffprobe/ffmpeg failed; reported, never raised
	// on the main conversion path
	KindExternalTool
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindParse:
		return "parse error"
	case KindValidation:
		return "validation error"
	case KindExternalTool:
		return "external tool error"
	}
	return "unknown"
}

// Error carries a Kind so callers can branch on the category without
// matching message strings.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func ParseErr(msg string, err error) *Error {
	return &Error{Kind: KindParse, Msg: msg, Err: err}
}

func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func ExternalTool(msg string, err error) *Error {
	return &Error{Kind: KindExternalTool, Msg: msg, Err: err}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}
