// Package errs defines the error kinds reported by the generators. Every kind
// is fatal for a single invocation; the CLI maps them to exit status 1.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a generator failure.
type Kind string

const (
	InvalidName      Kind = "InvalidName"
	AlreadyExists    Kind = "AlreadyExists"
	TargetExists     Kind = "TargetExists"
	RepoRootNotFound Kind = "RepoRootNotFound"
	MissingFile      Kind = "MissingFile"
	InvalidJSON      Kind = "InvalidJSON"
	PreflightFailed  Kind = "PreflightFailed"
	Internal         Kind = "Internal"
)

// Error is a classified generator error.
type Error struct {
	Kind  Kind
	Msg   string
	Cause error
}

// Error returns the human-readable message, followed by the cause if any.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
	}
	return e.Msg
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an Error with the given kind and message.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf creates an Error with a formatted message.
func Newf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error wrapping an underlying error.
func Wrap(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Msg: msg, Cause: err}
}

// KindOf extracts the kind from err, or "" if err is not (and does not wrap) an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// ExitCode returns the process exit status for err.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
