// Package xerrors defines the shared error taxonomy threaded through the
// pattern matcher, IMR, query builder, and driver — the Go analogue of
// bowler.types.BowlerException and its subclasses.
package xerrors

import (
	"errors"
	"fmt"
)

// Hunk is a single contiguous unified-diff region, lines verbatim
// (including the leading "---"/"+++" headers bowler.types.Hunk carries
// on every element, reproduced here on the first two entries only).
type Hunk []string

// RefractError is the common base every domain error embeds, mirroring
// BowlerException's filename/hunks fields.
type RefractError struct {
	Message  string
	Filename string
	Hunks    []Hunk
	cause    error
}

func (e *RefractError) Error() string {
	if e.Filename != "" {
		return fmt.Sprintf("%s: %s", e.Filename, e.Message)
	}
	return e.Message
}

func (e *RefractError) Unwrap() error { return e.cause }

// ParseFailure means a source file did not parse. Recovered: the driver
// logs it and skips the file.
type ParseFailure struct{ RefractError }

func NewParseFailure(filename string, cause error) *ParseFailure {
	return &ParseFailure{RefractError{Message: "failed to parse", Filename: filename, cause: cause}}
}

// IMRError means a selector's captures were malformed for the IMR to build
// a FunctionSpec from (missing function_name/function_parameters). Bubbles
// to the driver; the file is skipped and the error surfaced to the user.
type IMRError struct{ RefractError }

func NewIMRError(message string) *IMRError {
	return &IMRError{RefractError{Message: message}}
}

// BadTransform means the rewritten text failed to parse. Carries the
// generated hunks so the driver can surface them without patching the file;
// causes a nonzero exit code.
type BadTransform struct{ RefractError }

func NewBadTransform(filename string, hunks []Hunk, cause error) *BadTransform {
	return &BadTransform{RefractError{
		Message: "transforms generated invalid output", Filename: filename, Hunks: hunks, cause: cause,
	}}
}

// RetryFile is returned by a callback that declines to act on a match; it
// is not a failure. The driver ignores it and goes on with the file's
// remaining callbacks and matches; the file is not requeued.
type RetryFile struct{ RefractError }

func NewRetryFile(filename string) *RetryFile {
	return &RetryFile{RefractError{Message: "retry requested", Filename: filename}}
}

// ErrQuit is raised by the interactive prompt ('q') to terminate the whole
// run; accumulated accepted hunks for the current file are applied first.
type ErrQuit struct{ RefractError }

func NewErrQuit() *ErrQuit {
	return &ErrQuit{RefractError{Message: "user requested quit"}}
}

// InvalidPattern is a programmer error: an invalid pattern-DSL string. It
// fails pattern compilation loudly and is never recovered from.
type InvalidPattern struct {
	RefractError
	Offending string
}

func NewInvalidPattern(offending string) *InvalidPattern {
	return &InvalidPattern{
		RefractError: RefractError{Message: fmt.Sprintf("invalid pattern near %q", offending)},
		Offending:    offending,
	}
}

// ErrUnimplemented marks a transform the original source stubs as a no-op
// with undocumented intent (move()); callers get an explicit error instead
// of a silent no-op.
type ErrUnimplemented struct{ RefractError }

func NewErrUnimplemented(what string) *ErrUnimplemented {
	return &ErrUnimplemented{RefractError{Message: fmt.Sprintf("%s is not implemented", what)}}
}

// IsRefractError reports whether err (or one it wraps) is a
// *RefractError-based type, mirroring BowlerException's role as a catch-all
// non-fatal category in the driver's propagation policy.
func IsRefractError(err error) bool {
	for ; err != nil; err = errors.Unwrap(err) {
		switch err.(type) {
		case *ParseFailure, *IMRError, *BadTransform, *RetryFile, *ErrQuit, *InvalidPattern, *ErrUnimplemented:
			return true
		}
	}
	return false
}
