// Package errs defines the error taxonomy shared by the fsql packages.
//
// Every failure surfaced by the engine is one of three kinds:
//   - IO: a directory could not be listed or a path could not be read
//   - Parse: the statement text was rejected by the parser
//   - General: a semantic failure such as an unknown column, an unsupported
//     expression shape or mismatched operand types
//
// Callers match kinds with errors.Is against ErrIO, ErrParse and ErrGeneral.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an Error
type Kind int

const (
	KindGeneral Kind = iota
	KindIO
	KindParse
)

// String returns the kind name used as the message prefix
func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io error"
	case KindParse:
		return "parse error"
	default:
		return "general error"
	}
}

var (
	// ErrIO matches any IO kind error
	ErrIO = errors.New("io error")

	// ErrParse matches any Parse kind error
	ErrParse = errors.New("parse error")

	// ErrGeneral matches any General kind error
	ErrGeneral = errors.New("general error")
)

// Error is a classified engine error with an optional cause
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind
func (e *Error) Is(target error) bool {
	switch target {
	case ErrIO:
		return e.Kind == KindIO
	case ErrParse:
		return e.Kind == KindParse
	case ErrGeneral:
		return e.Kind == KindGeneral
	}
	return false
}

// IO wraps a filesystem failure
func IO(err error, format string, args ...any) error {
	return &Error{Kind: KindIO, Msg: fmt.Sprintf(format, args...), Err: err}
}

// Parse wraps a parser failure
func Parse(err error, format string, args ...any) error {
	return &Error{Kind: KindParse, Msg: fmt.Sprintf(format, args...), Err: err}
}

// General creates a semantic failure
func General(format string, args ...any) error {
	return &Error{Kind: KindGeneral, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of the first classified error in err's chain.
// Unclassified errors report KindGeneral.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindGeneral
}
