// Package errors wraps github.com/pkg/errors so that attribute and CLI
// errors carry a stack trace, and re-exports the std Is/As helpers so
// callers need only one errors import.
package errors

import (
	stderrors "errors"

	"github.com/pkg/errors"
)

// New creates a new error based on message. Wrapped so that this package does
// not appear in the stack trace.
var New = errors.New

// Errorf creates an error based on a format string and values.
var Errorf = errors.Errorf

// Wrap wraps an error returned by the operating system or a library.
var Wrap = errors.Wrap

// Wrapf returns an error annotating err with the format specifier. If err is
// nil, Wrapf returns nil.
var Wrapf = errors.Wrapf

// WithStack annotates err with a stack trace at the point WithStack was called.
// If err is nil, WithStack returns nil.
var WithStack = errors.WithStack

// As finds the first error in err's tree that matches target.
func As(err error, tgt interface{}) bool { return stderrors.As(err, tgt) }

// Is reports whether any error in err's tree matches target.
func Is(x, y error) bool { return stderrors.Is(x, y) }

// ErrUnsupported is the std sentinel that syscall errnos such as ENOTSUP
// and ENOSYS match.
var ErrUnsupported = stderrors.ErrUnsupported
