// Package errors wraps github.com/pkg/errors so that every error created or
// wrapped in this module carries a stack trace, while still re-exporting the
// standard library helpers.
package errors

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
)

// New returns an error with the supplied message and the caller's stack.
func New(text string) error {
	return pkgerrors.New(text) //nolint:err113
}

// Errorf formats according to a format specifier and records the stack.
func Errorf(format string, vals ...any) error {
	return pkgerrors.Errorf(format, vals...) //nolint:err113
}

// Wrap annotates cause with text. It returns nil if cause is nil.
func Wrap(cause error, text string) error {
	return pkgerrors.Wrap(cause, text)
}

// Wrapf annotates cause with a formatted message. It returns nil if cause is nil.
func Wrapf(cause error, format string, vals ...any) error {
	return pkgerrors.Wrapf(cause, format, vals...)
}

// Cause returns the innermost error that does not implement Cause.
func Cause(err error) error {
	return pkgerrors.Cause(err)
}

// Unwrap calls [errors.Unwrap].
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// Join calls [errors.Join].
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// Is calls [errors.Is].
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As calls [errors.As].
func As(err error, target any) bool {
	return errors.As(err, target)
}
