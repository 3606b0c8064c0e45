// Package apperr defines the error type used throughout tomato
package apperr

import "fmt"

// Error pairs a user-facing message with an optional underlying cause.
type Error struct {
	Cause   error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Fmt returns a copy of the error with its message formatted with the given
// arguments.
func (e *Error) Fmt(args ...any) *Error {
	return &Error{
		Cause:   e.Cause,
		Message: fmt.Sprintf(e.Message, args...),
	}
}

// Wrap returns a copy of the error with the given cause attached.
func (e *Error) Wrap(cause error) *Error {
	return &Error{
		Cause:   cause,
		Message: e.Message,
	}
}
