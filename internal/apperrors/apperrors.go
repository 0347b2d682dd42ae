package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the HTTP error handler can map it to a
// status code in exactly one place.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuth
	KindForbidden
	KindNotFound
	KindConflict
)

// Error is the failure type raised by services and handlers. It carries
// a Kind for status mapping, a client-facing message, and an optional
// wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports a request with missing or malformed required fields.
func Validation(message string, err error) *Error {
	return &Error{Kind: KindValidation, Message: message, Err: err}
}

// Auth reports a missing, invalid, or expired credential.
func Auth(message string, err error) *Error {
	return &Error{Kind: KindAuth, Message: message, Err: err}
}

// Forbidden reports an authenticated caller acting on a resource it
// does not own.
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// NotFound reports a resource id with no matching record.
func NotFound(message string, err error) *Error {
	return &Error{Kind: KindNotFound, Message: message, Err: err}
}

// Conflict reports a uniqueness violation such as a duplicate email.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Internal reports an unclassified fault (store unreachable, etc.).
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf extracts the Kind from err, or KindInternal if err is not an
// *Error from this package.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
