// Package apperr defines the application error taxonomy. Services return
// these; pkg/response maps them to HTTP statuses so controllers never juggle
// status codes themselves.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for HTTP mapping.
type Kind int

const (
	// KindInternal is anything unexpected: store failures, bugs. → 500
	KindInternal Kind = iota
	// KindValidation covers malformed or missing input. → 400
	KindValidation
	// KindUnauthorized covers failed authentication. → 401
	KindUnauthorized
	// KindNotFound means no record matched the identifier. → 404
	KindNotFound
	// KindDomain is a business-rule violation (category with products,
	// duplicate email, illegal status transition). → 400
	KindDomain
)

// Error is a classified application error.
type Error struct {
	Kind Kind
	Msg  string
	Err  error // wrapped cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Validation builds a 400 validation error.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// NotFound builds a 404 error for the named entity.
func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Msg: entity + " not found"}
}

// Unauthorized builds a 401 error. Use the same message for every
// authentication failure cause so account existence is never leaked.
func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Msg: msg}
}

// Domain builds a 400 business-rule violation with a specific message.
func Domain(format string, args ...any) *Error {
	return &Error{Kind: KindDomain, Msg: fmt.Sprintf(format, args...)}
}

// Internal wraps an unexpected error.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Msg: msg, Err: err}
}

// KindOf returns the Kind of err, or KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// Message returns the caller-safe message of err. Unclassified errors get a
// generic message; the detail stays in logs.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Msg
	}
	return "Internal Server Error"
}
