// Package apperr defines the error kinds services return and the HTTP status
// each kind maps to.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
)

var statusByKind = map[Kind]int{
	KindBadRequest:   http.StatusBadRequest,
	KindUnauthorized: http.StatusUnauthorized,
	KindForbidden:    http.StatusForbidden,
	KindNotFound:     http.StatusNotFound,
	KindInternal:     http.StatusInternalServerError,
}

var defaultCode = map[Kind]string{
	KindBadRequest:   "invalid_request",
	KindUnauthorized: "unauthorized",
	KindForbidden:    "forbidden",
	KindNotFound:     "not_found",
	KindInternal:     "internal_error",
}

func (k Kind) Status() int {
	if s, ok := statusByKind[k]; ok {
		return s
	}
	return http.StatusInternalServerError
}

func (k Kind) String() string {
	return defaultCode[k]
}

type Error struct {
	Kind    Kind
	Code    string
	Message string
	Details any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Status() int { return e.Kind.Status() }

func newError(kind Kind, code, message string) *Error {
	if code == "" {
		code = defaultCode[kind]
	}
	return &Error{Kind: kind, Code: code, Message: message}
}

func BadRequest(code, message string) *Error {
	return newError(KindBadRequest, code, message)
}

func Unauthorized(code, message string) *Error {
	return newError(KindUnauthorized, code, message)
}

func Forbidden(message string) *Error {
	return newError(KindForbidden, "", message)
}

func NotFound(message string) *Error {
	return newError(KindNotFound, "", message)
}

// Internal wraps an unexpected failure. The cause is kept for logging and is
// never sent to clients.
func Internal(message string, err error) *Error {
	e := newError(KindInternal, "", message)
	e.Err = err
	return e
}

// WithDetails returns a copy of e carrying structured details.
func (e *Error) WithDetails(details any) *Error {
	cp := *e
	cp.Details = details
	return &cp
}

// From extracts an *Error from err. Anything else becomes an Internal error.
func From(err error) *Error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	return Internal("Internal server error", err)
}

func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
