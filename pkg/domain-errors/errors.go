// Package domainerrors provides coded, user-facing errors for the service
// boundary. Services translate sentinel errors and validation outcomes into
// these; httputil maps codes onto HTTP statuses.
package domainerrors

import "errors"

// Code identifies the class of a domain error.
type Code string

const (
	CodeBadRequest         Code = "bad_request"
	CodeValidationFailed   Code = "validation_failed"
	CodePreconditionFailed Code = "precondition_failed"
	CodeNetworkError       Code = "network_error"
	CodeServerRejected     Code = "server_rejected"
	CodeNotFound           Code = "not_found"
	CodeConflict           Code = "conflict"
	CodeUnauthorized       Code = "unauthorized"
	CodeInternal           Code = "internal_error"
)

// Error carries a machine-readable code plus a human description. The
// description for CodeServerRejected is the remote server's message verbatim.
type Error struct {
	Code        Code
	Description string
	wrapped     error
}

func (e *Error) Error() string {
	if e.Description == "" {
		return string(e.Code)
	}
	return string(e.Code) + ": " + e.Description
}

func (e *Error) Unwrap() error { return e.wrapped }

// New creates a domain error with the given code and description.
func New(code Code, description string) *Error {
	return &Error{Code: code, Description: description}
}

// Wrap creates a domain error that preserves the underlying cause for
// errors.Is/errors.As chains.
func Wrap(code Code, description string, err error) *Error {
	return &Error{Code: code, Description: description, wrapped: err}
}

// Is reports whether err is a domain error with the given code.
func Is(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for
// non-domain errors.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}
