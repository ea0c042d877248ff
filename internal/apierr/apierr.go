package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Codes used across the service. Handlers map them onto HTTP statuses,
// the fact consumer maps them onto drop-vs-retry decisions.
const (
	CodeNotFound           = "not_found"
	CodePreconditionFailed = "precondition_failed"
	CodeInvalidArgument    = "invalid_argument"
	CodeUnauthorized       = "unauthorized"
	CodePermissionDenied   = "permission_denied"
	CodeInternal           = "internal"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func NotFound(err error) *Error {
	return New(http.StatusNotFound, CodeNotFound, err)
}

func PreconditionFailed(err error) *Error {
	return New(http.StatusPreconditionFailed, CodePreconditionFailed, err)
}

func InvalidArgument(err error) *Error {
	return New(http.StatusBadRequest, CodeInvalidArgument, err)
}

func Unauthorized(err error) *Error {
	return New(http.StatusUnauthorized, CodeUnauthorized, err)
}

func PermissionDenied(err error) *Error {
	return New(http.StatusForbidden, CodePermissionDenied, err)
}

func Internal(err error) *Error {
	return New(http.StatusInternalServerError, CodeInternal, err)
}

// As unwraps err down to the taxonomy error if one is in the chain.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// CodeOf returns the taxonomy code of err, or CodeInternal for plain errors.
func CodeOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Code != "" {
		return ae.Code
	}
	return CodeInternal
}

// IsRetryable reports whether redelivering the same fact could succeed.
// Structural and state errors cannot be fixed by retrying.
func IsRetryable(err error) bool {
	switch CodeOf(err) {
	case CodeInvalidArgument, CodeNotFound, CodePreconditionFailed, CodePermissionDenied:
		return false
	default:
		return true
	}
}
