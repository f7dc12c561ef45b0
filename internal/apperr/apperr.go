// Package apperr defines the error taxonomy shared by every layer.
//
// Codes are grouped by category prefix: 01xx validation, 02xx not found,
// 03xx conflict, 04xx server, 05xx unauthorized. The code→status and
// code→message tables are package-level constants built once at init and
// never mutated afterwards.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies one error condition at the API boundary.
type Code string

const (
	CodeMissingRequiredField Code = "0101"
	CodeNoUpdatableFields    Code = "0102"
	CodeInvalidParameter     Code = "0103"
	CodeInvalidTimeFormat    Code = "0104"
	CodeInvalidLanguage      Code = "0105"
	CodeInvalidNumeric       Code = "0106"
	CodeNotFound             Code = "0201"
	CodeDuplicateRecord      Code = "0301"
	CodeServerError          Code = "0401"
	CodeUnauthorized         Code = "0501"
)

var statusByCode = map[Code]int{
	CodeMissingRequiredField: http.StatusBadRequest,
	CodeNoUpdatableFields:    http.StatusBadRequest,
	CodeInvalidParameter:     http.StatusBadRequest,
	CodeInvalidTimeFormat:    http.StatusBadRequest,
	CodeInvalidLanguage:      http.StatusBadRequest,
	CodeInvalidNumeric:       http.StatusBadRequest,
	CodeNotFound:             http.StatusNotFound,
	CodeDuplicateRecord:      http.StatusConflict,
	CodeServerError:          http.StatusInternalServerError,
	CodeUnauthorized:         http.StatusUnauthorized,
}

var defaultMessageByCode = map[Code]string{
	CodeMissingRequiredField: "required field is missing",
	CodeNoUpdatableFields:    "update payload contains no updatable fields",
	CodeInvalidParameter:     "parameter value is out of range",
	CodeInvalidTimeFormat:    "time must be HH:MM between 00:00 and 23:59",
	CodeInvalidLanguage:      "language must be one of en, tc, sc, all",
	CodeInvalidNumeric:       "numeric value is malformed",
	CodeNotFound:             "record not found",
	CodeDuplicateRecord:      "record already exists",
	CodeServerError:          "internal server error",
	CodeUnauthorized:         "authorization required",
}

// Error is a taxonomy-coded failure. Transient marks server errors caused
// by storage connectivity so callers may retry; those map to 503.
type Error struct {
	Code      Code
	Message   string
	Transient bool
	cause     error
}

// New returns an Error with the given code and message. An empty message
// falls back to the category default.
func New(code Code, message string) *Error {
	if message == "" {
		message = defaultMessageByCode[code]
	}
	return &Error{Code: code, Message: message}
}

// Newf formats the message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap keeps cause for logging while exposing only the stable message.
func Wrap(code Code, message string, cause error) *Error {
	e := New(code, message)
	e.cause = cause
	return e
}

// TransientStorage wraps a storage-connectivity failure as retryable.
func TransientStorage(cause error) *Error {
	return &Error{
		Code:      CodeServerError,
		Message:   "storage temporarily unavailable",
		Transient: true,
		cause:     cause,
	}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Is allows errors.Is comparisons against code sentinels.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Code == other.Code
	}
	return false
}

// HTTPStatus maps the code to its boundary status. Transient server errors
// degrade to 503 so clients can distinguish retryable storage outages.
func (e *Error) HTTPStatus() int {
	if e.Transient {
		return http.StatusServiceUnavailable
	}
	if status, ok := statusByCode[e.Code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// From extracts the taxonomy error from err, wrapping unknown errors as a
// generic server error so internal detail never leaks into err_msg.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(CodeServerError, "", err)
}

// IsCode reports whether err carries the given taxonomy code.
func IsCode(err error, code Code) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Code == code
}
