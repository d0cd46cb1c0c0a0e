// Package apierrors defines the errors services return to transports.
// Each error carries a Code the transport maps to its own status and a
// message safe to show to clients.
package apierrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

type Code int

const (
	CodeInternal Code = iota
	CodeNotFound
	CodeForbidden
	CodeInvalidInput
	CodeConflict
	CodeUnauthorized
)

// HTTPStatus returns the HTTP status code for c.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeForbidden:
		return http.StatusForbidden
	case CodeInvalidInput:
		return http.StatusBadRequest
	case CodeConflict:
		return http.StatusConflict
	case CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// APIError is a client-facing error. The wrapped cause, if any, is
// appended to the message and reachable through errors.Unwrap.
type APIError struct {
	Code    Code
	Message string
	cause   error
}

func (e *APIError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.cause
}

func newError(code Code, message string) *APIError {
	return &APIError{Code: code, Message: message}
}

// CodeOf returns the code of the first APIError in err's chain, or
// CodeInternal when there is none.
func CodeOf(err error) Code {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return CodeInternal
}

func NewErrUserNotFound(id string) *APIError {
	return newError(CodeNotFound, fmt.Sprintf("user %s not found", id))
}

func NewErrProjectNotFound(id uuid.UUID) *APIError {
	return newError(CodeNotFound, fmt.Sprintf("project %s not found", id))
}

func NewErrDatasetNotFound(id uuid.UUID) *APIError {
	return newError(CodeNotFound, fmt.Sprintf("dataset %s not found", id))
}

func NewErrGrantNotFound(userID uuid.UUID) *APIError {
	return newError(CodeNotFound, fmt.Sprintf("no permission granted to user %s", userID))
}

func NewErrDatasetFileNotFound() *APIError {
	return newError(CodeNotFound, "dataset file not found")
}

func NewErrForbidden(message string) *APIError {
	return newError(CodeForbidden, message)
}

func NewErrInvalidInput(message string) *APIError {
	return newError(CodeInvalidInput, message)
}

// NewErrInvalidInputCause wraps a processing failure, keeping its message.
func NewErrInvalidInputCause(message string, cause error) *APIError {
	return &APIError{Code: CodeInvalidInput, Message: message, cause: cause}
}

func NewErrUnsupportedFileType(allowed []string) *APIError {
	return newError(CodeInvalidInput, "file type not supported. Allowed: "+strings.Join(allowed, ", "))
}

func NewErrEmailIsTaken(email string) *APIError {
	return newError(CodeConflict, fmt.Sprintf("email %s is already registered", email))
}

func NewErrInvalidCredentials() *APIError {
	return newError(CodeUnauthorized, "incorrect email or password")
}

func NewErrMissingAuthorizationToken() *APIError {
	return newError(CodeUnauthorized, "missing authorization token")
}

func NewErrInvalidAuthorizationToken() *APIError {
	return newError(CodeUnauthorized, "invalid authorization token")
}
