// Package errors carries coded application errors across the HTTP shell.
// Domain code returns sentinel-wrapped errors; Classify turns them into an
// AppError whose code decides the status sent to the client.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"distviz/domain/core"
)

// AppError represents a structured application error
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context, keeping the code of a wrapped AppError
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode adds an error code to an existing error
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    code,
			Message: appErr.Message,
			Cause:   appErr.Cause,
		}
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// GetCode returns the error code if err carries an AppError, otherwise "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid       = "CONFIG_INVALID"
	CodeParseError          = "PARSE_ERROR"
	CodeConstraintViolation = "CONSTRAINT_VIOLATION"
	CodeNotFound            = "NOT_FOUND"
	CodeInvalidInput        = "INVALID_INPUT"
	CodeRenderUnavailable   = "RENDER_UNAVAILABLE"
	CodeInternalError       = "INTERNAL_ERROR"
)

// Classify maps a domain error onto its application code. AppErrors pass through.
func Classify(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	code := CodeInternalError
	switch {
	case stderrors.Is(err, core.ErrParse):
		code = CodeParseError
	case stderrors.Is(err, core.ErrConstraint):
		code = CodeConstraintViolation
	case stderrors.Is(err, core.ErrNotFound):
		code = CodeNotFound
	case stderrors.Is(err, core.ErrRenderUnavailable):
		code = CodeRenderUnavailable
	}
	return &AppError{Code: code, Message: err.Error(), Cause: err}
}

// HTTPStatus is the response status for an error code.
func HTTPStatus(code string) int {
	switch code {
	case CodeParseError, CodeInvalidInput:
		return http.StatusBadRequest
	case CodeConstraintViolation:
		return http.StatusUnprocessableEntity
	case CodeNotFound:
		return http.StatusNotFound
	case CodeRenderUnavailable:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}
