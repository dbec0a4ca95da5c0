package connection

import (
	"context"
	"errors"
	"net/http"
)

type ErrorCode string

const (
	ErrorCodeValidation      ErrorCode = "VALIDATION_ERROR"
	ErrorCodeTimeout         ErrorCode = "TIMEOUT"
	ErrorCodeInternalFailure ErrorCode = "INTERNAL_FAILURE"
)

// AppError carries the HTTP status and the client-facing message of a failure.
// Err is kept for logs and is never rendered.
type AppError struct {
	Status  int
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func validationError(msg string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Code: ErrorCodeValidation, Message: msg}
}

// internalError hides err behind a generic 500.
func internalError(err error) *AppError {
	code := ErrorCodeInternalFailure
	if errors.Is(err, context.DeadlineExceeded) {
		code = ErrorCodeTimeout
	}
	return &AppError{
		Status:  http.StatusInternalServerError,
		Code:    code,
		Message: "Internal Server Error",
		Err:     err,
	}
}
