package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a request failure into one of the fixed error categories
// the API reports.
type Kind string

const (
	MissingIdentity Kind = "missing_identity"
	InvalidFileType Kind = "invalid_file_type"
	FileTooLarge    Kind = "file_too_large"
	InvalidJSON     Kind = "invalid_json"
	InvalidData     Kind = "invalid_data"
	StorageError    Kind = "storage_error"
	InternalError   Kind = "internal_error"
)

// AppError is a classified request error. Validation kinds surface as 4xx
// responses with the message intact; storage and internal kinds surface as
// 500 with a generic message.
type AppError struct {
	Kind    Kind
	Message string
	Cause   error
}

func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches an underlying cause, kept for logging but never sent to the
// client.
func Wrap(kind Kind, message string, cause error) *AppError {
	return &AppError{Kind: kind, Message: message, Cause: cause}
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Status maps the error kind to its HTTP status code.
func (e *AppError) Status() int {
	switch e.Kind {
	case MissingIdentity, InvalidFileType, InvalidJSON, InvalidData:
		return http.StatusBadRequest
	case FileTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// Label is the short error identifier carried in the response body.
func (e *AppError) Label() string {
	switch e.Kind {
	case MissingIdentity:
		return "Missing required parameters"
	case InvalidFileType:
		return "Invalid file type"
	case FileTooLarge:
		return "File too large"
	case InvalidJSON:
		return "Invalid JSON file"
	case InvalidData:
		return "Invalid data"
	default:
		return "Internal server error"
	}
}

// From classifies an arbitrary error. Anything that is not already an
// AppError is treated as an internal failure.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{Kind: InternalError, Message: "unexpected error", Cause: err}
}
