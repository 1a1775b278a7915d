package core

import (
	"fmt"

	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// ExternalServiceError indicates a non-success status from an upstream
// service (e.g. the court causelist endpoint).
type ExternalServiceError struct {
	Service string
	Status  int
}

func NewExternalServiceError(service string, status int) error {
	return &ExternalServiceError{Service: service, Status: status}
}

func (err ExternalServiceError) Error() string {
	return fmt.Sprintf("%s responded with status %d", err.Service, err.Status)
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
