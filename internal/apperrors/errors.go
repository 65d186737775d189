// Package apperrors defines the failure kinds the core surfaces to callers.
// Handlers map each kind to a distinct HTTP status so the UI can show a
// specific message instead of a generic one.
package apperrors

import (
	"errors"
	"fmt"
)

// ValidationError means the caller sent malformed input. Recoverable: fix
// the input and retry.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError means the operation referenced an id that does not exist.
// Callers decide whether that is benign (double dismiss) or fatal.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

func NewNotFound(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// IntegrityError means a multi-step mutation could not complete as a unit.
// Never swallowed: the store's transaction must have rolled back.
type IntegrityError struct {
	Op  string
	Err error
}

func (e *IntegrityError) Error() string {
	return "integrity failure during " + e.Op + ": " + e.Err.Error()
}

func (e *IntegrityError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsIntegrity(err error) bool {
	var ie *IntegrityError
	return errors.As(err, &ie)
}
