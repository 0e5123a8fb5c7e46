// Package faults defines the error taxonomy shared by the saga core and its
// collaborators. Handlers use the predicates to decide whether a failure is
// compensated, rethrown as-is, or treated as a benign no-op.
package faults

import (
	"errors"
	"fmt"
)

// ValidationError indicates a malformed or incomplete payload. It is never
// compensated: the message is broken, not the business state.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// NotFoundError indicates a referenced entity does not exist.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string {
	return e.Msg
}

// NotFoundf builds a NotFoundError from a format string.
func NotFoundf(format string, args ...interface{}) error {
	return &NotFoundError{Msg: fmt.Sprintf(format, args...)}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var v *NotFoundError
	return errors.As(err, &v)
}

// TransportError indicates an event-bus publish failed or timed out.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("transport failure during %s", e.Op)
	}
	return fmt.Sprintf("transport failure during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Transport wraps err as a TransportError for the given operation.
func Transport(op string, err error) error {
	return &TransportError{Op: op, Err: err}
}

// IsTransport reports whether err is (or wraps) a TransportError.
func IsTransport(err error) bool {
	var v *TransportError
	return errors.As(err, &v)
}

// ExternalServiceError indicates an HTTP collaborator (payment, customer,
// catalog) failed or returned an unusable response.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s service failure", e.Service)
	}
	return fmt.Sprintf("%s service failure: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

// External wraps err as an ExternalServiceError for the given service.
func External(service string, err error) error {
	return &ExternalServiceError{Service: service, Err: err}
}

// IsExternal reports whether err is (or wraps) an ExternalServiceError.
func IsExternal(err error) bool {
	var v *ExternalServiceError
	return errors.As(err, &v)
}
