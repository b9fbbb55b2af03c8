// Package errors provides the error taxonomy shared by the schema, decoder,
// renderer and configuration layers, with a small classification scheme that
// tells the pipeline whether to skip a record or abort the run.
package errors

import (
	"errors"
	"fmt"
)

// ErrorClass represents the classification of errors for handling purposes
type ErrorClass int

const (
	// ErrorInvalid marks errors confined to one record; the record is skipped
	ErrorInvalid ErrorClass = iota
	// ErrorFatal marks errors that stop processing
	ErrorFatal
)

// String returns the string representation of ErrorClass
func (ec ErrorClass) String() string {
	switch ec {
	case ErrorInvalid:
		return "invalid"
	case ErrorFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

var (
	// Record errors
	ErrMalformedRecord    = errors.New("malformed record")
	ErrUnsupportedLogType = errors.New("unsupported log type")
	ErrFieldCount         = errors.New("field count exceeds schema")
	ErrUndefinedField     = errors.New("undefined field")

	// Selection errors
	ErrOutOfRange       = errors.New("field position out of range")
	ErrInvalidFieldSpec = errors.New("invalid field specification")

	// Configuration errors
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ClassifiedError wraps an error with its classification
type ClassifiedError struct {
	Class     ErrorClass
	Err       error
	Component string
	Operation string
}

// Error implements the error interface
func (ce *ClassifiedError) Error() string {
	if ce.Component == "" {
		return ce.Err.Error()
	}
	return fmt.Sprintf("%s.%s: %v", ce.Component, ce.Operation, ce.Err)
}

// Unwrap returns the underlying error
func (ce *ClassifiedError) Unwrap() error {
	return ce.Err
}

// WrapInvalid wraps an error as a per-record failure
func WrapInvalid(err error, component, operation string) error {
	if err == nil {
		return nil
	}
	return &ClassifiedError{Class: ErrorInvalid, Err: err, Component: component, Operation: operation}
}

// WrapFatal wraps an error as run-stopping
func WrapFatal(err error, component, operation string) error {
	if err == nil {
		return nil
	}
	return &ClassifiedError{Class: ErrorFatal, Err: err, Component: component, Operation: operation}
}

// IsFatal reports whether err should abort the run. Configuration errors are
// fatal even when they were never classified.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorFatal
	}
	return errors.Is(err, ErrInvalidConfig) || errors.Is(err, ErrInvalidFieldSpec)
}

// IsInvalid reports whether err is confined to a single record
func IsInvalid(err error) bool {
	if err == nil {
		return false
	}
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorInvalid
	}
	return errors.Is(err, ErrMalformedRecord) ||
		errors.Is(err, ErrUnsupportedLogType) ||
		errors.Is(err, ErrFieldCount) ||
		errors.Is(err, ErrUndefinedField) ||
		errors.Is(err, ErrOutOfRange)
}
