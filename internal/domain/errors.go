package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a load failure for display and logging.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindTransport  ErrorKind = "transport"
	KindTimeout    ErrorKind = "timeout"
	KindParse      ErrorKind = "parse"
)

// LoadError is the one error type the pipeline surfaces. Everything is
// recoverable by an explicit retry; the kind only drives messaging.
type LoadError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	cause   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.cause
}

func newLoadError(kind ErrorKind, format string, args ...any) *LoadError {
	err := fmt.Errorf(format, args...)
	return &LoadError{Kind: kind, Message: err.Error(), cause: errors.Unwrap(err)}
}

func Validationf(format string, args ...any) *LoadError {
	return newLoadError(KindValidation, format, args...)
}

func Transportf(format string, args ...any) *LoadError {
	return newLoadError(KindTransport, format, args...)
}

func Timeoutf(format string, args ...any) *LoadError {
	return newLoadError(KindTimeout, format, args...)
}

func Parsef(format string, args ...any) *LoadError {
	return newLoadError(KindParse, format, args...)
}

// AsLoadError returns err as a *LoadError, wrapping unclassified errors as
// transport failures so callers always get a kind.
func AsLoadError(err error) *LoadError {
	if err == nil {
		return nil
	}
	var le *LoadError
	if errors.As(err, &le) {
		return le
	}
	return &LoadError{Kind: KindTransport, Message: err.Error(), cause: err}
}

// KindOf reports the kind of err, or empty for nil.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	return AsLoadError(err).Kind
}
