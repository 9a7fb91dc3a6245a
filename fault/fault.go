package fault

import (
	"errors"
	"fmt"
)

// Class is the failure category of a classified error.
type Class int

const (
	// Unknown means the error has not been classified.
	Unknown Class = iota
	// Config means a required configuration value or credential is
	// missing. Permanent: never retried, never counted by a breaker.
	Config
	// Transient covers timeouts, 429s, 5xx responses and network-level
	// failures. Retryable and counted by the circuit breaker.
	Transient
	// RequestShape means the provider rejected the payload itself
	// (missing/invalid fields, HTTP 400/422-class). Not retryable with
	// the same provider configuration; a fallback chain may reshape the
	// request for the next configuration.
	RequestShape
	// Terminal means the provider explicitly reported the task as
	// failed. Surfaced verbatim with the provider-given reason.
	Terminal
	// BreakerOpen is synthetic: the call was shed before the provider
	// was invoked. Never counted against the breaker itself.
	BreakerOpen
	// Item marks a failure isolated to one work item inside a batch.
	Item
)

// String returns the string representation of the class.
func (c Class) String() string {
	switch c {
	case Config:
		return "config"
	case Transient:
		return "transient"
	case RequestShape:
		return "request-shape"
	case Terminal:
		return "terminal"
	case BreakerOpen:
		return "breaker-open"
	case Item:
		return "item"
	default:
		return "unknown"
	}
}

// Error is a classified error. Op identifies the operation that
// produced it, e.g. "assemblyai.submit" or "scene 3".
type Error struct {
	Class Class
	Op    string
	Err   error
}

// New wraps err with a class and operation label.
func New(class Class, op string, err error) *Error {
	return &Error{Class: class, Op: op, Err: err}
}

// Newf creates a classified error from a format string.
func Newf(class Class, op string, format string, args ...any) *Error {
	return &Error{Class: class, Op: op, Err: fmt.Errorf(format, args...)}
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %v", e.Class, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Class, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ClassOf returns the class of the first *Error in err's chain, or
// Unknown if the chain carries no classified error.
func ClassOf(err error) Class {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Class
	}
	return Unknown
}

// Retryable reports whether err is worth retrying with the same
// provider configuration. Only Transient errors qualify.
func Retryable(err error) bool {
	return ClassOf(err) == Transient
}

// IsConfig reports whether err is a configuration failure.
func IsConfig(err error) bool {
	return ClassOf(err) == Config
}

// IsRequestShape reports whether err is a payload rejection.
func IsRequestShape(err error) bool {
	return ClassOf(err) == RequestShape
}

// FromStatusCode classifies an HTTP status code from a provider.
// 429 and 5xx are transient; every other 4xx is a request-shape
// rejection. Codes below 400 are not errors and return nil.
func FromStatusCode(op string, code int, err error) *Error {
	if code < 400 {
		return nil
	}
	if err == nil {
		err = fmt.Errorf("provider returned HTTP %d", code)
	}
	switch {
	case code == 429 || code >= 500:
		return New(Transient, op, err)
	default:
		return New(RequestShape, op, err)
	}
}
