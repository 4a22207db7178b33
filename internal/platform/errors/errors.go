// Package errors defines the failure taxonomy shared by the aggregation engine
// and its adapters, plus small wrapping helpers over the standard library.
package errors

import (
	"errors"
	"fmt"
)

// Taxonomy sentinels. Only ErrInvalidInput and ErrInternalFault are expected
// to cross the aggregation boundary; the rest are absorbed per source.
var (
	// ErrInvalidInput indicates an empty or malformed target or request
	ErrInvalidInput = errors.New("invalid input")

	// ErrUpstreamUnavailable indicates a non-success response, transport failure or timeout
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrUpstreamMalformed indicates a payload that does not match the expected schema
	ErrUpstreamMalformed = errors.New("upstream malformed")

	// ErrConfigurationMissing indicates an absent credential or setting
	ErrConfigurationMissing = errors.New("configuration missing")

	// ErrInternalFault indicates an unexpected local error
	ErrInternalFault = errors.New("internal fault")
)

// Kind is the coarse category of an error.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidInput
	KindUpstreamUnavailable
	KindUpstreamMalformed
	KindConfigurationMissing
	KindInternalFault
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindUpstreamUnavailable:
		return "upstream_unavailable"
	case KindUpstreamMalformed:
		return "upstream_malformed"
	case KindConfigurationMissing:
		return "configuration_missing"
	case KindInternalFault:
		return "internal_fault"
	default:
		return "unknown"
	}
}

// KindOf classifies err by the first taxonomy sentinel found in its chain.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrInternalFault):
		return KindInternalFault
	case errors.Is(err, ErrConfigurationMissing):
		return KindConfigurationMissing
	case errors.Is(err, ErrUpstreamMalformed):
		return KindUpstreamMalformed
	case errors.Is(err, ErrUpstreamUnavailable):
		return KindUpstreamUnavailable
	default:
		return KindUnknown
	}
}

// wrappedError wraps an error with additional context
type wrappedError struct {
	msg   string
	cause error
}

func (e *wrappedError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	}
	return e.msg
}

func (e *wrappedError) Unwrap() error {
	return e.cause
}

// Wrap wraps an error with additional context message.
// If err is nil, Wrap returns nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{msg: msg, cause: err}
}

// Wrapf wraps an error with a formatted context message.
// If err is nil, Wrapf returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &wrappedError{msg: fmt.Sprintf(format, args...), cause: err}
}

// Mark tags err with a taxonomy sentinel while keeping err in the chain,
// so both errors.Is(x, kind) and errors.Is(x, err) hold.
func Mark(kind, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, kind) {
		return err
	}
	return fmt.Errorf("%w: %w", kind, err)
}

// Is is errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is errors.As.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// New is errors.New.
func New(msg string) error {
	return errors.New(msg)
}

// Errorf is fmt.Errorf.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// Join is errors.Join.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

func IsInvalidInput(err error) bool         { return Is(err, ErrInvalidInput) }
func IsUpstreamUnavailable(err error) bool  { return Is(err, ErrUpstreamUnavailable) }
func IsUpstreamMalformed(err error) bool    { return Is(err, ErrUpstreamMalformed) }
func IsConfigurationMissing(err error) bool { return Is(err, ErrConfigurationMissing) }
func IsInternalFault(err error) bool        { return Is(err, ErrInternalFault) }
