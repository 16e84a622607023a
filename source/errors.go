package source

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable is the only error inbound operations return.
	ErrUnavailable = errors.New("no source available")

	// ErrPoolExhausted means every candidate was ineligible or failed.
	ErrPoolExhausted = errors.New("endpoint pool exhausted")

	// ErrUnsupported marks an operation an endpoint's dialect cannot serve; it is not a failure.
	ErrUnsupported = errors.New("operation not supported by dialect")
)

// Kind classifies a failed call to a single endpoint.
type Kind int

const (
	Timeout Kind = iota + 1
	Transport
	HTTP
	Malformed
)

func (k Kind) String() string {
	switch k {
	case Timeout:
		return "timeout"
	case Transport:
		return "transport"
	case HTTP:
		return "http"
	case Malformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// CallError is a failure local to one endpoint call.
type CallError struct {
	Kind     Kind
	Endpoint string
	Status   int
	Err      error
}

func (e *CallError) Error() string {
	switch {
	case e.Kind == HTTP:
		return fmt.Sprintf("%s: http %d", e.Endpoint, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Endpoint, e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Endpoint, e.Kind)
	}
}

func (e *CallError) Unwrap() error {
	return e.Err
}

// Malformedf builds a payload shape error; the endpoint is filled in by the caller boundary.
func Malformedf(format string, args ...any) *CallError {
	return &CallError{Kind: Malformed, Err: fmt.Errorf(format, args...)}
}

// KindOf extracts the call failure kind from err, or 0.
func KindOf(err error) Kind {
	var ce *CallError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return 0
}

// Unavailable wraps the last cause so callers can still inspect it.
func Unavailable(operation string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%s: %w", operation, ErrUnavailable)
	}
	return fmt.Errorf("%s: %w: %w", operation, ErrUnavailable, cause)
}
