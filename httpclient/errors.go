package httpclient

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidVerb is returned when Send is called with a verb outside
	// the declared set.
	ErrInvalidVerb = errors.New("invalid verb")

	// ErrBodyTooLarge is returned when a response body exceeds
	// Config.MaxResponseBodyBytes.
	ErrBodyTooLarge = errors.New("response body too large")
)

// NetworkError reports that a call never produced a complete HTTP response:
// request construction, DNS, connect, TLS, timeout, cancellation, or a
// broken body read.
type NetworkError struct {
	Verb Verb
	URL  string
	Err  error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request failed: %s %s: %v", e.Verb, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ErrorType returns the coarse classification also used for the
// error.type span attribute, e.g. "timeout" or "dns_error".
func (e *NetworkError) ErrorType() string {
	return classifyError(e.Err)
}
