package api

import (
	"errors"
	"fmt"
	"net/http"
)

// TransportError is returned for every failed call: either the transport
// could not complete the exchange, or the response status was not 2xx.
type TransportError struct {
	Method Method
	URL    string

	// HasResponse reports whether a response was received at all.
	HasResponse bool
	StatusCode  int
	Headers     http.Header
	Body        []byte

	// Err is the transport's own error, nil for status failures.
	Err error
}

func (e *TransportError) Error() string {
	switch {
	case e.Err != nil && e.HasResponse:
		return fmt.Sprintf("%s %s: status %d: %v", e.Method, e.URL, e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
	default:
		return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.StatusCode)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransportError reports whether err is, or wraps, a *TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
