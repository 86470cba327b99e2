package apiclient

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse is returned when a 2xx body cannot be decoded.
var ErrMalformedResponse = errors.New("malformed response body")

// HTTPError is a non-success response from the shop API.
type HTTPError struct {
	Method string
	URL    string
	Status int

	// Message is the structured "error" field of the body, if the server sent one.
	Message string

	// Body is the raw response, trimmed, kept for diagnostics.
	Body string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("apiclient: %s %s: HTTP error! status: %d: %s", e.Method, e.URL, e.Status, e.Message)
	}
	return fmt.Sprintf("apiclient: %s %s: HTTP error! status: %d", e.Method, e.URL, e.Status)
}

// NetworkError is a transport failure; no response was received.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("apiclient: %s %s: network failure: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsRequestFailure reports whether err is any of the gateway failures. Callers
// show the same user-facing message for all of them.
func IsRequestFailure(err error) bool {
	var httpErr *HTTPError
	var netErr *NetworkError
	return errors.As(err, &httpErr) || errors.As(err, &netErr) || errors.Is(err, ErrMalformedResponse)
}

// ServerMessage returns the structured error message carried by err, if any.
func ServerMessage(err error) (string, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.Message != "" {
		return httpErr.Message, true
	}
	return "", false
}
