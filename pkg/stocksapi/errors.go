package stocksapi

import (
	"errors"
	"fmt"
)

// ErrNotSingleElement is wrapped by MalformedResponseError when a payload
// array does not hold exactly one document.
var ErrNotSingleElement = errors.New("payload is not a single-element array")

// HTTPStatusError is returned when an endpoint answers with a non-2xx status.
type HTTPStatusError struct {
	Endpoint   string
	StatusCode int
	Status     string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %s", e.Endpoint, e.Status)
}

// MalformedResponseError is returned when a response body cannot be decoded
// into the expected document.
type MalformedResponseError struct {
	Endpoint string
	Err      error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: malformed response: %v", e.Endpoint, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// MissingKeyError is returned by document lookups when a symbol or time
// frame is absent.
type MissingKeyError struct {
	Document string
	Key      string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("%s document has no key %q", e.Document, e.Key)
}
