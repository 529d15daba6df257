package api

import (
	"fmt"
)

// ConfigurationError reports construction input that cannot describe a
// clipboard server. It is returned before any network call.
type ConfigurationError struct {
	Field   string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ServerUnreachableError is returned by NewClient when the probe fails,
// either at the transport level (Err set) or with a non-200 status.
type ServerUnreachableError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *ServerUnreachableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("clipboard server %s is not available: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("clipboard server %s is not valid or available (status %d)", e.URL, e.StatusCode)
}

func (e *ServerUnreachableError) Unwrap() error {
	return e.Err
}

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// RequestError carries a failure reported by the server in the response
// envelope. Message is the server's text verbatim.
type RequestError struct {
	Code    int
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

// HTTPError is returned when a failed response has no decodable envelope.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}
