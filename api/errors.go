package api

import (
	"fmt"
)

// FallbackMessage is shown when neither the server nor the transport
// explained the failure.
const FallbackMessage = "Something went wrong. Please try again."

// Error is returned for every failed backend call, whether the server
// answered with success=false, an HTTP error status, or the request never
// completed.
type Error struct {
	Status  int
	Method  string
	URL     string
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Detail includes the request line, for logs and --debug output.
func (e *Error) Detail() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Message)
	}
	return fmt.Sprintf("%s %s (%d): %s", e.Method, e.URL, e.Status, e.Message)
}

// errorMessage picks the first non-empty of the server message, the server
// error, and the transport error.
func errorMessage(env *envelope, transportErr error) string {
	if env != nil {
		if env.Message != "" {
			return env.Message
		}
		if env.Error != "" {
			return string(env.Error)
		}
	}
	if transportErr != nil && transportErr.Error() != "" {
		return transportErr.Error()
	}
	return FallbackMessage
}
