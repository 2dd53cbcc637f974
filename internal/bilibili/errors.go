package bilibili

import "fmt"

// APIError reports that the API answered but carried no payload.
type APIError struct {
	// Code is the envelope status code. It is kept for logging and is not part of Error().
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return "Bad response: " + e.Message
}

// HTTPError wraps a transport, read, or decode failure talking to the API.
type HTTPError struct {
	Err error
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("Failed to send request: %v", e.Err)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}
