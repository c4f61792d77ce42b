package apiclient

import (
	"fmt"
	"net/http"
)

// APIError is returned for every failed call: transport failures, non-2xx
// answers and undecodable bodies. Error() is the message shown to users.
type APIError struct {
	Method     string
	Path       string
	StatusCode int // 0 when no response was received
	Message    string
	Err        error // underlying cause, if any
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Detail includes the request line and status, for logs.
func (e *APIError) Detail() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// errorBody is what the backend answers on failure. Either field may be set.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func statusMessage(code int) string {
	if text := http.StatusText(code); text != "" {
		return fmt.Sprintf("request failed: %d %s", code, text)
	}
	return fmt.Sprintf("request failed with status %d", code)
}
