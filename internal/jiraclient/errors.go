package jiraclient

import (
	"errors"
	"fmt"
)

// Sentinel errors for Jira API communication. Callers branch on these with
// errors.Is; transport, timeout and upstream (5xx) failures are safe for a
// caller-level retry, the rest are not.

// ErrTransport indicates a connection-level failure (DNS, refused, reset)
// before a response was received. Eligible for caller-level retry.
var ErrTransport = errors.New("transport error communicating with Jira")

// ErrTimeout indicates the connect or total request deadline elapsed.
// Eligible for caller-level retry.
var ErrTimeout = errors.New("request to Jira timed out")

// ErrDecode indicates a 2xx response carried a body that was not valid JSON.
// Treated as a defect signal, never retried.
var ErrDecode = errors.New("failed to decode Jira response body")

// ErrClientError indicates Jira rejected the request with a 4xx status.
// Not retried.
var ErrClientError = errors.New("Jira rejected the request")

// ErrUpstreamError indicates Jira failed with a 5xx status. May be retried
// by the caller.
var ErrUpstreamError = errors.New("Jira upstream failure")

// APIError carries the HTTP status and a redacted, length-capped excerpt of
// the response body for a 4xx or 5xx upstream response. It unwraps to
// ErrClientError or ErrUpstreamError so callers keep sentinel-based
// branching while still reaching the numeric status via errors.As.
type APIError struct {
	StatusCode int
	Excerpt    string
}

func (e *APIError) Error() string {
	if e.Excerpt == "" {
		return fmt.Sprintf("HTTP %d error", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d error: %s", e.StatusCode, e.Excerpt)
}

// Unwrap classifies the error by status family.
func (e *APIError) Unwrap() error {
	if e.StatusCode >= 500 {
		return ErrUpstreamError
	}
	return ErrClientError
}
