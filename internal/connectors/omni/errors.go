package omni

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Omni-specific errors.
var (
	// ErrMissingBaseURL indicates no API base URL was configured.
	ErrMissingBaseURL = errors.New("omni: base URL is required")

	// ErrMissingModelID indicates no model id was configured.
	ErrMissingModelID = errors.New("omni: model id is required")

	// ErrMissingAPIKey indicates no API key was configured.
	ErrMissingAPIKey = errors.New("omni: API key is required")

	// ErrNotJSON indicates the endpoint returned a body that is not valid JSON.
	ErrNotJSON = errors.New("omni: response is not valid JSON")
)

// APIError represents a non-2xx Omni API response.
type APIError struct {
	StatusCode int
	Body       string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("omni: API error %d: %s (URL: %s)", e.StatusCode, e.Body, e.URL)
}

// IsRetryable reports whether the error is worth retrying: server-side
// failures, rate limiting, and transport-level transients such as
// timeouts and connection resets. Client errors and caller cancellation
// are never retried.
func IsRetryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500 || apiErr.StatusCode == 429
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
