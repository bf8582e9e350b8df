package client

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAPIKey    = errors.New("invalid API key")
	ErrLocationNotFound = errors.New("location not found")
	ErrUpstreamFailure  = errors.New("upstream failure")
	ErrRateLimited      = errors.New("rate limited")
)

// UpstreamCallError wraps any failure after validation passed: transport,
// non-2xx status, unreadable body or invalid JSON. StatusCode is 0 when no
// response was received.
type UpstreamCallError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *UpstreamCallError) Error() string {
	return fmt.Sprintf("weather api call failed: %v", e.Err)
}

func (e *UpstreamCallError) Unwrap() error {
	return e.Err
}

// statusError maps a non-2xx status to its sentinel cause. Returns nil for 2xx.
func statusError(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == 401:
		return fmt.Errorf("%w: HTTP %d", ErrInvalidAPIKey, code)
	case code == 404:
		return fmt.Errorf("%w: HTTP %d", ErrLocationNotFound, code)
	case code == 429:
		return fmt.Errorf("%w: HTTP %d", ErrRateLimited, code)
	default:
		return fmt.Errorf("%w: HTTP %d", ErrUpstreamFailure, code)
	}
}
