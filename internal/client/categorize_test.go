package client

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/kjstillabower/owm-query/internal/validation"
)

// TestCategorizeError verifies that CategorizeError maps errors to the correct ErrorCategory
// for metrics labeling, including sentinel errors, wrapped errors, and message-based heuristics.
func TestCategorizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCategory
	}{
		{"nil", nil, ""},
		{"validation", validation.Missing("cityName", "city name"), ErrorCategoryValidation},
		{"timeout context", context.DeadlineExceeded, ErrorCategoryTimeout},
		{"canceled context", context.Canceled, ErrorCategoryTimeout},
		{"invalid API key", ErrInvalidAPIKey, ErrorCategoryInvalidAPIKey},
		{"wrapped invalid API key", &UpstreamCallError{StatusCode: 401, Err: statusError(401)}, ErrorCategoryInvalidAPIKey},
		{"location not found", statusError(404), ErrorCategoryLocationNotFound},
		{"rate limited", ErrRateLimited, ErrorCategoryRateLimited},
		{"upstream 503", &UpstreamCallError{StatusCode: 503, Err: statusError(503)}, ErrorCategoryUpstream5xx},
		{"upstream 400", &UpstreamCallError{StatusCode: 400, Err: statusError(400)}, ErrorCategoryUpstreamStatus},
		{"timeout in message", fmt.Errorf("request timeout: %w", context.DeadlineExceeded), ErrorCategoryTimeout},
		{"network", &UpstreamCallError{Err: errors.New("http request failed: dial tcp: connection refused")}, ErrorCategoryNetwork},
		{"parse", &UpstreamCallError{StatusCode: 200, Err: errors.New("parse response: invalid character")}, ErrorCategoryParsing},
		{"unknown", errors.New("something else"), ErrorCategoryUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CategorizeError(tt.err)
			if got != tt.want {
				t.Errorf("CategorizeError() = %v, want %v", got, tt.want)
			}
		})
	}
}
