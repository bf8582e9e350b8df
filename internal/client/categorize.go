package client

import (
	"context"
	"errors"
	"strings"

	"github.com/kjstillabower/owm-query/internal/validation"
)

// ErrorCategory is a stable label for error classification in metrics.
type ErrorCategory string

// Error category constants used as the weatherApiErrorsTotal label.
const (
	ErrorCategoryValidation       ErrorCategory = "validation"
	ErrorCategoryTimeout          ErrorCategory = "timeout"
	ErrorCategoryNetwork          ErrorCategory = "network"
	ErrorCategoryInvalidAPIKey    ErrorCategory = "invalid_api_key"
	ErrorCategoryLocationNotFound ErrorCategory = "location_not_found"
	ErrorCategoryRateLimited      ErrorCategory = "rate_limited"
	ErrorCategoryUpstream5xx      ErrorCategory = "upstream_5xx"
	ErrorCategoryUpstreamStatus   ErrorCategory = "upstream_status"
	ErrorCategoryParsing          ErrorCategory = "parsing"
	ErrorCategoryUnknown          ErrorCategory = "unknown"
)

// CategorizeError maps an error to a stable ErrorCategory for metrics.
func CategorizeError(err error) ErrorCategory {
	if err == nil {
		return ""
	}

	var ve *validation.ValidationError
	if errors.As(err, &ve) {
		return ErrorCategoryValidation
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ErrorCategoryTimeout
	}

	if errors.Is(err, ErrInvalidAPIKey) {
		return ErrorCategoryInvalidAPIKey
	}

	if errors.Is(err, ErrLocationNotFound) {
		return ErrorCategoryLocationNotFound
	}

	if errors.Is(err, ErrRateLimited) {
		return ErrorCategoryRateLimited
	}

	if errors.Is(err, ErrUpstreamFailure) {
		var ue *UpstreamCallError
		if errors.As(err, &ue) && ue.StatusCode > 0 && ue.StatusCode < 500 {
			return ErrorCategoryUpstreamStatus
		}
		return ErrorCategoryUpstream5xx
	}

	errStr := err.Error()
	if strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded") {
		return ErrorCategoryTimeout
	}

	if strings.Contains(errStr, "parse response") || strings.Contains(errStr, "unmarshal") ||
		strings.Contains(errStr, "read response body") {
		return ErrorCategoryParsing
	}

	if strings.Contains(errStr, "http request failed") || strings.Contains(errStr, "connection") ||
		strings.Contains(errStr, "network") {
		return ErrorCategoryNetwork
	}

	return ErrorCategoryUnknown
}
