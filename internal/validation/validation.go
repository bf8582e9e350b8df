package validation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingField is matched by every ValidationError raised for an absent or empty input.
var ErrMissingField = errors.New("required field missing")

// ErrUnsupportedLookup is matched when a lookup mode cannot be sent to the chosen endpoint.
var ErrUnsupportedLookup = errors.New("lookup not supported by endpoint")

// ValidationError reports a lookup input rejected before any network call.
// Field is the caller-facing parameter name (e.g. "cityName", "lat").
type ValidationError struct {
	Field   string
	Message string
	kind    error
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is lets callers match on ErrMissingField or ErrUnsupportedLookup.
func (e *ValidationError) Is(target error) bool {
	return e.kind != nil && target == e.kind
}

// Missing builds the ValidationError for an absent required field.
// label is the human-readable name used in the message.
func Missing(field, label string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("must provide %s", label),
		kind:    ErrMissingField,
	}
}

// Unsupported builds the ValidationError for a lookup/endpoint mismatch.
func Unsupported(mode, endpoint string) *ValidationError {
	return &ValidationError{
		Field:   "lookup",
		Message: fmt.Sprintf("%s lookup is not supported by the %s endpoint", mode, endpoint),
		kind:    ErrUnsupportedLookup,
	}
}

// RequireString trims value and fails when nothing is left.
// Returns the trimmed value on success.
func RequireString(field, label, value string) (string, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return "", Missing(field, label)
	}
	return s, nil
}

// RequirePresent fails when ok is false. Used for numeric inputs where the
// zero value is legitimate and only absence is an error.
func RequirePresent(field, label string, ok bool) error {
	if !ok {
		return Missing(field, label)
	}
	return nil
}

// RequireList trims every element and fails on an empty list or any empty element.
func RequireList(field, label string, values []string) ([]string, error) {
	if len(values) == 0 {
		return nil, Missing(field, label)
	}
	out := make([]string, 0, len(values))
	for i, v := range values {
		s := strings.TrimSpace(v)
		if s == "" {
			return nil, Missing(fmt.Sprintf("%s[%d]", field, i), label)
		}
		out = append(out, s)
	}
	return out, nil
}
