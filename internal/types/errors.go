package types

import (
	"errors"
	"fmt"
)

// ErrorCode is a typed string for categorizing client errors.
type ErrorCode string

// Complete error code constants.
// Callers MUST use these constants instead of hardcoded strings.
const (
	// Configuration (raised at construction)
	ErrCodeMissingKey ErrorCode = "missing_key"

	// Service-reported (response.error envelope)
	ErrCodeServiceError ErrorCode = "wu_error"

	// Upstream transport
	ErrCodeUpstreamUnavailable     ErrorCode = "upstream_unavailable"
	ErrCodeUpstreamRateLimited     ErrorCode = "upstream_rate_limited"
	ErrCodeUpstreamStatus          ErrorCode = "upstream_unexpected_status"
	ErrCodeUpstreamInvalidResponse ErrorCode = "upstream_invalid_response"

	// Internal
	ErrCodeInternalUnexpected ErrorCode = "internal_unexpected_error"
)

// IsUpstream reports whether the code describes a failure of the remote
// service or the path to it rather than of the caller's configuration.
func (c ErrorCode) IsUpstream() bool {
	switch c {
	case ErrCodeUpstreamUnavailable, ErrCodeUpstreamRateLimited,
		ErrCodeUpstreamStatus, ErrCodeUpstreamInvalidResponse:
		return true
	default:
		return false
	}
}

// AppError is the standard error type returned by the client and its
// transport. Service errors and configuration errors are both expressed as
// AppError so callers can branch on Code with errors.Is/errors.As.
type AppError struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Err     error          `json:"-"`
	Details map[string]any `json:"details,omitempty"`
}

// Error implements the error interface. Service-reported errors render
// as the service's own message; everything else is prefixed with its code.
func (e *AppError) Error() string {
	if e.Code == ErrCodeServiceError {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches any AppError carrying the same code, so a bare
// &AppError{Code: ...} works as a sentinel.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) || t == nil {
		return false
	}
	return t.Code == e.Code
}

// WithDetails returns a copy of the error with the provided details merged in.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	merged := make(map[string]any, len(e.Details)+len(details))
	for k, v := range e.Details {
		merged[k] = v
	}
	for k, v := range details {
		merged[k] = v
	}
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Err:     e.Err,
		Details: merged,
	}
}

// NewAppError creates a new AppError with the given code, message, and optional
// underlying error.
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// CodeOf extracts the ErrorCode from the first AppError in err's chain.
// Returns the empty code when err carries none.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
