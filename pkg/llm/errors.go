package llm

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType classifies completion failures.
type ErrorType string

const (
	// ErrorTypeConfig marks missing or invalid client configuration.
	ErrorTypeConfig ErrorType = "config"
	// ErrorTypeTransport marks network-level failures (connection, DNS,
	// TLS, timeout).
	ErrorTypeTransport ErrorType = "transport"
	// ErrorTypeHTTP marks non-200 responses from the completion endpoint.
	ErrorTypeHTTP ErrorType = "http"
	// ErrorTypeShape marks 200 responses missing the expected answer path.
	ErrorTypeShape ErrorType = "shape"
	// ErrorTypeUnknown marks anything else.
	ErrorTypeUnknown ErrorType = "unknown"
)

// Error is a structured completion error with classification.
type Error struct {
	Type       ErrorType // Classification of the error
	Message    string    // Human-readable message
	Retryable  bool      // Whether the operation can be retried
	Cause      error     // Underlying error
	StatusCode int       // HTTP status code if applicable
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsRetryable implements the retry.RetryableError interface so the retry
// package can check retryability without importing llm.
func (e *Error) IsRetryable() bool {
	return e.Retryable
}

// NewError creates a new structured completion error.
func NewError(errType ErrorType, message string, retryable bool, cause error) *Error {
	return &Error{
		Type:      errType,
		Message:   message,
		Retryable: retryable,
		Cause:     cause,
	}
}

// newHTTPError builds an error for a non-200 response. Rate limiting and
// server-side failures are retryable; other client errors are not.
func newHTTPError(statusCode int, detail string) *Error {
	return &Error{
		Type:       ErrorTypeHTTP,
		Message:    fmt.Sprintf("API request failed with status %d: %s", statusCode, detail),
		Retryable:  statusCode == 429 || statusCode >= 500,
		StatusCode: statusCode,
	}
}

// classifyTransportError wraps a network-level failure. Timeouts and
// connection failures are retryable.
func classifyTransportError(err error) *Error {
	lower := strings.ToLower(err.Error())
	retryable := strings.Contains(lower, "timeout") ||
		strings.Contains(lower, "deadline exceeded") ||
		strings.Contains(lower, "connection refused") ||
		strings.Contains(lower, "connection reset") ||
		strings.Contains(lower, "no such host")
	return NewError(ErrorTypeTransport, "request failed", retryable, err)
}

// GetErrorType extracts the ErrorType from an error.
func GetErrorType(err error) ErrorType {
	var llmErr *Error
	if errors.As(err, &llmErr) {
		return llmErr.Type
	}
	return ErrorTypeUnknown
}
