// Package apierrors provides shared error types for the ShipEngine client.
package apierrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrValidation matches every error caused by invalid caller input.
	ErrValidation = errors.New("validation error")

	// ErrFieldValueRequired matches errors raised for a missing required field.
	ErrFieldValueRequired = errors.New("field value required")

	// ErrBusinessRules matches requests the API accepted but could not fulfil.
	ErrBusinessRules = errors.New("business rules error")

	// ErrSystem matches upstream failures unrelated to caller input.
	ErrSystem = errors.New("system error")

	// ErrSecurity matches authentication and authorization failures.
	ErrSecurity = errors.New("security error")

	// ErrRateLimited is returned when the API rate limit is exceeded and no
	// retries remain.
	ErrRateLimited = errors.New("rate limit exceeded")
)

// Error is the single error type returned by every failed ShipEngine call.
//
// The taxonomy is flat: the kind of failure is carried by Type and Code
// rather than by distinct Go types. Use errors.Is with the sentinel errors
// to branch on kind, and errors.As to read the structured fields.
type Error struct {
	Message   string
	RequestID string
	Source    ErrorSource
	Type      ErrorType
	Code      ErrorCode

	// URL is the request URL, when the error came from an HTTP exchange.
	URL string
	// StatusCode is the HTTP status, zero for errors raised before any request.
	StatusCode int
	// RetryAttempt is the number of retries already performed. Only set on
	// rate limit errors.
	RetryAttempt int
	// Field names the offending input field for validation errors.
	Field string

	// Err is the lower-level cause, if any.
	Err error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		switch {
		case e.StatusCode != 0:
			msg = fmt.Sprintf("ShipEngine API error %d", e.StatusCode)
		case e.Err != nil:
			msg = e.Err.Error()
		default:
			msg = "ShipEngine error"
		}
	}
	if e.RequestID != "" {
		return fmt.Sprintf("%s (request_id: %s)", msg, e.RequestID)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrValidation:
		return e.Type == TypeValidation
	case ErrFieldValueRequired:
		return e.Code == CodeFieldValueRequired
	case ErrBusinessRules:
		return e.Type == TypeBusinessRules
	case ErrSystem:
		return e.Type == TypeSystem
	case ErrSecurity:
		return e.Type == TypeSecurity || e.StatusCode == 401
	case ErrRateLimited:
		return e.Code == CodeRateLimitExceeded
	}
	return false
}

// NewValidation returns a validation error for field.
func NewValidation(field, message string) *Error {
	return &Error{
		Message: message,
		Source:  SourceShipEngine,
		Type:    TypeValidation,
		Code:    CodeInvalidFieldValue,
		Field:   field,
	}
}

// NewFieldValueRequired returns the canned error for a missing required field.
func NewFieldValueRequired(field string) *Error {
	return &Error{
		Message: field + " must be specified.",
		Source:  SourceShipEngine,
		Type:    TypeValidation,
		Code:    CodeFieldValueRequired,
		Field:   field,
	}
}

// NewBusinessRules returns an error for a request that was well formed but
// could not be satisfied.
func NewBusinessRules(code ErrorCode, message, requestID string) *Error {
	return &Error{
		Message:   message,
		RequestID: requestID,
		Source:    SourceShipEngine,
		Type:      TypeBusinessRules,
		Code:      code,
	}
}

// NewRateLimit returns the error reported once all retries were spent on 429
// responses.
func NewRateLimit(retryAttempt int, source ErrorSource, requestID, url string) *Error {
	if source == "" {
		source = SourceShipEngine
	}
	return &Error{
		Message:      "You have exceeded the rate limit.",
		RequestID:    requestID,
		Source:       source,
		Type:         TypeSystem,
		Code:         CodeRateLimitExceeded,
		URL:          url,
		StatusCode:   429,
		RetryAttempt: retryAttempt,
	}
}

// NewTransport wraps a network-level failure. The message is taken verbatim
// from the cause so callers see what the transport reported.
func NewTransport(err error, url string) *Error {
	return &Error{
		Message: err.Error(),
		URL:     url,
		Err:     err,
	}
}

// NewDecode returns the error for a response body that could not be decoded.
func NewDecode(err error, requestID, url string, statusCode int) *Error {
	return &Error{
		Message:    fmt.Sprintf("Invalid response from ShipEngine: %v", err),
		RequestID:  requestID,
		Source:     SourceShipEngine,
		Type:       TypeSystem,
		Code:       CodeUnspecified,
		URL:        url,
		StatusCode: statusCode,
		Err:        err,
	}
}
