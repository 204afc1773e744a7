// Package errors defines common error types used throughout the LinkedIn API client.
package errors

import (
	"fmt"
	"net/http"
)

// Kind classifies an APIError by the HTTP status LinkedIn returned.
type Kind int

const (
	// KindUnknown represents an unclassified error.
	KindUnknown Kind = iota
	// KindGeneral represents a 400 Bad Request response.
	KindGeneral
	// KindUnauthorized represents a 401 response (missing/expired token).
	KindUnauthorized
	// KindAccessDenied represents a 403 response (insufficient permissions).
	KindAccessDenied
	// KindNotFound represents a 404 response.
	KindNotFound
	// KindServer represents a 500 response.
	KindServer
	// KindServiceUnavailable represents a 502 or 503 response.
	KindServiceUnavailable
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindGeneral:
		return "GeneralError"
	case KindUnauthorized:
		return "Unauthorized"
	case KindAccessDenied:
		return "AccessDenied"
	case KindNotFound:
		return "NotFound"
	case KindServer:
		return "ServerError"
	case KindServiceUnavailable:
		return "ServiceUnavailable"
	default:
		return "Unknown"
	}
}

// KindForStatus maps an HTTP status code to its Kind. The second return value
// is false for statuses the taxonomy does not cover; callers must pass those
// responses through unclassified.
func KindForStatus(status int) (Kind, bool) {
	switch status {
	case http.StatusBadRequest:
		return KindGeneral, true
	case http.StatusUnauthorized:
		return KindUnauthorized, true
	case http.StatusForbidden:
		return KindAccessDenied, true
	case http.StatusNotFound:
		return KindNotFound, true
	case http.StatusInternalServerError:
		return KindServer, true
	case http.StatusBadGateway, http.StatusServiceUnavailable:
		return KindServiceUnavailable, true
	default:
		return KindUnknown, false
	}
}

// APIError represents an error response from the LinkedIn API.
type APIError struct {
	// StatusCode is the HTTP status code of the response
	StatusCode int
	// Kind is the classification derived from StatusCode
	Kind Kind
	// Message is the error message, taken from the response body when the
	// API provides one and from the HTTP reason phrase otherwise
	Message string
	// Body contains the raw response body (if available)
	Body string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("linkedin API error (%s, status %d): %s", e.Kind, e.StatusCode, e.Message)
}

// UsageError indicates a client-side precondition failure detected before any
// network call is made. It is never derived from an HTTP status code.
type UsageError struct {
	// Field contains the name of the parameter that caused the error
	Field string
	// Message contains the detailed error message
	Message string
}

func (e *UsageError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("usage error in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("usage error: %s", e.Message)
}

// ParseError indicates a problem parsing the API response.
type ParseError struct {
	// Operation is the name of the API operation where parsing failed
	Operation string
	// Message contains the detailed error message
	Message string
	// Err contains the underlying error if available
	Err error
}

func (e *ParseError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}

	if e.Operation != "" {
		return fmt.Sprintf("parse error during %s: %s", e.Operation, msg)
	}
	return fmt.Sprintf("parse error: %s", msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ClientError indicates a problem with the HTTP client operations themselves,
// as opposed to an error response from the API.
type ClientError struct {
	// Operation describes what the client was trying to do
	Operation string
	// Message contains the detailed error message
	Message string
	// Err contains the underlying error if available
	Err error
}

func (e *ClientError) Error() string {
	if e.Err != nil && e.Operation == "" && e.Message == "" {
		return e.Err.Error()
	}
	if e.Err != nil {
		return fmt.Sprintf("client error: %v", e.Err)
	}
	if e.Operation != "" && e.Message != "" {
		return fmt.Sprintf("client error during %s: %s", e.Operation, e.Message)
	}
	if e.Message != "" {
		return fmt.Sprintf("client error: %s", e.Message)
	}
	return "client error"
}

func (e *ClientError) Unwrap() error {
	return e.Err
}
