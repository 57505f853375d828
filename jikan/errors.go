package jikan

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrValidation indicates a caller-supplied parameter was rejected before any request was made
	ErrValidation = errors.New("jikan: invalid parameter")
	// ErrRequest indicates the transport reported a failure
	ErrRequest = errors.New("jikan: request failed")
	// ErrParse indicates the response body could not be decoded
	ErrParse = errors.New("jikan: malformed response")
	// ErrMapping indicates a response field held a value outside its declared set
	ErrMapping = errors.New("jikan: unrecognized response value")
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("jikan: invalid client configuration")
)

// Error types for client operations
type (
	// ValidationError reports the parameter that failed validation and its offending value
	ValidationError struct {
		Param  string
		Value  any
		Reason string
	}

	// RequestError represents a transport failure, optionally carrying the HTTP status
	RequestError struct {
		URL        string
		StatusCode int // 0 when no response was received
		Message    string
		Body       string
		Err        error
	}

	// ParseError indicates the response body was not the expected JSON document
	ParseError struct {
		URL string
		Err error
	}

	// MappingError indicates an enum-backed response field held an unknown value
	MappingError struct {
		Field string
		Value string
	}
)

func (e *ValidationError) Error() string {
	return fmt.Sprintf("jikan: invalid %s %v: %s", e.Param, e.Value, e.Reason)
}

// Is reports whether target is ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *RequestError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("jikan: request to %s failed with status %d: %s", e.URL, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("jikan: request to %s failed: %s", e.URL, e.Message)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrRequest
func (e *RequestError) Is(target error) bool {
	return target == ErrRequest
}

// IsNotFound checks if the server answered 404
func (e *RequestError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsRateLimited checks if the server throttled the request
func (e *RequestError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// IsServerError checks if the server failed on its side
func (e *RequestError) IsServerError() bool {
	return e.StatusCode >= 500
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("jikan: failed to parse response from %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrParse
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("jikan: unrecognized value %q for %s", e.Value, e.Field)
}

// Is reports whether target is ErrMapping
func (e *MappingError) Is(target error) bool {
	return target == ErrMapping
}

func invalid(param string, value any, reason string) error {
	return &ValidationError{Param: param, Value: value, Reason: reason}
}
