package sdk

import (
	"errors"
	"fmt"
)

// Sentinel errors matched against the service's error codes.
// Use errors.Is() to check.
var (
	ErrInvalidRequest      = errors.New("invalid request")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrNotFound            = errors.New("not found")
	ErrUnavailable         = errors.New("service unavailable")
	ErrInternalServerError = errors.New("internal server error")
)

// APIError carries the status and body of a non-2xx response.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("casefind: %s (%d %s)", e.Message, e.StatusCode, e.Code)
}

// Unwrap maps the server's error code onto a sentinel so callers can
// branch with errors.Is without inspecting status codes.
func (e *APIError) Unwrap() error {
	switch e.Code {
	case "bad_request", "validation_failed":
		return ErrInvalidRequest
	case "unauthorized":
		return ErrUnauthorized
	case "not_found":
		return ErrNotFound
	case "catalog_unavailable":
		return ErrUnavailable
	case "internal_error":
		return ErrInternalServerError
	}
	switch {
	case e.StatusCode == 401:
		return ErrUnauthorized
	case e.StatusCode == 404:
		return ErrNotFound
	case e.StatusCode >= 500:
		return ErrUnavailable
	}
	return nil
}
