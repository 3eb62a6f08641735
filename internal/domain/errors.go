package domain

import "errors"

var (
	// ErrInvalidQuery signals a malformed search query (empty or over-length text).
	ErrInvalidQuery = errors.New("invalid query")
	// ErrEmptyInput signals blank text passed to the vectorizer.
	ErrEmptyInput = errors.New("empty input")
	// ErrDimensionMismatch signals a vector length mismatch.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	// ErrVectorizerUnavailable signals a vectorizer provider failure.
	ErrVectorizerUnavailable = errors.New("vectorizer unavailable")
	// ErrCatalogUnavailable signals that the scenario catalog cannot be read.
	ErrCatalogUnavailable = errors.New("scenario catalog unavailable")
	// ErrScenarioNotFound signals a missing scenario.
	ErrScenarioNotFound = errors.New("scenario not found")
	// ErrUnauthorized signals a missing or invalid API key.
	ErrUnauthorized = errors.New("unauthorized")
)
