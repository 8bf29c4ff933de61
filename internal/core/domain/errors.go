package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	// Providers never return it from GetByID; a missing record is a nil result.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown content type or backend name.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrProviderFailure indicates a provider could not compute a result.
	// It always wraps the underlying cause.
	ErrProviderFailure = errors.New("provider failure")

	// ErrCacheUnavailable indicates the cache backend could not be reached.
	// The core degrades to a cache miss when it sees this error.
	ErrCacheUnavailable = errors.New("cache unavailable")

	// ErrSourceUnavailable indicates a record source could not be read.
	ErrSourceUnavailable = errors.New("record source unavailable")
)
