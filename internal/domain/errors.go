package domain

import "errors"

var (
	// ErrInvalidQuery signals an empty or malformed search query.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidPage signals an out-of-bounds page or page size.
	ErrInvalidPage = errors.New("invalid page request")
	// ErrJobNotFound signals a missing job record.
	ErrJobNotFound = errors.New("job not found")
	// ErrValidation signals an invalid job payload.
	ErrValidation = errors.New("validation failed")
	// ErrUpstreamUnavailable signals that a candidate source or the store could not be reached.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
)
