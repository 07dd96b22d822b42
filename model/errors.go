package model

import "errors"

// Sentinel errors of the recommendation core. Callers check them with errors.Is
// after the usual context wrapping.
var (
	// ErrEmptyProfile is returned by query building when the profile has no
	// searchable fields (no skills, no interests, no experience).
	ErrEmptyProfile = errors.New("profile has no searchable fields")

	// ErrInvalidProfile is returned by ranking when the profile is nil or empty.
	ErrInvalidProfile = errors.New("profile is invalid")

	// ErrInvalidQuery is returned when a retrieval query has neither text nor filters.
	ErrInvalidQuery = errors.New("query has no text and no filters")

	// ErrRetrievalUnavailable is returned when every retrieval query failed.
	// A partial failure is absorbed, this error means nothing could be retrieved.
	ErrRetrievalUnavailable = errors.New("retrieval unavailable")

	// ErrEmbeddingService is returned when the embedding provider fails.
	ErrEmbeddingService = errors.New("embedding service failed")

	// ErrIndexUnavailable is returned when the vector index cannot be reached.
	ErrIndexUnavailable = errors.New("vector index unavailable")
)
