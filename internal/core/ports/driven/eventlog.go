package driven

// EventLogger records structured events for one domain.
// Implementations must never panic and must swallow their own failures.
type EventLogger interface {
	// Info records an informational event for an operation.
	Info(operation, message string, fields map[string]any)

	// Error records a failed operation with its input context.
	Error(operation, message string, err error, fields map[string]any)

	// CacheHit records a cache hit for key.
	CacheHit(key string)

	// CacheMiss records a cache miss for key.
	CacheMiss(key string)

	// SearchQuery records a performed search and its result count.
	SearchQuery(term string, filters any, resultCount int)

	// ContentAccess records that a single record was served.
	ContentAccess(contentType, id string)
}
