package driven

import "context"

// RecordSource lists every record of one content type.
// Implementations may be static seed data, a database or remote APIs.
// The returned order is the collection order used to break ranking ties.
type RecordSource[T any] interface {
	// ListAll returns all records. The caller must not modify the slice.
	ListAll(ctx context.Context) ([]T, error)
}
