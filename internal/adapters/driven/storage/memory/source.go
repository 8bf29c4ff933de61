package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/autopropelidos/portal/internal/core/domain"
	"github.com/autopropelidos/portal/internal/core/ports/driven"
)

// Ensure RecordSource implements the interface.
var _ driven.RecordSource[domain.NewsItem] = (*RecordSource[domain.NewsItem])(nil)

// RecordSource is an in-memory implementation of driven.RecordSource.
// Records are kept in insertion order.
type RecordSource[T any] struct {
	mu      sync.RWMutex
	records []T
}

// NewRecordSource creates a source holding a copy of records.
func NewRecordSource[T any](records []T) *RecordSource[T] {
	return &RecordSource[T]{records: slices.Clone(records)}
}

// ListAll returns every record in insertion order.
func (s *RecordSource[T]) ListAll(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.records), nil
}

// Replace swaps the whole collection.
func (s *RecordSource[T]) Replace(records []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = slices.Clone(records)
}

// Len returns the number of records held.
func (s *RecordSource[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
