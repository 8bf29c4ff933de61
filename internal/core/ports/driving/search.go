package driving

import (
	"context"

	"github.com/autopropelidos/portal/internal/core/domain"
)

// UnifiedSearchService searches several content domains at once.
type UnifiedSearchService interface {
	// Search queries the requested domains concurrently and merges the
	// pages into a single envelope.
	Search(ctx context.Context, query string, opts domain.UnifiedSearchOptions) (*domain.UnifiedSearchResult, error)

	// Invalidate drops cached unified envelopes whose key matches pattern.
	Invalidate(ctx context.Context, pattern string) (int, error)
}
