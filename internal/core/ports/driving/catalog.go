package driving

import (
	"context"

	"github.com/autopropelidos/portal/internal/core/domain"
)

// CatalogService dispatches the uniform read API by content type.
// Results are the typed values of the selected provider
// (domain.SearchResult[domain.NewsItem], *domain.VehicleItem, domain.RegulationStats, ...).
type CatalogService interface {
	// List returns one page of records of type t matching filters.
	List(ctx context.Context, t domain.ContentType, filters domain.SearchFilters, page domain.Pagination) (any, error)

	// Search returns one page of records of type t containing term.
	Search(ctx context.Context, t domain.ContentType, term string, filters domain.SearchFilters, page domain.Pagination) (any, error)

	// Get returns the record of type t with id. found is false when there is none.
	Get(ctx context.Context, t domain.ContentType, id string) (record any, found bool, err error)

	// Stats returns the statistics of type t.
	Stats(ctx context.Context, t domain.ContentType) (any, error)

	// Latest returns the newest news articles in category.
	Latest(ctx context.Context, category string, limit int) ([]domain.NewsItem, error)

	// Invalidate drops cached entries of type t whose key matches pattern.
	Invalidate(ctx context.Context, t domain.ContentType, pattern string) (int, error)
}
