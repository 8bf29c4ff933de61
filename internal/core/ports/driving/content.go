package driving

import (
	"context"

	"github.com/autopropelidos/portal/internal/core/domain"
)

// ContentProvider is the uniform read API of one content domain.
// T is the record type and S its statistics type.
type ContentProvider[T any, S any] interface {
	// ContentType returns the domain served by the provider.
	ContentType() domain.ContentType

	// GetAll lists records matching filters, newest or most relevant first.
	GetAll(ctx context.Context, filters domain.SearchFilters, page domain.Pagination) (domain.SearchResult[T], error)

	// Search lists records whose searchable text contains term.
	Search(ctx context.Context, term string, filters domain.SearchFilters, page domain.Pagination) (domain.SearchResult[T], error)

	// GetByID returns the record with id, or nil if there is none.
	GetByID(ctx context.Context, id string) (*T, error)

	// GetStats returns aggregate statistics over the whole collection.
	GetStats(ctx context.Context) (S, error)

	// Invalidate drops cached entries whose key matches pattern.
	Invalidate(ctx context.Context, pattern string) (int, error)
}

// NewsService adds news-specific listings to the uniform API.
type NewsService interface {
	ContentProvider[domain.NewsItem, domain.NewsStats]

	// Latest returns the newest limit articles in category ("all" or empty for every category).
	Latest(ctx context.Context, category string, limit int) ([]domain.NewsItem, error)
}

// VideoService is the video domain provider.
type VideoService = ContentProvider[domain.VideoItem, domain.VideoStats]

// VehicleService is the vehicle catalogue provider.
type VehicleService = ContentProvider[domain.VehicleItem, domain.VehicleStats]

// RegulationService is the regulation domain provider.
type RegulationService = ContentProvider[domain.RegulationItem, domain.RegulationStats]
