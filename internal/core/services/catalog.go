package services

import (
	"context"
	"fmt"

	"github.com/autopropelidos/portal/internal/core/domain"
	"github.com/autopropelidos/portal/internal/core/ports/driving"
)

// Ensure Catalog implements the interface.
var _ driving.CatalogService = (*Catalog)(nil)

// Catalog routes requests to the provider of a content type.
type Catalog struct {
	domains Domains
}

// NewCatalog creates a catalog over domains. A nil provider makes its type unsupported.
func NewCatalog(domains Domains) *Catalog {
	return &Catalog{domains: domains}
}

// List returns one page of records of type t matching filters.
func (c *Catalog) List(ctx context.Context, t domain.ContentType, filters domain.SearchFilters, page domain.Pagination) (any, error) {
	switch t {
	case domain.ContentTypeNews:
		if c.domains.News != nil {
			return c.domains.News.GetAll(ctx, filters, page)
		}
	case domain.ContentTypeVideos:
		if c.domains.Videos != nil {
			return c.domains.Videos.GetAll(ctx, filters, page)
		}
	case domain.ContentTypeVehicles:
		if c.domains.Vehicles != nil {
			return c.domains.Vehicles.GetAll(ctx, filters, page)
		}
	case domain.ContentTypeRegulations:
		if c.domains.Regulations != nil {
			return c.domains.Regulations.GetAll(ctx, filters, page)
		}
	}
	return nil, unsupported(t)
}

// Search returns one page of records of type t containing term.
func (c *Catalog) Search(ctx context.Context, t domain.ContentType, term string, filters domain.SearchFilters, page domain.Pagination) (any, error) {
	switch t {
	case domain.ContentTypeNews:
		if c.domains.News != nil {
			return c.domains.News.Search(ctx, term, filters, page)
		}
	case domain.ContentTypeVideos:
		if c.domains.Videos != nil {
			return c.domains.Videos.Search(ctx, term, filters, page)
		}
	case domain.ContentTypeVehicles:
		if c.domains.Vehicles != nil {
			return c.domains.Vehicles.Search(ctx, term, filters, page)
		}
	case domain.ContentTypeRegulations:
		if c.domains.Regulations != nil {
			return c.domains.Regulations.Search(ctx, term, filters, page)
		}
	}
	return nil, unsupported(t)
}

// Get returns the record of type t with id.
func (c *Catalog) Get(ctx context.Context, t domain.ContentType, id string) (any, bool, error) {
	switch t {
	case domain.ContentTypeNews:
		if c.domains.News != nil {
			return found(c.domains.News.GetByID(ctx, id))
		}
	case domain.ContentTypeVideos:
		if c.domains.Videos != nil {
			return found(c.domains.Videos.GetByID(ctx, id))
		}
	case domain.ContentTypeVehicles:
		if c.domains.Vehicles != nil {
			return found(c.domains.Vehicles.GetByID(ctx, id))
		}
	case domain.ContentTypeRegulations:
		if c.domains.Regulations != nil {
			return found(c.domains.Regulations.GetByID(ctx, id))
		}
	}
	return nil, false, unsupported(t)
}

// Stats returns the statistics of type t.
func (c *Catalog) Stats(ctx context.Context, t domain.ContentType) (any, error) {
	switch t {
	case domain.ContentTypeNews:
		if c.domains.News != nil {
			return c.domains.News.GetStats(ctx)
		}
	case domain.ContentTypeVideos:
		if c.domains.Videos != nil {
			return c.domains.Videos.GetStats(ctx)
		}
	case domain.ContentTypeVehicles:
		if c.domains.Vehicles != nil {
			return c.domains.Vehicles.GetStats(ctx)
		}
	case domain.ContentTypeRegulations:
		if c.domains.Regulations != nil {
			return c.domains.Regulations.GetStats(ctx)
		}
	}
	return nil, unsupported(t)
}

// Latest returns the newest news articles in category.
func (c *Catalog) Latest(ctx context.Context, category string, limit int) ([]domain.NewsItem, error) {
	if c.domains.News == nil {
		return nil, unsupported(domain.ContentTypeNews)
	}
	return c.domains.News.Latest(ctx, category, limit)
}

// Invalidate drops cached entries of type t whose key matches pattern.
func (c *Catalog) Invalidate(ctx context.Context, t domain.ContentType, pattern string) (int, error) {
	switch t {
	case domain.ContentTypeNews:
		if c.domains.News != nil {
			return c.domains.News.Invalidate(ctx, pattern)
		}
	case domain.ContentTypeVideos:
		if c.domains.Videos != nil {
			return c.domains.Videos.Invalidate(ctx, pattern)
		}
	case domain.ContentTypeVehicles:
		if c.domains.Vehicles != nil {
			return c.domains.Vehicles.Invalidate(ctx, pattern)
		}
	case domain.ContentTypeRegulations:
		if c.domains.Regulations != nil {
			return c.domains.Regulations.Invalidate(ctx, pattern)
		}
	}
	return 0, unsupported(t)
}

func found[T any](rec *T, err error) (any, bool, error) {
	if err != nil || rec == nil {
		return nil, false, err
	}
	return rec, true, nil
}

func unsupported(t domain.ContentType) error {
	return fmt.Errorf("%w: %q", domain.ErrUnsupportedType, t)
}
