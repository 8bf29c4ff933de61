package api

import (
	"context"
	"errors"

	"github.com/autopropelidos/portal/internal/core/ports/driving"
)

// ErrMissingService is returned when a required service is not provided.
var ErrMissingService = errors.New("api: unified search and catalog services are required")

// CacheInvalidator drops cached entries of a namespace.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, namespace, pattern string) (int, error)
}

// Ports aggregates the driving ports served over HTTP.
type Ports struct {
	// Unified answers cross-domain searches.
	Unified driving.UnifiedSearchService

	// Catalog serves per-domain listings, records and statistics.
	Catalog driving.CatalogService

	// Cache handles cache invalidation. Optional; the route answers 404 without it.
	Cache CacheInvalidator
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Unified == nil || p.Catalog == nil {
		return ErrMissingService
	}
	return nil
}
