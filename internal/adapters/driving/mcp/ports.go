package mcp

import (
	"github.com/autopropelidos/portal/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Unified answers cross-domain searches.
	Unified driving.UnifiedSearchService

	// Catalog serves per-domain records and statistics.
	Catalog driving.CatalogService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Unified == nil || p.Catalog == nil {
		return ErrMissingService
	}
	return nil
}
