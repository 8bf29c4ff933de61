// Package domain defines the core business entities for the autopropelidos portal.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - NewsItem, VideoItem, VehicleItem, RegulationItem: the four content records
//   - SearchFilters and Pagination: the query inputs shared by every provider
//   - SearchResult: a paginated slice of records
//   - UnifiedSearchResult: the cross-domain search envelope
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
