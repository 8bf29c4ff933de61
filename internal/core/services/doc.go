// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The in-memory search engine (Index) filters, ranks and paginates any
// record collection; Provider layers it over a RecordSource and a
// CacheStore for one content domain; UnifiedSearchService fans a query
// out to every domain provider and merges the pages.
//
// Services are pure Go with no CGO.
package services
