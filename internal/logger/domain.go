package logger

import (
	"github.com/rs/zerolog"

	"github.com/autopropelidos/portal/internal/core/ports/driven"
)

// Field names shared by every domain entry.
const (
	FieldDomain      = "domain"
	FieldOperation   = "operation"
	FieldEvent       = "event"
	FieldKey         = "key"
	FieldTerm        = "term"
	FieldFilters     = "filters"
	FieldResultCount = "result_count"
	FieldContentType = "content_type"
	FieldID          = "id"
)

// Event names.
const (
	EventCacheHit      = "cache_hit"
	EventCacheMiss     = "cache_miss"
	EventSearchQuery   = "search_query"
	EventContentAccess = "content_access"
)

// Ensure DomainLogger implements the interface.
var _ driven.EventLogger = (*DomainLogger)(nil)

// DomainLogger writes structured entries tagged with a content domain.
type DomainLogger struct {
	domain string
}

// For returns a logger for the named domain ("news", "unified", ...).
func For(domain string) *DomainLogger {
	return &DomainLogger{domain: domain}
}

// Domain returns the domain tag.
func (d *DomainLogger) Domain() string {
	return d.domain
}

// log runs fn against a domain-tagged logger, swallowing any panic.
func (d *DomainLogger) log(fn func(l zerolog.Logger)) {
	defer func() {
		_ = recover()
	}()
	fn(current().With().Str(FieldDomain, d.domain).Logger())
}

// Info records an informational event for an operation.
func (d *DomainLogger) Info(operation, message string, fields map[string]any) {
	d.log(func(l zerolog.Logger) {
		l.Info().Str(FieldOperation, operation).Fields(fields).Msg(message)
	})
}

// Error records a failed operation with its input context.
func (d *DomainLogger) Error(operation, message string, err error, fields map[string]any) {
	d.log(func(l zerolog.Logger) {
		l.Error().Str(FieldOperation, operation).Err(err).Fields(fields).Msg(message)
	})
}

// CacheHit records a cache hit at debug level.
func (d *DomainLogger) CacheHit(key string) {
	d.log(func(l zerolog.Logger) {
		l.Debug().Str(FieldEvent, EventCacheHit).Str(FieldKey, key).Msg("cache hit")
	})
}

// CacheMiss records a cache miss at debug level.
func (d *DomainLogger) CacheMiss(key string) {
	d.log(func(l zerolog.Logger) {
		l.Debug().Str(FieldEvent, EventCacheMiss).Str(FieldKey, key).Msg("cache miss")
	})
}

// SearchQuery records a performed search.
func (d *DomainLogger) SearchQuery(term string, filters any, resultCount int) {
	d.log(func(l zerolog.Logger) {
		l.Info().
			Str(FieldEvent, EventSearchQuery).
			Str(FieldTerm, term).
			Interface(FieldFilters, filters).
			Int(FieldResultCount, resultCount).
			Msg("search performed")
	})
}

// ContentAccess records that a single record was served.
func (d *DomainLogger) ContentAccess(contentType, id string) {
	d.log(func(l zerolog.Logger) {
		l.Info().
			Str(FieldEvent, EventContentAccess).
			Str(FieldContentType, contentType).
			Str(FieldID, id).
			Msg("content accessed")
	})
}

// nopLogger discards every event.
type nopLogger struct{}

// Nop returns an EventLogger that discards everything.
func Nop() driven.EventLogger {
	return nopLogger{}
}

func (nopLogger) Info(string, string, map[string]any)         {}
func (nopLogger) Error(string, string, error, map[string]any) {}
func (nopLogger) CacheHit(string)                             {}
func (nopLogger) CacheMiss(string)                            {}
func (nopLogger) SearchQuery(string, any, int)                {}
func (nopLogger) ContentAccess(string, string)                {}
