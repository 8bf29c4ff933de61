package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/autopropelidos/portal/internal/core/domain"
	"github.com/autopropelidos/portal/internal/core/ports/driven"
	"github.com/autopropelidos/portal/internal/logger"
)

// ProviderConfig describes one content domain.
type ProviderConfig[T domain.Record, S any] struct {
	// Type is the domain served.
	Type domain.ContentType

	// Namespace is the cache namespace. Defaults to the type name.
	Namespace string

	// Index defines the searchable fields and default ordering.
	Index Index[T]

	// Predicates translates filters into the constraints the domain understands.
	Predicates func(f domain.SearchFilters) []Predicate[T]

	// Stats aggregates the whole collection at time now.
	Stats func(records []T, now time.Time) S
}

// ProviderDeps holds the collaborators shared by every provider.
type ProviderDeps struct {
	Cache        driven.CacheStore
	Clock        driven.Clock
	Logger       driven.EventLogger
	TTL          domain.CacheTTLSettings
	DefaultLimit int
	MaxLimit     int
}

// Provider serves the uniform read API of one domain over a record source,
// memoizing every answer in its cache namespace.
type Provider[T domain.Record, S any] struct {
	cfg          ProviderConfig[T, S]
	source       driven.RecordSource[T]
	cache        cacheLayer
	clock        driven.Clock
	log          driven.EventLogger
	ttl          domain.CacheTTLSettings
	defaultLimit int
	maxLimit     int
}

// NewProvider creates a provider. Nil Clock and Logger are replaced by
// the system clock and a no-op logger.
func NewProvider[T domain.Record, S any](cfg ProviderConfig[T, S], source driven.RecordSource[T], deps ProviderDeps) *Provider[T, S] {
	if cfg.Namespace == "" {
		cfg.Namespace = cfg.Type.String()
	}
	if deps.Clock == nil {
		deps.Clock = systemClock{}
	}
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}
	return &Provider[T, S]{
		cfg:          cfg,
		source:       source,
		cache:        newCacheLayer(deps.Cache, cfg.Namespace, deps.Logger),
		clock:        deps.Clock,
		log:          deps.Logger,
		ttl:          deps.TTL,
		defaultLimit: deps.DefaultLimit,
		maxLimit:     deps.MaxLimit,
	}
}

// ContentType returns the domain served.
func (p *Provider[T, S]) ContentType() domain.ContentType {
	return p.cfg.Type
}

// Index returns the search index of the domain.
func (p *Provider[T, S]) Index() Index[T] {
	return p.cfg.Index
}

// GetAll lists records matching filters in default order.
func (p *Provider[T, S]) GetAll(ctx context.Context, filters domain.SearchFilters, page domain.Pagination) (domain.SearchResult[T], error) {
	page = page.Normalize(p.defaultLimit, p.maxLimit)
	key := cacheKey("all:", filters, page)

	return memoize(ctx, p.cache, key, p.ttl.All, func() (domain.SearchResult[T], error) {
		params := map[string]any{"filters": filters, "pagination": page}
		records, err := p.records(ctx, "get_all", params)
		if err != nil {
			return domain.SearchResult[T]{}, err
		}
		return p.cfg.Index.Search(records, filters.Query, p.predicates(filters), page), nil
	})
}

// Search lists records whose searchable text contains term.
// Each computed (uncached) search is logged once as a search query.
func (p *Provider[T, S]) Search(ctx context.Context, term string, filters domain.SearchFilters, page domain.Pagination) (domain.SearchResult[T], error) {
	term = strings.TrimSpace(term)
	page = page.Normalize(p.defaultLimit, p.maxLimit)
	key := cacheKey("search:", term, filters, page)

	return memoize(ctx, p.cache, key, p.ttl.Search, func() (domain.SearchResult[T], error) {
		params := map[string]any{"term": term, "filters": filters, "pagination": page}
		records, err := p.records(ctx, "search", params)
		if err != nil {
			return domain.SearchResult[T]{}, err
		}

		preds := append(p.predicates(filters), TextMatch(p.cfg.Index, filters.Query))
		res := p.cfg.Index.Search(records, term, preds, page)
		p.log.SearchQuery(term, filters, res.Total)
		return res, nil
	})
}

// GetByID returns the record with id, or nil when there is none.
// Absent records are not cached.
func (p *Provider[T, S]) GetByID(ctx context.Context, id string) (*T, error) {
	key := "item:" + id

	var cached T
	if p.cache.get(ctx, key, &cached) {
		p.log.ContentAccess(p.cfg.Type.String(), id)
		return &cached, nil
	}

	records, err := p.records(ctx, "get_by_id", map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if r.GetID() == id {
			found := r
			p.cache.set(ctx, key, found, p.ttl.Item)
			p.log.ContentAccess(p.cfg.Type.String(), id)
			return &found, nil
		}
	}
	return nil, nil
}

// GetStats aggregates the whole collection.
func (p *Provider[T, S]) GetStats(ctx context.Context) (S, error) {
	return memoize(ctx, p.cache, "stats", p.ttl.Stats, func() (S, error) {
		records, err := p.records(ctx, "get_stats", nil)
		if err != nil {
			var zero S
			return zero, err
		}
		return p.cfg.Stats(records, p.clock.Now()), nil
	})
}

// Invalidate drops cached entries of the domain whose key matches pattern.
func (p *Provider[T, S]) Invalidate(ctx context.Context, pattern string) (int, error) {
	return p.cache.invalidate(ctx, pattern)
}

// Terms collects suggestion candidates for query from the first sample records.
// A sample of zero or less considers the whole collection.
func (p *Provider[T, S]) Terms(ctx context.Context, query string, sample int) (TermStats, error) {
	records, err := p.records(ctx, "terms", map[string]any{"query": query, "sample": sample})
	if err != nil {
		return nil, err
	}
	if sample > 0 && len(records) > sample {
		records = records[:sample]
	}
	return p.cfg.Index.Terms(query, records), nil
}

// records loads the collection, logging and wrapping any failure.
func (p *Provider[T, S]) records(ctx context.Context, op string, params map[string]any) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, p.fail(op, params, err)
	}
	records, err := p.source.ListAll(ctx)
	if err != nil {
		return nil, p.fail(op, params, err)
	}
	return records, nil
}

func (p *Provider[T, S]) fail(op string, params map[string]any, err error) error {
	p.log.Error(op, "provider operation failed", err, params)
	return fmt.Errorf("%w: %s %s: %w", domain.ErrProviderFailure, p.cfg.Type, op, err)
}

func (p *Provider[T, S]) predicates(f domain.SearchFilters) []Predicate[T] {
	if p.cfg.Predicates == nil {
		return nil
	}
	return p.cfg.Predicates(f)
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
