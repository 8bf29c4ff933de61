package services

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/autopropelidos/portal/internal/core/domain"
	"github.com/autopropelidos/portal/internal/core/ports/driven"
	"github.com/autopropelidos/portal/internal/core/ports/driving"
	"github.com/autopropelidos/portal/internal/logger"
)

// Ensure UnifiedSearchService implements the interface.
var _ driving.UnifiedSearchService = (*UnifiedSearchService)(nil)

// defaultUnifiedLimit is the page size when the caller gives none.
const defaultUnifiedLimit = 10

// Domains holds the providers a unified search can fan out to.
// A nil provider makes its domain unsupported.
type Domains struct {
	News        driving.NewsService
	Videos      driving.VideoService
	Vehicles    driving.VehicleService
	Regulations driving.RegulationService
}

// termSource is implemented by providers that can offer suggestion terms.
type termSource interface {
	Terms(ctx context.Context, query string, sample int) (TermStats, error)
}

// UnifiedSearchDeps holds the collaborators of the unified search.
type UnifiedSearchDeps struct {
	Cache    driven.CacheStore
	Clock    driven.Clock
	Logger   driven.EventLogger
	Settings domain.SearchSettings
	TTL      time.Duration

	// Vocabulary overrides the predefined suggestion terms.
	Vocabulary []string
}

// UnifiedSearchService answers one query across several domains.
type UnifiedSearchService struct {
	domains    Domains
	cache      cacheLayer
	clock      driven.Clock
	log        driven.EventLogger
	settings   domain.SearchSettings
	ttl        time.Duration
	vocabulary []string
	sf         singleflight.Group
}

// NewUnifiedSearchService creates a unified search over domains.
func NewUnifiedSearchService(domains Domains, deps UnifiedSearchDeps) *UnifiedSearchService {
	if deps.Clock == nil {
		deps.Clock = systemClock{}
	}
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}
	if deps.Vocabulary == nil {
		deps.Vocabulary = Vocabulary
	}
	return &UnifiedSearchService{
		domains:    domains,
		cache:      newCacheLayer(deps.Cache, NamespaceUnified, deps.Logger),
		clock:      deps.Clock,
		log:        deps.Logger,
		settings:   deps.Settings,
		ttl:        deps.TTL,
		vocabulary: deps.Vocabulary,
	}
}

// unifiedKey is the composite cache key material.
type unifiedKey struct {
	Query       string               `json:"query"`
	Types       []domain.ContentType `json:"types"`
	Filters     domain.SearchFilters `json:"filters"`
	Pagination  domain.Pagination    `json:"pagination"`
	Suggestions bool                 `json:"suggestions"`
}

func (k unifiedKey) hash() string {
	data, err := json.Marshal(k)
	if err != nil {
		data = []byte(fmt.Sprintf("%v", k))
	}
	return strconv.FormatUint(xxhash.Sum64(data), 16)
}

// Search queries the requested domains concurrently and merges their pages.
// A failing domain contributes an empty page and an entry in Errors;
// envelopes with errors are not cached.
func (s *UnifiedSearchService) Search(ctx context.Context, query string, opts domain.UnifiedSearchOptions) (*domain.UnifiedSearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	types, err := s.requestedTypes(opts.Types)
	if err != nil {
		return nil, err
	}
	opts.Types = types
	opts.Pagination = opts.Pagination.Normalize(defaultUnifiedLimit, s.settings.MaxLimit)

	key := unifiedKey{
		Query:       query,
		Types:       types,
		Filters:     opts.Filters,
		Pagination:  opts.Pagination,
		Suggestions: opts.IncludeSuggestions,
	}.hash()

	var cached domain.UnifiedSearchResult
	if s.cache.get(ctx, key, &cached) {
		cached.Cached = true
		cached.SearchTimeMs = 0
		s.log.SearchQuery(query, opts.Filters, cached.TotalResults)
		return &cached, nil
	}

	// The shared computation outlives any single caller; each domain is
	// still bounded by the provider timeout.
	shared := context.WithoutCancel(ctx)
	ch := s.sf.DoChan(key, func() (any, error) {
		res := s.compute(shared, query, opts)
		if len(res.Errors) == 0 {
			s.cache.set(shared, key, res, s.ttl)
		}
		return res, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return cloneUnified(r.Val.(*domain.UnifiedSearchResult)), nil
	}
}

// cloneUnified copies res so callers sharing a computation never alias
// each other's slices or maps.
func cloneUnified(res *domain.UnifiedSearchResult) *domain.UnifiedSearchResult {
	out := *res
	out.ResultsByType.News.Items = slices.Clone(res.ResultsByType.News.Items)
	out.ResultsByType.Videos.Items = slices.Clone(res.ResultsByType.Videos.Items)
	out.ResultsByType.Vehicles.Items = slices.Clone(res.ResultsByType.Vehicles.Items)
	out.ResultsByType.Regulations.Items = slices.Clone(res.ResultsByType.Regulations.Items)
	out.Suggestions = slices.Clone(res.Suggestions)
	out.Errors = maps.Clone(res.Errors)
	return &out
}

// Invalidate drops cached envelopes whose key matches pattern.
func (s *UnifiedSearchService) Invalidate(ctx context.Context, pattern string) (int, error) {
	return s.cache.invalidate(ctx, pattern)
}

// requestedTypes validates, deduplicates and sorts the requested domains.
func (s *UnifiedSearchService) requestedTypes(requested []domain.ContentType) ([]domain.ContentType, error) {
	if len(requested) == 0 {
		requested = s.settings.Providers
	}
	if len(requested) == 0 {
		requested = domain.AllContentTypes()
	}

	types := make([]domain.ContentType, 0, len(requested))
	for _, t := range requested {
		if !t.IsValid() {
			return nil, fmt.Errorf("%w: unknown content type %q", domain.ErrInvalidInput, t)
		}
		if !s.supports(t) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, t)
		}
		if !slices.Contains(types, t) {
			types = append(types, t)
		}
	}
	slices.Sort(types)
	return types, nil
}

func (s *UnifiedSearchService) supports(t domain.ContentType) bool {
	switch t {
	case domain.ContentTypeNews:
		return s.domains.News != nil
	case domain.ContentTypeVideos:
		return s.domains.Videos != nil
	case domain.ContentTypeVehicles:
		return s.domains.Vehicles != nil
	case domain.ContentTypeRegulations:
		return s.domains.Regulations != nil
	default:
		return false
	}
}

// compute fans out to every requested domain and assembles the envelope.
func (s *UnifiedSearchService) compute(ctx context.Context, query string, opts domain.UnifiedSearchOptions) *domain.UnifiedSearchResult {
	start := s.clock.Now()

	results := domain.EmptyResultsByType(opts.Pagination)
	failures := make([]error, len(opts.Types))
	terms := make([]TermStats, len(opts.Types))

	g, gctx := errgroup.WithContext(ctx)
	for i, t := range opts.Types {
		g.Go(func() error {
			err := s.searchDomain(gctx, t, query, opts, &results)
			if err != nil {
				failures[i] = err
				s.log.Error("unified_search", "domain search failed", err, map[string]any{
					"content_type": t.String(),
					"query":        query,
					"filters":      opts.Filters,
					"pagination":   opts.Pagination,
				})
				return nil
			}
			if opts.IncludeSuggestions && query != "" {
				terms[i] = s.domainTerms(gctx, t, query)
			}
			return nil
		})
	}
	_ = g.Wait()

	res := &domain.UnifiedSearchResult{
		Query:         query,
		TotalResults:  results.Total(),
		ResultsByType: results,
		Suggestions:   []string{},
	}
	for i, err := range failures {
		if err == nil {
			continue
		}
		if res.Errors == nil {
			res.Errors = make(map[domain.ContentType]string)
		}
		res.Errors[opts.Types[i]] = err.Error()
	}

	if opts.IncludeSuggestions && query != "" {
		merged := make(TermStats)
		for _, ts := range terms {
			merged.Merge(ts)
		}
		res.Suggestions = RankSuggestions(merged, s.vocabulary, query, s.suggestionCap())
	}

	res.SearchTimeMs = s.clock.Now().Sub(start).Milliseconds()
	s.log.Info("unified_search", "unified search completed", map[string]any{
		"query":          query,
		"types":          opts.Types,
		"total_results":  res.TotalResults,
		"search_time_ms": res.SearchTimeMs,
		"failed_domains": len(res.Errors),
	})
	return res
}

// searchDomain runs one provider search and stores its page in results.
// Each goroutine writes a distinct field of results.
func (s *UnifiedSearchService) searchDomain(ctx context.Context, t domain.ContentType, query string, opts domain.UnifiedSearchOptions, results *domain.ResultsByType) error {
	timeout := s.settings.ProviderTimeout
	switch t {
	case domain.ContentTypeNews:
		page, err := isolate(ctx, timeout, func(ctx context.Context) (domain.SearchResult[domain.NewsItem], error) {
			return s.domains.News.Search(ctx, query, opts.Filters, opts.Pagination)
		})
		if err == nil {
			results.News = page
		}
		return err
	case domain.ContentTypeVideos:
		page, err := isolate(ctx, timeout, func(ctx context.Context) (domain.SearchResult[domain.VideoItem], error) {
			return s.domains.Videos.Search(ctx, query, opts.Filters, opts.Pagination)
		})
		if err == nil {
			results.Videos = page
		}
		return err
	case domain.ContentTypeVehicles:
		page, err := isolate(ctx, timeout, func(ctx context.Context) (domain.SearchResult[domain.VehicleItem], error) {
			return s.domains.Vehicles.Search(ctx, query, opts.Filters, opts.Pagination)
		})
		if err == nil {
			results.Vehicles = page
		}
		return err
	case domain.ContentTypeRegulations:
		page, err := isolate(ctx, timeout, func(ctx context.Context) (domain.SearchResult[domain.RegulationItem], error) {
			return s.domains.Regulations.Search(ctx, query, opts.Filters, opts.Pagination)
		})
		if err == nil {
			results.Regulations = page
		}
		return err
	default:
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedType, t)
	}
}

// domainTerms samples suggestion terms from one provider.
// Failures only cost suggestions and are logged.
func (s *UnifiedSearchService) domainTerms(ctx context.Context, t domain.ContentType, query string) TermStats {
	var provider any
	switch t {
	case domain.ContentTypeNews:
		provider = s.domains.News
	case domain.ContentTypeVideos:
		provider = s.domains.Videos
	case domain.ContentTypeVehicles:
		provider = s.domains.Vehicles
	case domain.ContentTypeRegulations:
		provider = s.domains.Regulations
	}
	src, ok := provider.(termSource)
	if !ok {
		return nil
	}

	stats, err := isolate(ctx, s.settings.ProviderTimeout, func(ctx context.Context) (TermStats, error) {
		return src.Terms(ctx, query, s.settings.SuggestionSample)
	})
	if err != nil {
		s.log.Error("suggestions", "term sampling failed", err, map[string]any{"content_type": t.String(), "query": query})
		return nil
	}
	return stats
}

func (s *UnifiedSearchService) suggestionCap() int {
	if s.settings.SuggestionCap > 0 {
		return s.settings.SuggestionCap
	}
	return defaultUnifiedLimit
}

// isolate runs fn under timeout, converting a panic or an expired deadline
// into an error. After a timeout fn keeps running but its result is discarded.
func isolate[R any](ctx context.Context, timeout time.Duration, fn func(ctx context.Context) (R, error)) (R, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type outcome struct {
		val R
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("%w: panic: %v", domain.ErrProviderFailure, r)}
			}
		}()
		v, err := fn(ctx)
		done <- outcome{val: v, err: err}
	}()

	select {
	case o := <-done:
		return o.val, o.err
	case <-ctx.Done():
		var zero R
		return zero, fmt.Errorf("%w: %w", domain.ErrProviderFailure, ctx.Err())
	}
}
