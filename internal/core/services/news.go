package services

import (
	"cmp"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/autopropelidos/portal/internal/core/domain"
	"github.com/autopropelidos/portal/internal/core/ports/driven"
	"github.com/autopropelidos/portal/internal/core/ports/driving"
)

var _ driving.NewsService = (*NewsProvider)(nil)

// recentNewsWindow bounds the "recent" count of news and video statistics.
const recentNewsWindow = 7 * 24 * time.Hour

// LatestAllCategories selects every category in Latest.
const LatestAllCategories = "all"

var newsIndex = Index[domain.NewsItem]{
	Fields: []Field[domain.NewsItem]{
		{Name: "title", Values: func(n domain.NewsItem) []string { return []string{n.Title} }},
		{Name: "description", Values: func(n domain.NewsItem) []string { return []string{n.Description} }},
		{Name: "content", Values: func(n domain.NewsItem) []string { return []string{n.Content} }},
		{Name: "tags", Values: func(n domain.NewsItem) []string { return n.Tags }, Phrase: true},
		{Name: "category", Values: func(n domain.NewsItem) []string { return []string{n.Category} }},
	},
	Compare: func(a, b domain.NewsItem) int {
		if c := newestFirst(a.PublishedAt, b.PublishedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.RelevanceScore, a.RelevanceScore)
	},
}

func newsPredicates(f domain.SearchFilters) []Predicate[domain.NewsItem] {
	return []Predicate[domain.NewsItem]{
		Equals(func(n domain.NewsItem) string { return n.Category }, f.Category),
		Equals(func(n domain.NewsItem) string { return n.Source }, f.Source),
		Contains(func(n domain.NewsItem) []string { return n.Tags }, f.Tag),
		Between(func(n domain.NewsItem) time.Time { return n.PublishedAt }, f.DateFrom, f.DateTo),
		InRange(func(n domain.NewsItem) int64 { return n.Views }, f.MinViews, f.MaxViews),
	}
}

func newsStats(records []domain.NewsItem, now time.Time) domain.NewsStats {
	stats := domain.NewsStats{
		Total:      len(records),
		ByCategory: countBy(records, func(n domain.NewsItem) string { return n.Category }),
		BySource:   countBy(records, func(n domain.NewsItem) string { return n.Source }),
		TopTags:    topTerms(records, func(n domain.NewsItem) []string { return n.Tags }, topTermsLimit),
	}
	for _, n := range records {
		stats.TotalViews += n.Views
		if within(n.PublishedAt, now, recentNewsWindow) {
			stats.Recent++
		}
	}
	return stats
}

// NewsProvider serves news articles.
type NewsProvider struct {
	*Provider[domain.NewsItem, domain.NewsStats]
}

// NewNewsProvider creates the news provider over source.
func NewNewsProvider(source driven.RecordSource[domain.NewsItem], deps ProviderDeps) *NewsProvider {
	return &NewsProvider{
		Provider: NewProvider(ProviderConfig[domain.NewsItem, domain.NewsStats]{
			Type:       domain.ContentTypeNews,
			Namespace:  NamespaceNews,
			Index:      newsIndex,
			Predicates: newsPredicates,
			Stats:      newsStats,
		}, source, deps),
	}
}

// Latest returns the newest limit articles of category.
// An empty category or "all" selects every category.
func (p *NewsProvider) Latest(ctx context.Context, category string, limit int) ([]domain.NewsItem, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		category = LatestAllCategories
	}
	limit = domain.Pagination{Page: 1, Limit: limit}.Normalize(p.defaultLimit, p.maxLimit).Limit
	key := fmt.Sprintf("latest:%s:%d", category, limit)

	return memoize(ctx, p.cache, key, p.ttl.All, func() ([]domain.NewsItem, error) {
		params := map[string]any{"category": category, "limit": limit}
		records, err := p.records(ctx, "latest", params)
		if err != nil {
			return nil, err
		}

		var preds []Predicate[domain.NewsItem]
		if category != LatestAllCategories {
			preds = append(preds, Equals(func(n domain.NewsItem) string { return n.Category }, category))
		}
		items := p.cfg.Index.Filter(records, "", preds)
		if len(items) > limit {
			items = items[:limit]
		}
		return items, nil
	})
}
