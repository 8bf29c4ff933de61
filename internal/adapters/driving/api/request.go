package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/autopropelidos/portal/internal/core/domain"
)

// ListRequest is the query string of listing routes.
type ListRequest struct {
	Page  int    `form:"page"`
	Limit int    `form:"limit"`
	Query string `form:"q"`

	Category string `form:"category"`
	Type     string `form:"type"`
	Scope    string `form:"scope"`
	Status   string `form:"status"`
	Source   string `form:"source"`
	Brand    string `form:"brand"`
	Tag      string `form:"tag"`

	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`

	MinViews    *int64   `form:"min_views"`
	MaxViews    *int64   `form:"max_views"`
	MinPrice    *float64 `form:"min_price"`
	MaxPrice    *float64 `form:"max_price"`
	MinSpeed    *float64 `form:"min_speed"`
	MaxSpeed    *float64 `form:"max_speed"`
	MinDuration *int     `form:"min_duration"`
	MaxDuration *int     `form:"max_duration"`
}

// Pagination returns the requested page. Providers clamp it.
func (r ListRequest) Pagination() domain.Pagination {
	return domain.Pagination{Page: r.Page, Limit: r.Limit}
}

// Filters converts the query into search filters. q becomes the free-text filter.
func (r ListRequest) Filters() (domain.SearchFilters, error) {
	from, err := parseDate("date_from", r.DateFrom, false)
	if err != nil {
		return domain.SearchFilters{}, err
	}
	to, err := parseDate("date_to", r.DateTo, true)
	if err != nil {
		return domain.SearchFilters{}, err
	}

	return domain.SearchFilters{
		Category:    r.Category,
		Type:        r.Type,
		Scope:       r.Scope,
		Status:      r.Status,
		Source:      r.Source,
		Brand:       r.Brand,
		Tag:         r.Tag,
		DateFrom:    from,
		DateTo:      to,
		MinViews:    r.MinViews,
		MaxViews:    r.MaxViews,
		MinPrice:    r.MinPrice,
		MaxPrice:    r.MaxPrice,
		MinSpeed:    r.MinSpeed,
		MaxSpeed:    r.MaxSpeed,
		MinDuration: r.MinDuration,
		MaxDuration: r.MaxDuration,
		Query:       strings.TrimSpace(r.Query),
	}, nil
}

// SearchRequest is the query string of the unified search route.
type SearchRequest struct {
	ListRequest
	Types       string `form:"types"`
	Suggestions bool   `form:"suggestions"`
}

// Options converts the query into unified search options.
// q is the search term here, so it is not repeated as a filter.
func (r SearchRequest) Options() (domain.UnifiedSearchOptions, error) {
	filters, err := r.Filters()
	if err != nil {
		return domain.UnifiedSearchOptions{}, err
	}
	filters.Query = ""

	var names []string
	for _, part := range strings.Split(r.Types, ",") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	types, err := domain.ParseContentTypes(names)
	if err != nil {
		return domain.UnifiedSearchOptions{}, err
	}

	return domain.UnifiedSearchOptions{
		Types:              types,
		Filters:            filters,
		Pagination:         r.Pagination(),
		IncludeSuggestions: r.Suggestions,
	}, nil
}

func parseDate(field, raw string, upper bool) (*time.Time, error) {
	t, err := domain.ParseDateBound(raw, upper)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return t, nil
}
