package domain

import (
	"fmt"
	"strings"
	"time"
)

// SearchFilters configures optional constraints on a listing or search.
// One filter set is shared by every content type; each provider applies
// the fields that name one of its attributes and ignores the rest.
// A zero value or nil pointer imposes no constraint.
type SearchFilters struct {
	// Category matches news and video categories.
	Category string `json:"category,omitempty"`

	// Type matches vehicle types and regulation types.
	Type string `json:"type,omitempty"`

	// Scope matches regulation scope (federal, estadual, municipal).
	Scope string `json:"scope,omitempty"`

	// Status matches regulation status.
	Status string `json:"status,omitempty"`

	// Source matches the news source, video channel or regulation authority.
	Source string `json:"source,omitempty"`

	// Brand matches vehicle brand.
	Brand string `json:"brand,omitempty"`

	// Tag requires membership in the record's tags (vehicle features for vehicles).
	Tag string `json:"tag,omitempty"`

	// DateFrom and DateTo bound the record's primary date, inclusive.
	DateFrom *time.Time `json:"date_from,omitempty"`
	DateTo   *time.Time `json:"date_to,omitempty"`

	// MinViews and MaxViews bound news and video view counts, inclusive.
	MinViews *int64 `json:"min_views,omitempty"`
	MaxViews *int64 `json:"max_views,omitempty"`

	// MinPrice and MaxPrice bound vehicle price in BRL, inclusive.
	MinPrice *float64 `json:"min_price,omitempty"`
	MaxPrice *float64 `json:"max_price,omitempty"`

	// MinSpeed and MaxSpeed bound vehicle top speed in km/h, inclusive.
	MinSpeed *float64 `json:"min_speed,omitempty"`
	MaxSpeed *float64 `json:"max_speed,omitempty"`

	// MinDuration and MaxDuration bound video length in seconds, inclusive.
	MinDuration *int `json:"min_duration,omitempty"`
	MaxDuration *int `json:"max_duration,omitempty"`

	// Query is free text that must also match, in addition to the search term.
	Query string `json:"query,omitempty"`
}

// Pagination selects one page of a result set.
type Pagination struct {
	// Page is the 1-based page number.
	Page int `json:"page"`

	// Limit is the page size.
	Limit int `json:"limit"`
}

// Offset returns the number of items before the first item of the page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Normalize clamps the pagination into its valid range.
// Page below 1 becomes 1, limit below 1 becomes defaultLimit,
// and limit above maxLimit becomes maxLimit when maxLimit is positive.
func (p Pagination) Normalize(defaultLimit, maxLimit int) Pagination {
	if defaultLimit < 1 {
		defaultLimit = 1
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if maxLimit > 0 && p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}

// SearchResult is one page of records plus the totals needed to navigate.
type SearchResult[T any] struct {
	Items       []T  `json:"items"`
	Total       int  `json:"total"`
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	TotalPages  int  `json:"total_pages"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// NewSearchResult slices the page described by p out of all.
// The pagination is expected to be normalized; a page past the end
// yields no items with correct totals.
func NewSearchResult[T any](all []T, p Pagination) SearchResult[T] {
	p = p.Normalize(1, 0)
	total := len(all)
	totalPages := (total + p.Limit - 1) / p.Limit

	items := []T{}
	if offset := p.Offset(); offset < total {
		end := offset + p.Limit
		if end > total {
			end = total
		}
		items = append(items, all[offset:end]...)
	}

	return SearchResult[T]{
		Items:       items,
		Total:       total,
		Page:        p.Page,
		Limit:       p.Limit,
		TotalPages:  totalPages,
		HasNext:     p.Page < totalPages,
		HasPrevious: p.Page > 1,
	}
}

// EmptySearchResult returns the canonical empty page.
func EmptySearchResult[T any](p Pagination) SearchResult[T] {
	return NewSearchResult[T](nil, p)
}

// dateOnly is the plain date layout accepted by ParseDateBound.
const dateOnly = "2006-01-02"

// ParseDateBound parses a filter bound given as RFC 3339 or YYYY-MM-DD.
// A plain date used as an upper bound covers the whole day.
// Empty input yields nil.
func ParseDateBound(raw string, upper bool) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(dateOnly, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be RFC 3339 or YYYY-MM-DD, got %q", ErrInvalidInput, raw)
	}
	if upper {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
