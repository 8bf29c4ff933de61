package domain

// UnifiedSearchOptions configures a cross-domain search.
type UnifiedSearchOptions struct {
	// Types lists the domains to query. Empty means the configured default set.
	Types []ContentType

	// Filters are passed unchanged to every requested provider.
	Filters SearchFilters

	// Pagination is applied independently inside each domain.
	Pagination Pagination

	// IncludeSuggestions enables term suggestions in the response.
	IncludeSuggestions bool
}

// ResultsByType holds one page per domain. All four fields are always present;
// domains that were not requested carry an empty result.
type ResultsByType struct {
	News        SearchResult[NewsItem]       `json:"news"`
	Videos      SearchResult[VideoItem]      `json:"videos"`
	Vehicles    SearchResult[VehicleItem]    `json:"vehicles"`
	Regulations SearchResult[RegulationItem] `json:"regulations"`
}

// Total returns the sum of totals across all four domains.
func (r ResultsByType) Total() int {
	return r.News.Total + r.Videos.Total + r.Vehicles.Total + r.Regulations.Total
}

// TotalFor returns the total for a single domain.
func (r ResultsByType) TotalFor(t ContentType) int {
	switch t {
	case ContentTypeNews:
		return r.News.Total
	case ContentTypeVideos:
		return r.Videos.Total
	case ContentTypeVehicles:
		return r.Vehicles.Total
	case ContentTypeRegulations:
		return r.Regulations.Total
	default:
		return 0
	}
}

// UnifiedSearchResult is the envelope returned by unified search.
type UnifiedSearchResult struct {
	Query         string        `json:"query"`
	TotalResults  int           `json:"total_results"`
	ResultsByType ResultsByType `json:"results_by_type"`
	Suggestions   []string      `json:"suggestions"`
	SearchTimeMs  int64         `json:"search_time_ms"`
	Cached        bool          `json:"cached"`

	// Errors maps a domain to the failure that emptied its result.
	Errors map[ContentType]string `json:"errors,omitempty"`
}

// EmptyResultsByType returns four empty pages for p.
func EmptyResultsByType(p Pagination) ResultsByType {
	return ResultsByType{
		News:        EmptySearchResult[NewsItem](p),
		Videos:      EmptySearchResult[VideoItem](p),
		Vehicles:    EmptySearchResult[VehicleItem](p),
		Regulations: EmptySearchResult[RegulationItem](p),
	}
}
