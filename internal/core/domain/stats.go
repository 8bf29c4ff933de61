package domain

// TermCount is a term with its number of occurrences.
type TermCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// NewsStats aggregates the news collection.
type NewsStats struct {
	Total      int            `json:"total"`
	ByCategory map[string]int `json:"by_category"`
	BySource   map[string]int `json:"by_source"`
	Recent     int            `json:"recent"`
	TotalViews int64          `json:"total_views"`
	TopTags    []TermCount    `json:"top_tags"`
}

// VideoStats aggregates the video collection.
type VideoStats struct {
	Total                  int            `json:"total"`
	ByCategory             map[string]int `json:"by_category"`
	ByChannel              map[string]int `json:"by_channel"`
	TotalViews             int64          `json:"total_views"`
	TotalLikes             int64          `json:"total_likes"`
	AverageDurationSeconds float64        `json:"average_duration_seconds"`
	Recent                 int            `json:"recent"`
	TopTags                []TermCount    `json:"top_tags"`
}

// VehicleStats aggregates the vehicle catalogue.
type VehicleStats struct {
	Total            int            `json:"total"`
	ByType           map[string]int `json:"by_type"`
	ByBrand          map[string]int `json:"by_brand"`
	ByClassification map[string]int `json:"by_classification"`
	AveragePrice     float64        `json:"average_price"`
	MinPrice         float64        `json:"min_price"`
	MaxPrice         float64        `json:"max_price"`
	RequiresLicense  int            `json:"requires_license"`
	TopFeatures      []TermCount    `json:"top_features"`
}

// RegulationStats aggregates the regulation collection.
type RegulationStats struct {
	Total    int            `json:"total"`
	ByScope  map[string]int `json:"by_scope"`
	ByType   map[string]int `json:"by_type"`
	ByStatus map[string]int `json:"by_status"`
	Recent   int            `json:"recent"`
	TopTags  []TermCount    `json:"top_tags"`
}
