package domain

import "time"

// Record is implemented by every content record.
type Record interface {
	// GetID returns the record identifier.
	GetID() string
}

// NewsItem is a news article about micromobility or its regulation.
type NewsItem struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Content        string    `json:"content"`
	URL            string    `json:"url"`
	ImageURL       string    `json:"image_url,omitempty"`
	Source         string    `json:"source"`
	Author         string    `json:"author,omitempty"`
	Category       string    `json:"category"`
	Tags           []string  `json:"tags"`
	Views          int64     `json:"views"`
	RelevanceScore float64   `json:"relevance_score"`
	PublishedAt    time.Time `json:"published_at"`
}

// GetID returns the article identifier.
func (n NewsItem) GetID() string { return n.ID }

// VideoItem is a video hosted on YouTube.
type VideoItem struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	YouTubeID       string    `json:"youtube_id"`
	Channel         string    `json:"channel"`
	ThumbnailURL    string    `json:"thumbnail_url,omitempty"`
	DurationSeconds int       `json:"duration_seconds"`
	Views           int64     `json:"views"`
	Likes           int64     `json:"likes"`
	Category        string    `json:"category"`
	Tags            []string  `json:"tags"`
	PublishedAt     time.Time `json:"published_at"`
}

// GetID returns the video identifier.
func (v VideoItem) GetID() string { return v.ID }

// WatchURL returns the public YouTube URL for the video.
func (v VideoItem) WatchURL() string {
	if v.YouTubeID == "" {
		return ""
	}
	return "https://www.youtube.com/watch?v=" + v.YouTubeID
}

// VehicleItem is a piece of self-propelled equipment in the catalogue.
type VehicleItem struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	Brand                string   `json:"brand"`
	Model                string   `json:"model"`
	Type                 string   `json:"type"`
	Classification       string   `json:"classification"`
	Description          string   `json:"description"`
	Features             []string `json:"features"`
	Price                float64  `json:"price"`
	MaxSpeedKmh          float64  `json:"max_speed_kmh"`
	RangeKm              float64  `json:"range_km"`
	WeightKg             float64  `json:"weight_kg"`
	RequiresLicense      bool     `json:"requires_license"`
	RequiresRegistration bool     `json:"requires_registration"`
	Rating               float64  `json:"rating"`
	ImageURL             string   `json:"image_url,omitempty"`
}

// GetID returns the vehicle identifier.
func (v VehicleItem) GetID() string { return v.ID }

// RegulationItem is a law, resolution, decree or ordinance.
type RegulationItem struct {
	ID            string    `json:"id"`
	Number        string    `json:"number"`
	Title         string    `json:"title"`
	Summary       string    `json:"summary"`
	Content       string    `json:"content"`
	Type          string    `json:"type"`
	Scope         string    `json:"scope"`
	Authority     string    `json:"authority"`
	Location      string    `json:"location,omitempty"`
	Status        string    `json:"status"`
	Tags          []string  `json:"tags"`
	URL           string    `json:"url,omitempty"`
	EffectiveDate time.Time `json:"effective_date"`
	PublishedAt   time.Time `json:"published_at"`
}

// GetID returns the regulation identifier.
func (r RegulationItem) GetID() string { return r.ID }

// IsInForce returns true if the regulation is currently binding.
func (r RegulationItem) IsInForce() bool {
	return r.Status == RegulationStatusInForce
}

// Regulation scopes.
const (
	RegulationScopeFederal   = "federal"
	RegulationScopeState     = "estadual"
	RegulationScopeMunicipal = "municipal"
)

// Regulation statuses.
const (
	RegulationStatusInForce      = "vigente"
	RegulationStatusRevoked      = "revogada"
	RegulationStatusConsultation = "em_consulta"
)
