package services

import (
	"cmp"
	"time"

	"github.com/autopropelidos/portal/internal/core/domain"
	"github.com/autopropelidos/portal/internal/core/ports/driven"
	"github.com/autopropelidos/portal/internal/core/ports/driving"
)

// VideoProvider serves videos.
type VideoProvider = Provider[domain.VideoItem, domain.VideoStats]

var _ driving.VideoService = (*VideoProvider)(nil)

var videoIndex = Index[domain.VideoItem]{
	Fields: []Field[domain.VideoItem]{
		{Name: "title", Values: func(v domain.VideoItem) []string { return []string{v.Title} }},
		{Name: "description", Values: func(v domain.VideoItem) []string { return []string{v.Description} }},
		{Name: "channel", Values: func(v domain.VideoItem) []string { return []string{v.Channel} }, Phrase: true},
		{Name: "tags", Values: func(v domain.VideoItem) []string { return v.Tags }, Phrase: true},
	},
	Compare: func(a, b domain.VideoItem) int {
		if c := newestFirst(a.PublishedAt, b.PublishedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.Views, a.Views)
	},
}

func videoPredicates(f domain.SearchFilters) []Predicate[domain.VideoItem] {
	return []Predicate[domain.VideoItem]{
		Equals(func(v domain.VideoItem) string { return v.Category }, f.Category),
		Equals(func(v domain.VideoItem) string { return v.Channel }, f.Source),
		Contains(func(v domain.VideoItem) []string { return v.Tags }, f.Tag),
		Between(func(v domain.VideoItem) time.Time { return v.PublishedAt }, f.DateFrom, f.DateTo),
		InRange(func(v domain.VideoItem) int64 { return v.Views }, f.MinViews, f.MaxViews),
		InRange(func(v domain.VideoItem) int { return v.DurationSeconds }, f.MinDuration, f.MaxDuration),
	}
}

func videoStats(records []domain.VideoItem, now time.Time) domain.VideoStats {
	stats := domain.VideoStats{
		Total:      len(records),
		ByCategory: countBy(records, func(v domain.VideoItem) string { return v.Category }),
		ByChannel:  countBy(records, func(v domain.VideoItem) string { return v.Channel }),
		TopTags:    topTerms(records, func(v domain.VideoItem) []string { return v.Tags }, topTermsLimit),
	}
	var duration int
	for _, v := range records {
		stats.TotalViews += v.Views
		stats.TotalLikes += v.Likes
		duration += v.DurationSeconds
		if within(v.PublishedAt, now, recentNewsWindow) {
			stats.Recent++
		}
	}
	if len(records) > 0 {
		stats.AverageDurationSeconds = float64(duration) / float64(len(records))
	}
	return stats
}

// NewVideoProvider creates the video provider over source.
func NewVideoProvider(source driven.RecordSource[domain.VideoItem], deps ProviderDeps) *VideoProvider {
	return NewProvider(ProviderConfig[domain.VideoItem, domain.VideoStats]{
		Type:       domain.ContentTypeVideos,
		Namespace:  NamespaceVideos,
		Index:      videoIndex,
		Predicates: videoPredicates,
		Stats:      videoStats,
	}, source, deps)
}
