package services

import (
	"time"

	"github.com/autopropelidos/portal/internal/core/domain"
	"github.com/autopropelidos/portal/internal/core/ports/driven"
	"github.com/autopropelidos/portal/internal/core/ports/driving"
)

// RegulationProvider serves regulations.
type RegulationProvider = Provider[domain.RegulationItem, domain.RegulationStats]

var _ driving.RegulationService = (*RegulationProvider)(nil)

// recentRegulationWindow bounds the "recent" count of regulation statistics.
const recentRegulationWindow = 365 * 24 * time.Hour

var regulationIndex = Index[domain.RegulationItem]{
	Fields: []Field[domain.RegulationItem]{
		{Name: "number", Values: func(r domain.RegulationItem) []string { return []string{r.Number} }},
		{Name: "title", Values: func(r domain.RegulationItem) []string { return []string{r.Title} }},
		{Name: "summary", Values: func(r domain.RegulationItem) []string { return []string{r.Summary} }},
		{Name: "content", Values: func(r domain.RegulationItem) []string { return []string{r.Content} }},
		{Name: "authority", Values: func(r domain.RegulationItem) []string { return []string{r.Authority} }},
		{Name: "location", Values: func(r domain.RegulationItem) []string { return []string{r.Location} }},
		{Name: "tags", Values: func(r domain.RegulationItem) []string { return r.Tags }, Phrase: true},
	},
	Compare: func(a, b domain.RegulationItem) int {
		return newestFirst(a.EffectiveDate, b.EffectiveDate)
	},
}

func regulationPredicates(f domain.SearchFilters) []Predicate[domain.RegulationItem] {
	return []Predicate[domain.RegulationItem]{
		Equals(func(r domain.RegulationItem) string { return r.Type }, f.Type),
		Equals(func(r domain.RegulationItem) string { return r.Scope }, f.Scope),
		Equals(func(r domain.RegulationItem) string { return r.Status }, f.Status),
		Equals(func(r domain.RegulationItem) string { return r.Authority }, f.Source),
		Contains(func(r domain.RegulationItem) []string { return r.Tags }, f.Tag),
		Between(func(r domain.RegulationItem) time.Time { return r.EffectiveDate }, f.DateFrom, f.DateTo),
	}
}

func regulationStats(records []domain.RegulationItem, now time.Time) domain.RegulationStats {
	stats := domain.RegulationStats{
		Total:    len(records),
		ByScope:  countBy(records, func(r domain.RegulationItem) string { return r.Scope }),
		ByType:   countBy(records, func(r domain.RegulationItem) string { return r.Type }),
		ByStatus: countBy(records, func(r domain.RegulationItem) string { return r.Status }),
		TopTags:  topTerms(records, func(r domain.RegulationItem) []string { return r.Tags }, topTermsLimit),
	}
	for _, r := range records {
		if within(r.EffectiveDate, now, recentRegulationWindow) {
			stats.Recent++
		}
	}
	return stats
}

// NewRegulationProvider creates the regulation provider over source.
func NewRegulationProvider(source driven.RecordSource[domain.RegulationItem], deps ProviderDeps) *RegulationProvider {
	return NewProvider(ProviderConfig[domain.RegulationItem, domain.RegulationStats]{
		Type:       domain.ContentTypeRegulations,
		Namespace:  NamespaceRegulations,
		Index:      regulationIndex,
		Predicates: regulationPredicates,
		Stats:      regulationStats,
	}, source, deps)
}
