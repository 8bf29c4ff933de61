package services

import (
	"cmp"
	"time"

	"github.com/autopropelidos/portal/internal/core/domain"
	"github.com/autopropelidos/portal/internal/core/ports/driven"
	"github.com/autopropelidos/portal/internal/core/ports/driving"
)

// VehicleProvider serves the vehicle catalogue.
type VehicleProvider = Provider[domain.VehicleItem, domain.VehicleStats]

var _ driving.VehicleService = (*VehicleProvider)(nil)

var vehicleIndex = Index[domain.VehicleItem]{
	Fields: []Field[domain.VehicleItem]{
		{Name: "name", Values: func(v domain.VehicleItem) []string { return []string{v.Name} }},
		{Name: "brand", Values: func(v domain.VehicleItem) []string { return []string{v.Brand} }, Phrase: true},
		{Name: "model", Values: func(v domain.VehicleItem) []string { return []string{v.Model} }},
		{Name: "description", Values: func(v domain.VehicleItem) []string { return []string{v.Description} }},
		{Name: "features", Values: func(v domain.VehicleItem) []string { return v.Features }, Phrase: true},
	},
	Compare: func(a, b domain.VehicleItem) int {
		return cmp.Compare(b.Rating, a.Rating)
	},
}

// vehiclePredicates maps Category onto the CONTRAN classification.
func vehiclePredicates(f domain.SearchFilters) []Predicate[domain.VehicleItem] {
	return []Predicate[domain.VehicleItem]{
		Equals(func(v domain.VehicleItem) string { return v.Type }, f.Type),
		Equals(func(v domain.VehicleItem) string { return v.Classification }, f.Category),
		Equals(func(v domain.VehicleItem) string { return v.Brand }, f.Brand),
		Contains(func(v domain.VehicleItem) []string { return v.Features }, f.Tag),
		InRange(func(v domain.VehicleItem) float64 { return v.Price }, f.MinPrice, f.MaxPrice),
		InRange(func(v domain.VehicleItem) float64 { return v.MaxSpeedKmh }, f.MinSpeed, f.MaxSpeed),
	}
}

func vehicleStats(records []domain.VehicleItem, _ time.Time) domain.VehicleStats {
	stats := domain.VehicleStats{
		Total:            len(records),
		ByType:           countBy(records, func(v domain.VehicleItem) string { return v.Type }),
		ByBrand:          countBy(records, func(v domain.VehicleItem) string { return v.Brand }),
		ByClassification: countBy(records, func(v domain.VehicleItem) string { return v.Classification }),
		TopFeatures:      topTerms(records, func(v domain.VehicleItem) []string { return v.Features }, topTermsLimit),
	}
	var sum float64
	for i, v := range records {
		sum += v.Price
		if i == 0 || v.Price < stats.MinPrice {
			stats.MinPrice = v.Price
		}
		if v.Price > stats.MaxPrice {
			stats.MaxPrice = v.Price
		}
		if v.RequiresLicense {
			stats.RequiresLicense++
		}
	}
	if len(records) > 0 {
		stats.AveragePrice = sum / float64(len(records))
	}
	return stats
}

// NewVehicleProvider creates the vehicle provider over source.
func NewVehicleProvider(source driven.RecordSource[domain.VehicleItem], deps ProviderDeps) *VehicleProvider {
	return NewProvider(ProviderConfig[domain.VehicleItem, domain.VehicleStats]{
		Type:       domain.ContentTypeVehicles,
		Namespace:  NamespaceVehicles,
		Index:      vehicleIndex,
		Predicates: vehiclePredicates,
		Stats:      vehicleStats,
	}, source, deps)
}
