package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/autopropelidos/portal/internal/core/domain"
)

// filterFlags are the record filters shared by list and search.
type filterFlags struct {
	category string
	kind     string
	scope    string
	status   string
	source   string
	brand    string
	tag      string
	from     string
	to       string
	minViews int64
	minPrice float64
	maxPrice float64
	minSpeed float64
	maxSpeed float64
}

func (f *filterFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.category, "category", "", "news or video category")
	flags.StringVar(&f.kind, "kind", "", "vehicle or regulation type")
	flags.StringVar(&f.scope, "scope", "", "regulation scope (federal, estadual, municipal)")
	flags.StringVar(&f.status, "status", "", "regulation status")
	flags.StringVar(&f.source, "source", "", "news source, video channel or regulation authority")
	flags.StringVar(&f.brand, "brand", "", "vehicle brand")
	flags.StringVar(&f.tag, "tag", "", "tag or vehicle feature")
	flags.StringVar(&f.from, "from", "", "earliest date (YYYY-MM-DD or RFC 3339)")
	flags.StringVar(&f.to, "to", "", "latest date (YYYY-MM-DD or RFC 3339)")
	flags.Int64Var(&f.minViews, "min-views", 0, "minimum news or video views")
	flags.Float64Var(&f.minPrice, "min-price", 0, "minimum vehicle price in BRL")
	flags.Float64Var(&f.maxPrice, "max-price", 0, "maximum vehicle price in BRL")
	flags.Float64Var(&f.minSpeed, "min-speed", 0, "minimum vehicle speed in km/h")
	flags.Float64Var(&f.maxSpeed, "max-speed", 0, "maximum vehicle speed in km/h")
}

// build converts the flags into search filters. Numeric bounds apply only when set.
func (f *filterFlags) build(cmd *cobra.Command) (domain.SearchFilters, error) {
	from, err := domain.ParseDateBound(f.from, false)
	if err != nil {
		return domain.SearchFilters{}, fmt.Errorf("--from: %w", err)
	}
	to, err := domain.ParseDateBound(f.to, true)
	if err != nil {
		return domain.SearchFilters{}, fmt.Errorf("--to: %w", err)
	}

	filters := domain.SearchFilters{
		Category: f.category,
		Type:     f.kind,
		Scope:    f.scope,
		Status:   f.status,
		Source:   f.source,
		Brand:    f.brand,
		Tag:      f.tag,
		DateFrom: from,
		DateTo:   to,
	}

	changed := cmd.Flags().Changed
	if changed("min-views") {
		filters.MinViews = &f.minViews
	}
	if changed("min-price") {
		filters.MinPrice = &f.minPrice
	}
	if changed("max-price") {
		filters.MaxPrice = &f.maxPrice
	}
	if changed("min-speed") {
		filters.MinSpeed = &f.minSpeed
	}
	if changed("max-speed") {
		filters.MaxSpeed = &f.maxSpeed
	}
	return filters, nil
}
