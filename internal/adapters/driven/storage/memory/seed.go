package memory

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/autopropelidos/portal/internal/core/domain"
)

//go:embed seed/*.json
var seedFS embed.FS

// Dataset holds one collection per content domain.
type Dataset struct {
	News        []domain.NewsItem
	Videos      []domain.VideoItem
	Vehicles    []domain.VehicleItem
	Regulations []domain.RegulationItem
}

// Seed decodes the embedded portal datasets.
func Seed() (*Dataset, error) {
	var ds Dataset
	if err := decodeSeed(domain.ContentTypeNews, &ds.News); err != nil {
		return nil, err
	}
	if err := decodeSeed(domain.ContentTypeVideos, &ds.Videos); err != nil {
		return nil, err
	}
	if err := decodeSeed(domain.ContentTypeVehicles, &ds.Vehicles); err != nil {
		return nil, err
	}
	if err := decodeSeed(domain.ContentTypeRegulations, &ds.Regulations); err != nil {
		return nil, err
	}
	return &ds, nil
}

// MustSeed is like Seed but panics if the embedded data is malformed.
func MustSeed() *Dataset {
	ds, err := Seed()
	if err != nil {
		panic(err)
	}
	return ds
}

// SeedJSON returns the raw embedded dataset for t.
func SeedJSON(t domain.ContentType) ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedType, t)
	}
	return seedFS.ReadFile("seed/" + t.String() + ".json")
}

// Count returns the size of the collection for t.
func (d *Dataset) Count(t domain.ContentType) int {
	switch t {
	case domain.ContentTypeNews:
		return len(d.News)
	case domain.ContentTypeVideos:
		return len(d.Videos)
	case domain.ContentTypeVehicles:
		return len(d.Vehicles)
	case domain.ContentTypeRegulations:
		return len(d.Regulations)
	default:
		return 0
	}
}

// Sources wraps every collection in an in-memory record source.
func (d *Dataset) Sources() Sources {
	return Sources{
		News:        NewRecordSource(d.News),
		Videos:      NewRecordSource(d.Videos),
		Vehicles:    NewRecordSource(d.Vehicles),
		Regulations: NewRecordSource(d.Regulations),
	}
}

// Sources groups the in-memory source of each domain.
type Sources struct {
	News        *RecordSource[domain.NewsItem]
	Videos      *RecordSource[domain.VideoItem]
	Vehicles    *RecordSource[domain.VehicleItem]
	Regulations *RecordSource[domain.RegulationItem]
}

func decodeSeed[T any](t domain.ContentType, dst *[]T) error {
	data, err := SeedJSON(t)
	if err != nil {
		return fmt.Errorf("read %s seed: %w", t, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode %s seed: %w", t, err)
	}
	return nil
}
