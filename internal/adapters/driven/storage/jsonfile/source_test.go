package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autopropelidos/portal/internal/core/domain"
)

func TestPath(t *testing.T) {
	assert.Equal(t, filepath.Join("data", "videos.json"), Path("data", domain.ContentTypeVideos))
}

func TestWriteAndListAll(t *testing.T) {
	dir := t.TempDir()
	vehicles := []domain.VehicleItem{
		{ID: "vehicle-2", Name: "Patinete Elétrico", Price: 5499},
		{ID: "vehicle-1", Name: "Bicicleta Elétrica", Features: []string{"pedal assistido"}},
	}
	require.NoError(t, Write(dir, domain.ContentTypeVehicles, vehicles))
	assert.NoFileExists(t, Path(dir, domain.ContentTypeVehicles)+".tmp")

	src := NewRecordSource[domain.VehicleItem](dir, domain.ContentTypeVehicles)
	got, err := src.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, vehicles, got)
}

func TestListAll_MissingFileIsEmpty(t *testing.T) {
	src := NewRecordSource[domain.NewsItem](t.TempDir(), domain.ContentTypeNews)

	got, err := src.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListAll_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(Path(dir, domain.ContentTypeNews), []byte("{not json"), 0600))

	_, err := NewRecordSource[domain.NewsItem](dir, domain.ContentTypeNews).ListAll(context.Background())
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

func TestListAll_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRecordSource[domain.NewsItem](t.TempDir(), domain.ContentTypeNews).ListAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWrite_UnknownType(t *testing.T) {
	err := Write(t.TempDir(), domain.ContentType("podcasts"), []domain.NewsItem{})
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestWrite_NilIsEmptyArray(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Write[domain.VideoItem](dir, domain.ContentTypeVideos, nil))

	data, err := os.ReadFile(Path(dir, domain.ContentTypeVideos))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}
