package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autopropelidos/portal/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "portal.db"), store.Path())
	assert.FileExists(t, store.Path())

	v, err := store.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestNewStore_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, Seed(ctx, store, domain.ContentTypeNews, []domain.NewsItem{{ID: "n1"}}))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	n, err := reopened.Count(ctx, domain.ContentTypeNews)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	v, err := reopened.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestSeed_PreservesOrderAndFields(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	published := time.Date(2025, 6, 20, 10, 0, 0, 0, time.UTC)

	news := []domain.NewsItem{
		{ID: "z", Title: "Última", Tags: []string{"CONTRAN"}, PublishedAt: published},
		{ID: "a", Title: "Primeira", Views: 42},
		{ID: "m", Title: "Meio", RelevanceScore: 0.5},
	}
	require.NoError(t, Seed(ctx, store, domain.ContentTypeNews, news))

	got, err := NewRecordSource[domain.NewsItem](store, domain.ContentTypeNews).ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "z", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
	assert.Equal(t, "m", got[2].ID)
	assert.Equal(t, "Última", got[0].Title)
	assert.Equal(t, []string{"CONTRAN"}, got[0].Tags)
	assert.True(t, published.Equal(got[0].PublishedAt))
	assert.Equal(t, int64(42), got[1].Views)
}

func TestSeed_ReplacesExistingRecords(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, Seed(ctx, store, domain.ContentTypeVehicles, []domain.VehicleItem{{ID: "a"}, {ID: "b"}}))
	require.NoError(t, Seed(ctx, store, domain.ContentTypeVehicles, []domain.VehicleItem{{ID: "c"}}))

	n, err := store.Count(ctx, domain.ContentTypeVehicles)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSeed_TypesAreIsolated(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, Seed(ctx, store, domain.ContentTypeVideos, []domain.VideoItem{{ID: "x"}}))
	require.NoError(t, Seed(ctx, store, domain.ContentTypeRegulations, []domain.RegulationItem{{ID: "x"}, {ID: "y"}}))

	videos, err := NewRecordSource[domain.VideoItem](store, domain.ContentTypeVideos).ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, videos, 1)

	regs, err := store.Count(ctx, domain.ContentTypeRegulations)
	require.NoError(t, err)
	assert.Equal(t, 2, regs)
}

func TestSeed_UnknownType(t *testing.T) {
	store := newTestStore(t)

	err := Seed(context.Background(), store, domain.ContentType("podcasts"), []domain.NewsItem{{ID: "a"}})
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestRecordSource_Empty(t *testing.T) {
	store := newTestStore(t)

	got, err := NewRecordSource[domain.VideoItem](store, domain.ContentTypeVideos).ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRecordSource_ClosedStore(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = NewRecordSource[domain.NewsItem](store, domain.ContentTypeNews).ListAll(context.Background())
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
}
