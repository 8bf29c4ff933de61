package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autopropelidos/portal/internal/core/domain"
)

func newTestCatalog(t *testing.T) (*Catalog, *mapCache) {
	t.Helper()
	clock := newFakeClock()
	cache := newMapCache(clock)
	deps := testDeps(clock, cache, &spyLogger{})
	return NewCatalog(Domains{
		News:        NewNewsProvider(&sliceSource[domain.NewsItem]{records: newsFixture()}, deps),
		Videos:      NewVideoProvider(&sliceSource[domain.VideoItem]{records: videoFixture()}, deps),
		Vehicles:    NewVehicleProvider(&sliceSource[domain.VehicleItem]{records: vehicleFixture()}, deps),
		Regulations: NewRegulationProvider(&sliceSource[domain.RegulationItem]{records: regulationFixture()}, deps),
	}), cache
}

func TestCatalog_ListDispatchesByType(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()
	page := domain.Pagination{Page: 1, Limit: 10}

	news, err := c.List(ctx, domain.ContentTypeNews, domain.SearchFilters{}, page)
	require.NoError(t, err)
	require.IsType(t, domain.SearchResult[domain.NewsItem]{}, news)
	assert.Equal(t, 4, news.(domain.SearchResult[domain.NewsItem]).Total)

	videos, err := c.List(ctx, domain.ContentTypeVideos, domain.SearchFilters{}, page)
	require.NoError(t, err)
	assert.Equal(t, 3, videos.(domain.SearchResult[domain.VideoItem]).Total)

	vehicles, err := c.List(ctx, domain.ContentTypeVehicles, domain.SearchFilters{Type: "patinete"}, page)
	require.NoError(t, err)
	assert.Equal(t, 2, vehicles.(domain.SearchResult[domain.VehicleItem]).Total)

	regs, err := c.List(ctx, domain.ContentTypeRegulations, domain.SearchFilters{}, page)
	require.NoError(t, err)
	assert.Equal(t, 4, regs.(domain.SearchResult[domain.RegulationItem]).Total)
}

func TestCatalog_Search(t *testing.T) {
	c, _ := newTestCatalog(t)

	res, err := c.Search(context.Background(), domain.ContentTypeVideos, "bicicleta", domain.SearchFilters{}, domain.Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)

	videos := res.(domain.SearchResult[domain.VideoItem])
	require.Equal(t, 1, videos.Total)
	assert.Equal(t, "v3", videos.Items[0].ID)
}

func TestCatalog_Get(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()

	rec, found, err := c.Get(ctx, domain.ContentTypeRegulations, "r1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "r1", rec.(*domain.RegulationItem).ID)

	rec, found, err = c.Get(ctx, domain.ContentTypeVehicles, "missing")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, rec)
}

func TestCatalog_Stats(t *testing.T) {
	c, _ := newTestCatalog(t)

	stats, err := c.Stats(context.Background(), domain.ContentTypeVehicles)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.(domain.VehicleStats).Total)
}

func TestCatalog_Latest(t *testing.T) {
	c, _ := newTestCatalog(t)

	items, err := c.Latest(context.Background(), "regulamentacao", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"n1", "n4"}, newsIDs(items))
}

func TestCatalog_Invalidate(t *testing.T) {
	c, cache := newTestCatalog(t)
	ctx := context.Background()

	_, err := c.Stats(ctx, domain.ContentTypeNews)
	require.NoError(t, err)
	require.NotEmpty(t, cache.keys(NamespaceNews))

	n, err := c.Invalidate(ctx, domain.ContentTypeNews, "")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Empty(t, cache.keys(NamespaceNews))
}

func TestCatalog_UnsupportedType(t *testing.T) {
	c := NewCatalog(Domains{})
	ctx := context.Background()
	page := domain.Pagination{Page: 1, Limit: 10}

	_, err := c.List(ctx, domain.ContentTypeNews, domain.SearchFilters{}, page)
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)

	_, err = c.Search(ctx, domain.ContentType("podcasts"), "x", domain.SearchFilters{}, page)
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)

	_, _, err = c.Get(ctx, domain.ContentTypeVideos, "v1")
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)

	_, err = c.Stats(ctx, domain.ContentTypeVehicles)
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)

	_, err = c.Latest(ctx, "", 5)
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)

	_, err = c.Invalidate(ctx, domain.ContentTypeRegulations, "")
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}
