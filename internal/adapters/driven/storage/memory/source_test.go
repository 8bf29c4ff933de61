package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autopropelidos/portal/internal/core/domain"
)

func TestNewRecordSource_CopiesInput(t *testing.T) {
	input := []domain.NewsItem{{ID: "a"}, {ID: "b"}}
	src := NewRecordSource(input)

	input[0].ID = "changed"

	got, err := src.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
}

func TestRecordSource_ListAll_ReturnsCopy(t *testing.T) {
	src := NewRecordSource([]domain.VideoItem{{ID: "v1"}})

	first, err := src.ListAll(context.Background())
	require.NoError(t, err)
	first[0].ID = "mutated"

	second, err := src.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v1", second[0].ID)
}

func TestRecordSource_ListAll_CancelledContext(t *testing.T) {
	src := NewRecordSource([]domain.VideoItem{{ID: "v1"}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := src.ListAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRecordSource_Replace(t *testing.T) {
	src := NewRecordSource([]domain.VehicleItem{{ID: "a"}})
	src.Replace([]domain.VehicleItem{{ID: "b"}, {ID: "c"}})

	assert.Equal(t, 2, src.Len())
	got, err := src.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "b", got[0].ID)
}

func TestRecordSource_Empty(t *testing.T) {
	src := NewRecordSource[domain.RegulationItem](nil)

	got, err := src.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 0, src.Len())
}
