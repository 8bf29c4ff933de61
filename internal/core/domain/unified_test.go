package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultsByType_Total(t *testing.T) {
	p := Pagination{Page: 1, Limit: 10}
	r := EmptyResultsByType(p)
	r.News = NewSearchResult([]NewsItem{{ID: "1"}, {ID: "2"}}, p)
	r.Regulations = NewSearchResult([]RegulationItem{{ID: "r"}}, p)

	assert.Equal(t, 3, r.Total())
	assert.Equal(t, 2, r.TotalFor(ContentTypeNews))
	assert.Equal(t, 0, r.TotalFor(ContentTypeVideos))
	assert.Equal(t, 1, r.TotalFor(ContentTypeRegulations))
	assert.Equal(t, 0, r.TotalFor(ContentType("x")))
}

func TestUnifiedSearchResult_JSONHasAllDomains(t *testing.T) {
	res := UnifiedSearchResult{
		Query:         "contran",
		ResultsByType: EmptyResultsByType(Pagination{Page: 1, Limit: 5}),
		Suggestions:   []string{},
	}

	data, err := json.Marshal(res)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	byType, ok := decoded["results_by_type"].(map[string]any)
	require.True(t, ok)
	for _, ct := range AllContentTypes() {
		entry, ok := byType[ct.String()].(map[string]any)
		require.True(t, ok, ct)
		assert.Equal(t, float64(0), entry["total"])
		assert.Equal(t, []any{}, entry["items"])
	}
	assert.NotContains(t, decoded, "errors")
}
