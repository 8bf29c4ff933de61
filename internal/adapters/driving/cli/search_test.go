package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autopropelidos/portal/internal/core/domain"
)

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search <query>", searchCmd.Use)
}

func TestSearchCmd_RequiresQuery(t *testing.T) {
	setupTestServices(t, domain.StorageBackendMemory)
	_, err := runCommand(t, "search")
	assert.Error(t, err)
}

func TestSearchCmd_TableOutput(t *testing.T) {
	setupTestServices(t, domain.StorageBackendMemory)

	out, err := runCommand(t, "search", "patinete", "--type", "vehicles")

	require.NoError(t, err)
	assert.Contains(t, out, `Results for "patinete"`)
	assert.Contains(t, out, "Veículos (3)")
	assert.Contains(t, out, "Segway Ninebot Max G30")
	assert.Contains(t, out, "vehicle-2")
	assert.NotContains(t, out, "Notícias")
}

func TestSearchCmd_JoinsArgs(t *testing.T) {
	setupTestServices(t, domain.StorageBackendMemory)

	out, err := runCommand(t, "search", "resolução", "996", "--json")

	require.NoError(t, err)
	var result domain.UnifiedSearchResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "resolução 996", result.Query)
	assert.Positive(t, result.TotalResults)
}

func TestSearchCmd_Suggestions(t *testing.T) {
	setupTestServices(t, domain.StorageBackendMemory)

	out, err := runCommand(t, "search", "patinete", "--suggest", "--json")

	require.NoError(t, err)
	var result domain.UnifiedSearchResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.NotEmpty(t, result.Suggestions)
}

func TestSearchCmd_InvalidType(t *testing.T) {
	setupTestServices(t, domain.StorageBackendMemory)

	_, err := runCommand(t, "search", "x", "--type", "podcasts")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSearchCmd_InvalidDate(t *testing.T) {
	setupTestServices(t, domain.StorageBackendMemory)

	_, err := runCommand(t, "search", "x", "--from", "ontem")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--from")
}

func TestSearchCmd_ServiceNotConfigured(t *testing.T) {
	setupTestServices(t, domain.StorageBackendMemory)
	searchService = nil

	_, err := runCommand(t, "search", "test")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "search service not configured")
}

func TestOutputSearch_NoResults(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	outputSearch(rootCmd, &domain.UnifiedSearchResult{
		Query:         "nada",
		ResultsByType: domain.EmptyResultsByType(domain.Pagination{Page: 1, Limit: 10}),
		Errors:        map[domain.ContentType]string{domain.ContentTypeVideos: "timeout"},
	})

	assert.Contains(t, buf.String(), "No results found")
	assert.Contains(t, buf.String(), "Vídeos unavailable: timeout")
}

func TestOutputSearch_CachedTiming(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	outputSearch(rootCmd, &domain.UnifiedSearchResult{
		Query:         "x",
		ResultsByType: domain.EmptyResultsByType(domain.Pagination{Page: 1, Limit: 10}),
		Cached:        true,
		Suggestions:   []string{"patinete elétrico"},
	})

	assert.Contains(t, buf.String(), "cached")
	assert.Contains(t, buf.String(), "patinete elétrico")
}
