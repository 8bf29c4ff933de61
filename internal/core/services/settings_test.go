package services

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autopropelidos/portal/internal/core/domain"
	"github.com/autopropelidos/portal/internal/core/ports/driven"
)

// mapConfig implements driven.ConfigStore over a map.
type mapConfig struct {
	values  map[string]any
	failSet bool
}

var _ driven.ConfigStore = (*mapConfig)(nil)

func newMapConfig() *mapConfig { return &mapConfig{values: make(map[string]any)} }

func (c *mapConfig) Get(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}
func (c *mapConfig) GetString(key string) string {
	s, _ := c.values[key].(string)
	return s
}
func (c *mapConfig) GetInt(key string) int {
	n, _ := c.values[key].(int64)
	return int(n)
}
func (c *mapConfig) GetFloat(key string) float64 {
	f, _ := c.values[key].(float64)
	return f
}
func (c *mapConfig) GetBool(key string) bool {
	b, _ := c.values[key].(bool)
	return b
}
func (c *mapConfig) GetStringSlice(key string) []string {
	s, _ := c.values[key].([]string)
	return s
}
func (c *mapConfig) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
func (c *mapConfig) Set(key string, value any) error {
	if c.failSet {
		return errors.New("read-only")
	}
	c.values[key] = value
	return nil
}
func (c *mapConfig) Save() error  { return nil }
func (c *mapConfig) Load() error  { return nil }
func (c *mapConfig) Path() string { return ":memory:" }

func noEnv(string) (string, bool) { return "", false }

func envOf(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(newMapConfig()).WithEnv(noEnv)

	settings, err := service.Get()
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultAppSettings(), *settings)
}

func TestSettingsService_Get_FileOverridesDefaults(t *testing.T) {
	store := newMapConfig()
	store.values["cache.ttl.search"] = "10m"
	store.values["cache.backend"] = "redis"
	store.values["search.max_limit"] = int64(50)
	store.values["search.providers"] = []any{"news", "regulations"}
	store.values["server.rate_limit"] = 2.5
	store.values["log.pretty"] = true
	store.values["search.default_limit.videos"] = int64(24)

	settings, err := NewSettingsService(store).WithEnv(noEnv).Get()
	require.NoError(t, err)

	assert.Equal(t, 10*time.Minute, settings.Cache.TTL.Search)
	assert.Equal(t, domain.CacheBackendRedis, settings.Cache.Backend)
	assert.Equal(t, 50, settings.Search.MaxLimit)
	assert.Equal(t, []domain.ContentType{domain.ContentTypeNews, domain.ContentTypeRegulations}, settings.Search.Providers)
	assert.InDelta(t, 2.5, settings.Server.RateLimit, 0.0001)
	assert.True(t, settings.Log.Pretty)
	assert.Equal(t, 24, settings.Search.DefaultLimit(domain.ContentTypeVideos))
	assert.Equal(t, 10, settings.Search.DefaultLimit(domain.ContentTypeNews))
	assert.Equal(t, time.Hour, settings.Cache.TTL.All)
}

func TestSettingsService_Get_EnvOverridesFile(t *testing.T) {
	store := newMapConfig()
	store.values["cache.ttl.unified"] = "10m"

	service := NewSettingsService(store).WithEnv(envOf(map[string]string{
		"AUTOPROPELIDOS_CACHE_TTL_UNIFIED": "1m",
		"AUTOPROPELIDOS_STORAGE_BACKEND":   "sqlite",
		"AUTOPROPELIDOS_LOG_LEVEL":         "",
	}))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, time.Minute, settings.Cache.TTL.Unified)
	assert.Equal(t, domain.StorageBackendSQLite, settings.Storage.Backend)
	assert.Equal(t, "warn", settings.Log.Level)
}

func TestSettingsService_Get_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
	}{
		{"bad duration", "cache.ttl.search", "soon"},
		{"negative duration", "cache.ttl.item", "-1h"},
		{"bad backend", "cache.backend", "memcached"},
		{"bad provider", "search.providers", "news,podcasts"},
		{"zero limit", "search.max_limit", int64(0)},
		{"bad level", "log.level", "loud"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMapConfig()
			store.values[tt.key] = tt.val

			_, err := NewSettingsService(store).WithEnv(noEnv).Get()
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestSettingsService_Get_InvalidEnv(t *testing.T) {
	service := NewSettingsService(newMapConfig()).WithEnv(envOf(map[string]string{
		"AUTOPROPELIDOS_SERVER_BURST": "many",
	}))

	_, err := service.Get()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTOPROPELIDOS_SERVER_BURST")
}

func TestSettingsService_Set(t *testing.T) {
	store := newMapConfig()
	service := NewSettingsService(store).WithEnv(noEnv)

	require.NoError(t, service.Set("cache.ttl.search", "45m"))
	require.NoError(t, service.Set("search.max_limit", "25"))
	require.NoError(t, service.Set("search.providers", "videos, news"))
	require.NoError(t, service.Set("log.pretty", "true"))

	assert.Equal(t, "45m0s", store.values["cache.ttl.search"])
	assert.Equal(t, int64(25), store.values["search.max_limit"])
	assert.Equal(t, []string{"videos", "news"}, store.values["search.providers"])
	assert.Equal(t, true, store.values["log.pretty"])

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, 45*time.Minute, settings.Cache.TTL.Search)
	assert.Equal(t, 25, settings.Search.MaxLimit)
	assert.Equal(t, []domain.ContentType{domain.ContentTypeVideos, domain.ContentTypeNews}, settings.Search.Providers)
}

func TestSettingsService_Set_Rejects(t *testing.T) {
	store := newMapConfig()
	service := NewSettingsService(store).WithEnv(noEnv)

	err := service.Set("cache.size", "1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = service.Set("server.burst", "0")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = service.Set("storage.backend", "postgres")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Empty(t, store.values)

	store.failSet = true
	err = service.Set("storage.backend", "sqlite")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save storage.backend")
}

func TestSettingsService_Describe(t *testing.T) {
	store := newMapConfig()
	store.values["server.address"] = ":9090"
	service := NewSettingsService(store).WithEnv(envOf(map[string]string{
		"AUTOPROPELIDOS_LOG_LEVEL": "debug",
	}))

	values, err := service.Describe()
	require.NoError(t, err)
	require.Len(t, values, len(service.Keys()))

	byKey := make(map[string]domain.SettingValue)
	for _, v := range values {
		byKey[v.Key] = v
	}
	assert.Equal(t, domain.SettingValue{Key: "server.address", Value: ":9090", Source: domain.SettingSourceFile}, byKey["server.address"])
	assert.Equal(t, domain.SettingValue{Key: "log.level", Value: "debug", Source: domain.SettingSourceEnv}, byKey["log.level"])
	assert.Equal(t, domain.SettingValue{Key: "cache.ttl.all", Value: "1h0m0s", Source: domain.SettingSourceDefault}, byKey["cache.ttl.all"])
	assert.Equal(t, "news,videos,vehicles,regulations", byKey["search.providers"].Value)
	assert.Equal(t, "12", byKey["search.default_limit.videos"].Value)
}

func TestSettingsService_Keys(t *testing.T) {
	keys := NewSettingsService(newMapConfig()).Keys()

	assert.Contains(t, keys, "cache.ttl.search")
	assert.Contains(t, keys, "search.provider_timeout")
	assert.Contains(t, keys, "log.level")
	assert.Equal(t, "cache.backend", keys[0])
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := NewSettingsService(newMapConfig())
	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "AUTOPROPELIDOS_CACHE_TTL_SEARCH", EnvKey("cache.ttl.search"))
	assert.Equal(t, "AUTOPROPELIDOS_SEARCH_DEFAULT_LIMIT_NEWS", EnvKey("search.default_limit.news"))
}
