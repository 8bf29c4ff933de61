package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
	assert.Empty(t, store.Keys())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".autopropelidos", "config.toml"), store.Path())
}

func TestNewConfigStore_NestedDirectory(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "etc", "portal")

	_, err := NewConfigStore(nested)
	require.NoError(t, err)

	info, err := os.Stat(nested)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_CorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("not toml {{[["), 0600))

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("cache.ttl.search", "30m"))
	require.NoError(t, store.Set("search.max_limit", int64(50)))
	require.NoError(t, store.Set("server.rate_limit", 12.5))
	require.NoError(t, store.Set("log.pretty", true))
	require.NoError(t, store.Set("search.providers", []string{"news", "videos"}))

	assert.Equal(t, "30m", store.GetString("cache.ttl.search"))
	assert.Equal(t, 50, store.GetInt("search.max_limit"))
	assert.InDelta(t, 12.5, store.GetFloat("server.rate_limit"), 1e-9)
	assert.InDelta(t, 50.0, store.GetFloat("search.max_limit"), 1e-9)
	assert.True(t, store.GetBool("log.pretty"))
	assert.Equal(t, []string{"news", "videos"}, store.GetStringSlice("search.providers"))
}

func TestConfigStore_GettersWrongTypeOrMissing(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("cache.backend", "memory"))

	assert.Equal(t, "", store.GetString("missing"))
	assert.Equal(t, 0, store.GetInt("cache.backend"))
	assert.Equal(t, 0.0, store.GetFloat("cache.backend"))
	assert.False(t, store.GetBool("cache.backend"))
	assert.Nil(t, store.GetStringSlice("missing"))

	val, ok := store.Get("missing")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_GetStringSlice_CommaSeparated(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("search.providers", "news, vehicles ,,regulations"))

	assert.Equal(t, []string{"news", "vehicles", "regulations"}, store.GetStringSlice("search.providers"))
}

func TestConfigStore_WritesNestedTables(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("cache.ttl.search", "30m"))
	require.NoError(t, store.Set("cache.backend", "redis"))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "[cache]")
	assert.Contains(t, content, "[cache.ttl]")
	assert.NotContains(t, content, "'cache.ttl.search'")
}

func TestConfigStore_ReadsHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[cache]
backend = "redis"

[cache.redis]
address = "localhost:6379"
db = 2

[search]
providers = ["news", "regulations"]
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "redis", store.GetString("cache.backend"))
	assert.Equal(t, "localhost:6379", store.GetString("cache.redis.address"))
	assert.Equal(t, 2, store.GetInt("cache.redis.db"))
	assert.Equal(t, []string{"news", "regulations"}, store.GetStringSlice("search.providers"))
	assert.Equal(t, []string{"cache.backend", "cache.redis.address", "cache.redis.db", "search.providers"}, store.Keys())
}

func TestConfigStore_SaveReload_PreservesData(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	values := map[string]any{
		"cache.ttl.all":             "5m0s",
		"search.suggestion_cap":     int64(8),
		"server.rate_limit":         3.5,
		"log.pretty":                false,
		"storage.data_dir":          "/var/lib/portal",
		"search.default_limit.news": int64(15),
	}
	for k, v := range values {
		require.NoError(t, store.Set(k, v))
	}

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "5m0s", reloaded.GetString("cache.ttl.all"))
	assert.Equal(t, 8, reloaded.GetInt("search.suggestion_cap"))
	assert.InDelta(t, 3.5, reloaded.GetFloat("server.rate_limit"), 1e-9)
	assert.False(t, reloaded.GetBool("log.pretty"))
	assert.Equal(t, "/var/lib/portal", reloaded.GetString("storage.data_dir"))
	assert.Equal(t, 15, reloaded.GetInt("search.default_limit.news"))
	assert.Len(t, reloaded.Keys(), len(values))
}

func TestConfigStore_Delete(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("cache.backend", "redis"))

	require.NoError(t, store.Delete("cache.backend"))
	require.NoError(t, store.Delete("never.set"))

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	_, ok := reloaded.Get("cache.backend")
	assert.False(t, ok)
}

func TestConfigStore_Set_WriteErrorRollsBack(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("cache.backend", "memory"))

	// Replace the file with a directory so the write fails.
	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	assert.Error(t, store.Set("cache.backend", "redis"))
	assert.Error(t, store.Set("log.level", "debug"))

	assert.Equal(t, "memory", store.GetString("cache.backend"))
	_, ok := store.Get("log.level")
	assert.False(t, ok)
}

func TestConfigStore_SetUnmarshallableValue(t *testing.T) {
	store := newTestStore(t)

	assert.Error(t, store.Set("channel", make(chan int)))
}

func TestConfigStore_Load_CommentOnlyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("# nothing yet\n"), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Empty(t, store.Keys())
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("cache.redis.password", "secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Set("cache.backend", "memory")
		}()
		go func() {
			defer wg.Done()
			_ = store.GetString("cache.backend")
			_ = store.Keys()
		}()
	}
	wg.Wait()

	assert.Equal(t, "memory", store.GetString("cache.backend"))
}

func TestNestMap(t *testing.T) {
	nested := nestMap(map[string]any{
		"a":     1,
		"a.b":   2,
		"c.d.e": 3,
		"c.f":   4,
	})

	assert.Equal(t, 1, nested["a"])
	assert.Equal(t, 2, nested["a.b"])
	c, ok := nested["c"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 4, c["f"])
	d, ok := c["d"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 3, d["e"])

	assert.Equal(t, map[string]any{"a": 1, "a.b": 2, "c.d.e": 3, "c.f": 4}, flattenMap(nested, ""))
}
