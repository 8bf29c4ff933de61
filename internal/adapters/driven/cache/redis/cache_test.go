package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autopropelidos/portal/internal/core/domain"
)

// newTestCache connects to the server named by AUTOPROPELIDOS_TEST_REDIS,
// isolating the test under a random prefix.
func newTestCache(t *testing.T) *Cache {
	t.Helper()
	addr := os.Getenv("AUTOPROPELIDOS_TEST_REDIS")
	if addr == "" {
		t.Skip("AUTOPROPELIDOS_TEST_REDIS not set")
	}

	c, err := New(context.Background(), Options{Address: addr, Prefix: "test-" + uuid.NewString()})
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = c.Invalidate(context.Background(), "news", "")
		_, _ = c.Invalidate(context.Background(), "regulations", "")
		_ = c.Close()
	})
	return c
}

func TestEscapeGlob(t *testing.T) {
	assert.Equal(t, `app:news:`, escapeGlob("app:news:"))
	assert.Equal(t, `a\*b\?c\[d\]`, escapeGlob("a*b?c[d]"))
}

func TestCache_Key(t *testing.T) {
	c := NewFromClient(goredis.NewClient(&goredis.Options{Addr: "localhost:0"}), "autopropelidos")
	defer c.Close()

	assert.Equal(t, "autopropelidos:news:item:1", c.key("news", "item:1"))

	bare := NewFromClient(goredis.NewClient(&goredis.Options{Addr: "localhost:0"}), "")
	defer bare.Close()
	assert.Equal(t, "news:stats", bare.key("news", "stats"))
}

func TestCache_SetRejectsNonPositiveTTL(t *testing.T) {
	c := NewFromClient(goredis.NewClient(&goredis.Options{Addr: "localhost:0"}), "p")
	defer c.Close()

	err := c.Set(context.Background(), "news", "k", []byte("v"), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCache_InvalidateBadPattern(t *testing.T) {
	c := NewFromClient(goredis.NewClient(&goredis.Options{Addr: "localhost:0"}), "p")
	defer c.Close()

	_, err := c.Invalidate(context.Background(), "news", "([")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNew_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := New(ctx, Options{Address: "127.0.0.1:1"})
	assert.ErrorIs(t, err, domain.ErrCacheUnavailable)
}

func TestCache_RoundTrip(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "news", "missing-key")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "news", "k", []byte(`{"a":1}`), time.Minute))
	v, ok, err := c.Get(ctx, "news", "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"a":1}`, string(v))
}

func TestCache_Invalidate(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	for _, k := range []string{"search:a", "search:b", "all:{}"} {
		require.NoError(t, c.Set(ctx, "news", k, []byte("v"), time.Minute))
	}
	require.NoError(t, c.Set(ctx, "regulations", "search:a", []byte("v"), time.Minute))

	n, err := c.Invalidate(ctx, "news", "^search:")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, ok, _ := c.Get(ctx, "news", "all:{}")
	assert.True(t, ok)
	_, ok, _ = c.Get(ctx, "regulations", "search:a")
	assert.True(t, ok)
}
