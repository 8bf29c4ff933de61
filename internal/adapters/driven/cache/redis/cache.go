// Package redis provides a shared driven.CacheStore backed by Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/autopropelidos/portal/internal/core/domain"
	"github.com/autopropelidos/portal/internal/core/ports/driven"
)

// Ensure Cache implements the interface.
var _ driven.CacheStore = (*Cache)(nil)

// scanBatch is the COUNT hint for SCAN during invalidation.
const scanBatch = 200

// Options configures the Redis connection.
type Options struct {
	Address  string
	Password string
	DB       int
	Prefix   string
}

// Cache stores entries under <prefix>:<namespace>:<key> with Redis-side TTLs.
type Cache struct {
	client *goredis.Client
	prefix string
}

// New connects to Redis and verifies the connection.
func New(ctx context.Context, opts Options) (*Cache, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     opts.Address,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: connect to redis %s: %w", domain.ErrCacheUnavailable, opts.Address, err)
	}
	return NewFromClient(client, opts.Prefix), nil
}

// NewFromClient wraps an existing client.
func NewFromClient(client *goredis.Client, prefix string) *Cache {
	return &Cache{client: client, prefix: prefix}
}

func (c *Cache) namespacePrefix(namespace string) string {
	if c.prefix == "" {
		return namespace + ":"
	}
	return c.prefix + ":" + namespace + ":"
}

func (c *Cache) key(namespace, key string) string {
	return c.namespacePrefix(namespace) + key
}

// Get returns the entry under key.
func (c *Cache) Get(ctx context.Context, namespace, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.key(namespace, key)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%w: get from redis: %w", domain.ErrCacheUnavailable, err)
	}
	return data, true, nil
}

// Set stores value under key with SET EX semantics.
func (c *Cache) Set(ctx context.Context, namespace, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("%w: ttl must be positive", domain.ErrInvalidInput)
	}
	if err := c.client.Set(ctx, c.key(namespace, key), value, ttl).Err(); err != nil {
		return fmt.Errorf("%w: set in redis: %w", domain.ErrCacheUnavailable, err)
	}
	return nil
}

// Invalidate scans the namespace and deletes keys whose namespace-relative
// part matches pattern.
func (c *Cache) Invalidate(ctx context.Context, namespace, pattern string) (int, error) {
	if pattern == "" {
		pattern = ".*"
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid pattern %q: %w", domain.ErrInvalidInput, pattern, err)
	}

	nsPrefix := c.namespacePrefix(namespace)
	var doomed []string
	iter := c.client.Scan(ctx, 0, escapeGlob(nsPrefix)+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		full := iter.Val()
		if re.MatchString(strings.TrimPrefix(full, nsPrefix)) {
			doomed = append(doomed, full)
		}
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("%w: scan redis: %w", domain.ErrCacheUnavailable, err)
	}
	if len(doomed) == 0 {
		return 0, nil
	}

	n, err := c.client.Del(ctx, doomed...).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: delete from redis: %w", domain.ErrCacheUnavailable, err)
	}
	return int(n), nil
}

// Close closes the client.
func (c *Cache) Close() error {
	return c.client.Close()
}

// escapeGlob quotes the SCAN MATCH metacharacters in s.
func escapeGlob(s string) string {
	return strings.NewReplacer(`\`, `\\`, "*", `\*`, "?", `\?`, "[", `\[`, "]", `\]`).Replace(s)
}
