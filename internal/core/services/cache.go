package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/autopropelidos/portal/internal/core/ports/driven"
)

// Cache namespaces, one per domain plus the unified envelopes.
const (
	NamespaceNews        = "news"
	NamespaceVideos      = "videos"
	NamespaceVehicles    = "vehicles"
	NamespaceRegulations = "regulations"
	NamespaceUnified     = "unified"
)

// cacheLayer binds a CacheStore to one namespace and hides its failures.
// A read error is a miss and a write error is dropped; both are logged.
// A nil store caches nothing.
type cacheLayer struct {
	store     driven.CacheStore
	namespace string
	log       driven.EventLogger
}

func newCacheLayer(store driven.CacheStore, namespace string, log driven.EventLogger) cacheLayer {
	return cacheLayer{store: store, namespace: namespace, log: log}
}

// get decodes the entry under key into dst and reports whether it was a hit.
// Every call logs exactly one CacheHit or CacheMiss.
func (c cacheLayer) get(ctx context.Context, key string, dst any) bool {
	if c.store == nil {
		c.log.CacheMiss(key)
		return false
	}

	data, ok, err := c.store.Get(ctx, c.namespace, key)
	if err != nil {
		c.log.Error("cache_get", "cache read failed", err, map[string]any{"namespace": c.namespace, "key": key})
		c.log.CacheMiss(key)
		return false
	}
	if !ok {
		c.log.CacheMiss(key)
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		c.log.Error("cache_get", "cache entry undecodable", err, map[string]any{"namespace": c.namespace, "key": key})
		c.log.CacheMiss(key)
		return false
	}

	c.log.CacheHit(key)
	return true
}

// set stores v under key for ttl.
func (c cacheLayer) set(ctx context.Context, key string, v any, ttl time.Duration) {
	if c.store == nil || ttl <= 0 {
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		c.log.Error("cache_set", "cache value unencodable", err, map[string]any{"namespace": c.namespace, "key": key})
		return
	}
	if err := c.store.Set(ctx, c.namespace, key, data, ttl); err != nil {
		c.log.Error("cache_set", "cache write failed", err, map[string]any{"namespace": c.namespace, "key": key})
	}
}

// invalidate drops keys matching pattern. Unlike get and set it reports
// errors, since the caller asked for the deletion explicitly.
func (c cacheLayer) invalidate(ctx context.Context, pattern string) (int, error) {
	if c.store == nil {
		return 0, nil
	}
	n, err := c.store.Invalidate(ctx, c.namespace, pattern)
	if err != nil {
		c.log.Error("cache_invalidate", "cache invalidation failed", err, map[string]any{"namespace": c.namespace, "pattern": pattern})
		return 0, err
	}
	c.log.Info("cache_invalidate", "cache invalidated", map[string]any{"namespace": c.namespace, "pattern": pattern, "deleted": n})
	return n, nil
}

// memoize returns the cached value under key, or computes, stores and returns it.
// Errors from compute are returned and nothing is cached.
func memoize[T any](ctx context.Context, c cacheLayer, key string, ttl time.Duration, compute func() (T, error)) (T, error) {
	var cached T
	if c.get(ctx, key, &cached) {
		return cached, nil
	}

	v, err := compute()
	if err != nil {
		var zero T
		return zero, err
	}
	c.set(ctx, key, v, ttl)
	return v, nil
}

// cacheKey joins a prefix with the JSON encoding of each part.
// Struct fields encode in declaration order, so equal inputs yield equal keys.
func cacheKey(prefix string, parts ...any) string {
	key := prefix
	for _, p := range parts {
		if s, ok := p.(string); ok {
			key += s
			continue
		}
		data, err := json.Marshal(p)
		if err != nil {
			continue
		}
		key += string(data)
	}
	return key
}
