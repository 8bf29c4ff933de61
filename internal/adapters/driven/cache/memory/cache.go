// Package memory provides an in-process driven.CacheStore backed by go-cache.
package memory

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/autopropelidos/portal/internal/adapters/driven/clock"
	"github.com/autopropelidos/portal/internal/core/domain"
	"github.com/autopropelidos/portal/internal/core/ports/driven"
)

// Ensure Cache implements the interface.
var _ driven.CacheStore = (*Cache)(nil)

// entry is what each go-cache slot holds. expiresAt is checked against the
// injected clock on every read; go-cache's own expiration only drives the
// janitor sweep.
type entry struct {
	value     []byte
	expiresAt time.Time
}

// Cache keeps one go-cache instance per namespace.
type Cache struct {
	mu              sync.Mutex
	namespaces      map[string]*gocache.Cache
	clock           driven.Clock
	cleanupInterval time.Duration
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock sets the clock used for expiry checks.
func WithClock(c driven.Clock) Option {
	return func(m *Cache) { m.clock = c }
}

// New creates an empty cache. Expired entries are swept every
// cleanupInterval; zero or less disables the sweep.
func New(cleanupInterval time.Duration, opts ...Option) *Cache {
	c := &Cache{
		namespaces:      make(map[string]*gocache.Cache),
		clock:           clock.System{},
		cleanupInterval: cleanupInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) namespace(name string, create bool) *gocache.Cache {
	c.mu.Lock()
	defer c.mu.Unlock()
	ns, ok := c.namespaces[name]
	if !ok && create {
		interval := c.cleanupInterval
		if interval <= 0 {
			interval = -1
		}
		ns = gocache.New(gocache.NoExpiration, interval)
		c.namespaces[name] = ns
	}
	return ns
}

// Get returns the live entry under key. An expired entry is deleted and
// reported as absent.
func (c *Cache) Get(_ context.Context, namespace, key string) ([]byte, bool, error) {
	ns := c.namespace(namespace, false)
	if ns == nil {
		return nil, false, nil
	}
	v, ok := ns.Get(key)
	if !ok {
		return nil, false, nil
	}
	e, ok := v.(entry)
	if !ok {
		ns.Delete(key)
		return nil, false, nil
	}
	if c.clock.Now().After(e.expiresAt) {
		ns.Delete(key)
		return nil, false, nil
	}
	return e.value, true, nil
}

// Set stores a copy of value under key for ttl.
func (c *Cache) Set(_ context.Context, namespace, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("%w: ttl must be positive", domain.ErrInvalidInput)
	}
	data := make([]byte, len(value))
	copy(data, value)

	c.namespace(namespace, true).Set(key, entry{
		value:     data,
		expiresAt: c.clock.Now().Add(ttl),
	}, ttl)
	return nil
}

// Invalidate deletes every key in namespace matching pattern.
func (c *Cache) Invalidate(_ context.Context, namespace, pattern string) (int, error) {
	re, err := compilePattern(pattern)
	if err != nil {
		return 0, err
	}
	ns := c.namespace(namespace, false)
	if ns == nil {
		return 0, nil
	}

	deleted := 0
	for key := range ns.Items() {
		if re.MatchString(key) {
			ns.Delete(key)
			deleted++
		}
	}
	return deleted, nil
}

// Len returns the number of stored entries in namespace, expired or not.
func (c *Cache) Len(namespace string) int {
	ns := c.namespace(namespace, false)
	if ns == nil {
		return 0
	}
	return ns.ItemCount()
}

// Close drops every namespace.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ns := range c.namespaces {
		ns.Flush()
	}
	c.namespaces = make(map[string]*gocache.Cache)
	return nil
}

func compilePattern(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		pattern = ".*"
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid pattern %q: %w", domain.ErrInvalidInput, pattern, err)
	}
	return re, nil
}
