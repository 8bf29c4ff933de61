package services

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"time"

	"github.com/autopropelidos/portal/internal/core/domain"
)

// fakeClock is a settable clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// mapCache is an in-memory driven.CacheStore with clock-based expiry.
type mapCache struct {
	mu      sync.Mutex
	clock   *fakeClock
	entries map[string]map[string]mapEntry
	sets    int
}

type mapEntry struct {
	value     []byte
	expiresAt time.Time
}

func newMapCache(clock *fakeClock) *mapCache {
	return &mapCache{clock: clock, entries: make(map[string]map[string]mapEntry)}
}

func (c *mapCache) Get(_ context.Context, ns, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[ns][key]
	if !ok {
		return nil, false, nil
	}
	if c.clock.Now().After(e.expiresAt) {
		delete(c.entries[ns], key)
		return nil, false, nil
	}
	return e.value, true, nil
}

func (c *mapCache) Set(_ context.Context, ns, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries[ns] == nil {
		c.entries[ns] = make(map[string]mapEntry)
	}
	c.entries[ns][key] = mapEntry{value: value, expiresAt: c.clock.Now().Add(ttl)}
	c.sets++
	return nil
}

func (c *mapCache) Invalidate(_ context.Context, ns, pattern string) (int, error) {
	if pattern == "" {
		pattern = ".*"
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return 0, domain.ErrInvalidInput
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k := range c.entries[ns] {
		if re.MatchString(k) {
			delete(c.entries[ns], k)
			n++
		}
	}
	return n, nil
}

func (c *mapCache) Close() error { return nil }

func (c *mapCache) keys(ns string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.entries[ns]))
	for k := range c.entries[ns] {
		out = append(out, k)
	}
	return out
}

// brokenCache fails every operation.
type brokenCache struct{}

var errCacheDown = errors.New("cache down")

func (brokenCache) Get(context.Context, string, string) ([]byte, bool, error) {
	return nil, false, errCacheDown
}

func (brokenCache) Set(context.Context, string, string, []byte, time.Duration) error {
	return errCacheDown
}

func (brokenCache) Invalidate(context.Context, string, string) (int, error) {
	return 0, errCacheDown
}

func (brokenCache) Close() error { return nil }

// spyLogger records event calls.
type spyLogger struct {
	mu       sync.Mutex
	hits     []string
	misses   []string
	searches []string
	accesses []string
	errors   []string
	infos    []string
}

func (l *spyLogger) Info(op, _ string, _ map[string]any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, op)
}

func (l *spyLogger) Error(op, _ string, _ error, _ map[string]any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, op)
}

func (l *spyLogger) CacheHit(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hits = append(l.hits, key)
}

func (l *spyLogger) CacheMiss(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.misses = append(l.misses, key)
}

func (l *spyLogger) SearchQuery(term string, _ any, _ int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.searches = append(l.searches, term)
}

func (l *spyLogger) ContentAccess(contentType, id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.accesses = append(l.accesses, contentType+"/"+id)
}

func (l *spyLogger) counts() (hits, misses, searches int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.hits), len(l.misses), len(l.searches)
}

// sliceSource serves a fixed collection and counts loads.
type sliceSource[T any] struct {
	mu      sync.Mutex
	records []T
	err     error
	calls   int
	block   chan struct{}
}

func (s *sliceSource[T]) ListAll(ctx context.Context) ([]T, error) {
	s.mu.Lock()
	s.calls++
	block := s.block
	s.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

func (s *sliceSource[T]) loads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// panicSource panics on every load.
type panicSource[T any] struct{}

func (panicSource[T]) ListAll(context.Context) ([]T, error) {
	panic("source exploded")
}
