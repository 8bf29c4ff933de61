package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/autopropelidos/portal/internal/adapters/driven/cache/memory"
	"github.com/autopropelidos/portal/internal/adapters/driven/cache/redis"
	"github.com/autopropelidos/portal/internal/adapters/driven/clock"
	"github.com/autopropelidos/portal/internal/adapters/driven/config/file"
	"github.com/autopropelidos/portal/internal/adapters/driven/storage/jsonfile"
	memstore "github.com/autopropelidos/portal/internal/adapters/driven/storage/memory"
	"github.com/autopropelidos/portal/internal/adapters/driven/storage/sqlite"
	"github.com/autopropelidos/portal/internal/core/domain"
	"github.com/autopropelidos/portal/internal/core/ports/driven"
	"github.com/autopropelidos/portal/internal/core/services"
	"github.com/autopropelidos/portal/internal/logger"
)

// Sources holds the record source of every domain.
type Sources struct {
	News        driven.RecordSource[domain.NewsItem]
	Videos      driven.RecordSource[domain.VideoItem]
	Vehicles    driven.RecordSource[domain.VehicleItem]
	Regulations driven.RecordSource[domain.RegulationItem]
}

// App is the assembled portal.
type App struct {
	Settings *domain.AppSettings
	Cache    driven.CacheStore

	News        *services.NewsProvider
	Videos      *services.VideoProvider
	Vehicles    *services.VehicleProvider
	Regulations *services.RegulationProvider
	Unified     *services.UnifiedSearchService
	Catalog     *services.Catalog

	store   *sqlite.Store
	closers []func() error
}

// Option customises New.
type Option func(*options)

type options struct {
	clock   driven.Clock
	cache   driven.CacheStore
	sources *Sources
}

// WithClock replaces the system clock.
func WithClock(c driven.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithCache replaces the cache built from settings.
func WithCache(c driven.CacheStore) Option {
	return func(o *options) { o.cache = c }
}

// WithSources replaces the record sources built from settings.
func WithSources(s Sources) Option {
	return func(o *options) { o.sources = &s }
}

// LoadSettings reads the config file in configDir (empty means
// ~/.autopropelidos) and overlays AUTOPROPELIDOS_* environment variables.
func LoadSettings(configDir string, lookupEnv func(string) (string, bool)) (*domain.AppSettings, *services.SettingsService, error) {
	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening config: %w", err)
	}
	svc := services.NewSettingsService(store).WithEnv(lookupEnv)
	settings, err := svc.Get()
	if err != nil {
		return nil, nil, err
	}
	return settings, svc, nil
}

// New assembles the portal described by settings.
func New(ctx context.Context, settings *domain.AppSettings, opts ...Option) (*App, error) {
	o := options{clock: clock.System{}}
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{Settings: settings}

	cache := o.cache
	if cache == nil {
		c, err := a.openCache(ctx)
		if err != nil {
			return nil, err
		}
		cache = c
		a.closers = append(a.closers, c.Close)
	}
	a.Cache = cache

	var sources Sources
	if o.sources != nil {
		sources = *o.sources
	} else {
		s, err := a.openSources()
		if err != nil {
			a.Close()
			return nil, err
		}
		sources = s
	}

	ttl := settings.Cache.TTL
	deps := func(t domain.ContentType) services.ProviderDeps {
		return services.ProviderDeps{
			Cache:        cache,
			Clock:        o.clock,
			Logger:       logger.For(t.String()),
			TTL:          ttl,
			DefaultLimit: settings.Search.DefaultLimit(t),
			MaxLimit:     settings.Search.MaxLimit,
		}
	}

	a.News = services.NewNewsProvider(sources.News, deps(domain.ContentTypeNews))
	a.Videos = services.NewVideoProvider(sources.Videos, deps(domain.ContentTypeVideos))
	a.Vehicles = services.NewVehicleProvider(sources.Vehicles, deps(domain.ContentTypeVehicles))
	a.Regulations = services.NewRegulationProvider(sources.Regulations, deps(domain.ContentTypeRegulations))

	domains := services.Domains{
		News:        a.News,
		Videos:      a.Videos,
		Vehicles:    a.Vehicles,
		Regulations: a.Regulations,
	}
	a.Unified = services.NewUnifiedSearchService(domains, services.UnifiedSearchDeps{
		Cache:    cache,
		Clock:    o.clock,
		Logger:   logger.For(services.NamespaceUnified),
		Settings: settings.Search,
		TTL:      ttl.Unified,
	})
	a.Catalog = services.NewCatalog(domains)

	return a, nil
}

func (a *App) openCache(ctx context.Context) (driven.CacheStore, error) {
	cs := a.Settings.Cache
	switch cs.Backend {
	case domain.CacheBackendRedis:
		c, err := redis.New(ctx, redis.Options{
			Address:  cs.RedisAddress,
			Password: cs.RedisPassword,
			DB:       cs.RedisDB,
			Prefix:   cs.RedisPrefix,
		})
		if err != nil {
			return nil, err
		}
		logger.Debug("cache: redis at %s", cs.RedisAddress)
		return c, nil
	case domain.CacheBackendMemory, "":
		logger.Debug("cache: memory, cleanup every %s", cs.CleanupInterval)
		return memory.New(cs.CleanupInterval), nil
	default:
		return nil, fmt.Errorf("%w: cache backend %q", domain.ErrUnsupportedType, cs.Backend)
	}
}

func (a *App) openSources() (Sources, error) {
	switch a.Settings.Storage.Backend {
	case domain.StorageBackendSQLite:
		store, err := a.sqliteStore()
		if err != nil {
			return Sources{}, err
		}
		return Sources{
			News:        sqlite.NewRecordSource[domain.NewsItem](store, domain.ContentTypeNews),
			Videos:      sqlite.NewRecordSource[domain.VideoItem](store, domain.ContentTypeVideos),
			Vehicles:    sqlite.NewRecordSource[domain.VehicleItem](store, domain.ContentTypeVehicles),
			Regulations: sqlite.NewRecordSource[domain.RegulationItem](store, domain.ContentTypeRegulations),
		}, nil
	case domain.StorageBackendJSONFile:
		dir, err := a.DataDir()
		if err != nil {
			return Sources{}, err
		}
		return Sources{
			News:        jsonfile.NewRecordSource[domain.NewsItem](dir, domain.ContentTypeNews),
			Videos:      jsonfile.NewRecordSource[domain.VideoItem](dir, domain.ContentTypeVideos),
			Vehicles:    jsonfile.NewRecordSource[domain.VehicleItem](dir, domain.ContentTypeVehicles),
			Regulations: jsonfile.NewRecordSource[domain.RegulationItem](dir, domain.ContentTypeRegulations),
		}, nil
	case domain.StorageBackendMemory, "":
		ds, err := memstore.Seed()
		if err != nil {
			return Sources{}, err
		}
		s := ds.Sources()
		return Sources{News: s.News, Videos: s.Videos, Vehicles: s.Vehicles, Regulations: s.Regulations}, nil
	default:
		return Sources{}, fmt.Errorf("%w: storage backend %q", domain.ErrUnsupportedType, a.Settings.Storage.Backend)
	}
}

// DataDir returns the configured data directory, defaulting to ~/.autopropelidos/data.
func (a *App) DataDir() (string, error) {
	if dir := strings.TrimSpace(a.Settings.Storage.DataDir); dir != "" {
		return dir, nil
	}
	base, err := file.DefaultDir()
	if err != nil {
		return "", fmt.Errorf("resolving data directory: %w", err)
	}
	return filepath.Join(base, "data"), nil
}

func (a *App) sqliteStore() (*sqlite.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	dir, err := a.DataDir()
	if err != nil {
		return nil, err
	}
	store, err := sqlite.NewStore(dir)
	if err != nil {
		return nil, err
	}
	a.store = store
	a.closers = append(a.closers, store.Close)
	return store, nil
}

// SeedCounts reports how many records were written per domain.
type SeedCounts map[domain.ContentType]int

// SeedStorage writes the embedded datasets to the configured storage backend
// and drops every cached entry. The memory backend already serves them.
func (a *App) SeedStorage(ctx context.Context) (SeedCounts, error) {
	ds, err := memstore.Seed()
	if err != nil {
		return nil, err
	}

	switch a.Settings.Storage.Backend {
	case domain.StorageBackendSQLite:
		store, err := a.sqliteStore()
		if err != nil {
			return nil, err
		}
		if err := errors.Join(
			sqlite.Seed(ctx, store, domain.ContentTypeNews, ds.News),
			sqlite.Seed(ctx, store, domain.ContentTypeVideos, ds.Videos),
			sqlite.Seed(ctx, store, domain.ContentTypeVehicles, ds.Vehicles),
			sqlite.Seed(ctx, store, domain.ContentTypeRegulations, ds.Regulations),
		); err != nil {
			return nil, err
		}
	case domain.StorageBackendJSONFile:
		dir, err := a.DataDir()
		if err != nil {
			return nil, err
		}
		if err := errors.Join(
			jsonfile.Write(dir, domain.ContentTypeNews, ds.News),
			jsonfile.Write(dir, domain.ContentTypeVideos, ds.Videos),
			jsonfile.Write(dir, domain.ContentTypeVehicles, ds.Vehicles),
			jsonfile.Write(dir, domain.ContentTypeRegulations, ds.Regulations),
		); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: storage backend %q cannot be seeded", domain.ErrInvalidInput, a.Settings.Storage.Backend)
	}

	if _, err := a.InvalidateAll(ctx); err != nil {
		logger.Warn("seed: cache invalidation failed: %v", err)
	}

	counts := make(SeedCounts, 4)
	for _, t := range domain.AllContentTypes() {
		counts[t] = ds.Count(t)
	}
	return counts, nil
}

// Invalidate drops cached entries of namespace ("news", ..., "unified" or "all")
// whose key matches pattern.
func (a *App) Invalidate(ctx context.Context, namespace, pattern string) (int, error) {
	switch namespace {
	case "all":
		if pattern != "" {
			return 0, fmt.Errorf("%w: a pattern cannot be combined with all", domain.ErrInvalidInput)
		}
		return a.InvalidateAll(ctx)
	case services.NamespaceUnified:
		return a.Unified.Invalidate(ctx, pattern)
	}

	t, err := domain.ParseContentType(namespace)
	if err != nil {
		return 0, err
	}
	return a.Catalog.Invalidate(ctx, t, pattern)
}

// InvalidateAll drops every cached entry of every namespace.
func (a *App) InvalidateAll(ctx context.Context) (int, error) {
	total := 0
	var errs []error
	for _, t := range domain.AllContentTypes() {
		n, err := a.Catalog.Invalidate(ctx, t, "")
		total += n
		errs = append(errs, err)
	}
	n, err := a.Unified.Invalidate(ctx, "")
	total += n
	errs = append(errs, err)
	return total, errors.Join(errs...)
}

// WatchDatasets invalidates caches whenever a JSON dataset changes.
// It is a no-op unless the jsonfile storage backend is selected.
func (a *App) WatchDatasets(ctx context.Context) error {
	if a.Settings.Storage.Backend != domain.StorageBackendJSONFile {
		return nil
	}
	dir, err := a.DataDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	w, err := jsonfile.NewWatcher(dir, func(t domain.ContentType) {
		if _, err := a.Catalog.Invalidate(ctx, t, ""); err != nil {
			logger.Warn("invalidate %s: %v", t, err)
		}
		if _, err := a.Unified.Invalidate(ctx, ""); err != nil {
			logger.Warn("invalidate unified: %v", err)
		}
		logger.Info("dataset %s reloaded", t)
	})
	if err != nil {
		return err
	}
	a.closers = append(a.closers, w.Close)
	go w.Run(ctx)
	return nil
}

// Close releases every resource opened by New, in reverse order.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
