package domain

import "time"

const unknownDescription = "Unknown"

// CacheBackend selects the cache store implementation.
type CacheBackend string

// Available cache backends.
const (
	// CacheBackendMemory keeps entries in process memory.
	CacheBackendMemory CacheBackend = "memory"

	// CacheBackendRedis shares entries through a Redis server.
	CacheBackendRedis CacheBackend = "redis"
)

// IsValid returns true if the cache backend is recognised.
func (b CacheBackend) IsValid() bool {
	return b == CacheBackendMemory || b == CacheBackendRedis
}

// String returns the string representation.
func (b CacheBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b CacheBackend) Description() string {
	switch b {
	case CacheBackendMemory:
		return "Memory (per process)"
	case CacheBackendRedis:
		return "Redis (shared)"
	default:
		return unknownDescription
	}
}

// StorageBackend selects where provider records are read from.
type StorageBackend string

// Available storage backends.
const (
	// StorageBackendMemory serves the embedded seed datasets.
	StorageBackendMemory StorageBackend = "memory"

	// StorageBackendSQLite reads records from the SQLite database.
	StorageBackendSQLite StorageBackend = "sqlite"

	// StorageBackendJSONFile reads records from JSON files in the data directory.
	StorageBackendJSONFile StorageBackend = "jsonfile"
)

// IsValid returns true if the storage backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageBackendMemory, StorageBackendSQLite, StorageBackendJSONFile:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// CacheTTLSettings holds per-operation cache lifetimes.
type CacheTTLSettings struct {
	// All is the lifetime of unfiltered and filtered listings.
	All time.Duration

	// Search is the lifetime of term searches.
	Search time.Duration

	// Item is the lifetime of single-record lookups.
	Item time.Duration

	// Stats is the lifetime of aggregate statistics.
	Stats time.Duration

	// Unified is the lifetime of cross-domain search envelopes.
	Unified time.Duration
}

// CacheSettings holds cache store configuration.
type CacheSettings struct {
	// Backend selects memory or redis.
	Backend CacheBackend

	// CleanupInterval is how often the memory backend sweeps expired entries.
	CleanupInterval time.Duration

	// RedisAddress is host:port of the Redis server.
	RedisAddress string

	// RedisPassword authenticates against Redis (optional).
	RedisPassword string

	// RedisDB selects the Redis logical database.
	RedisDB int

	// RedisPrefix namespaces every key written by this process.
	RedisPrefix string

	// TTL holds per-operation lifetimes.
	TTL CacheTTLSettings
}

// SearchSettings holds search behaviour configuration.
type SearchSettings struct {
	// DefaultLimits is the page size used when a request has none, per domain.
	DefaultLimits map[ContentType]int

	// MaxLimit caps every page size.
	MaxLimit int

	// SuggestionCap is the maximum number of suggestions returned.
	SuggestionCap int

	// SuggestionSample is how many records per domain feed suggestion generation.
	SuggestionSample int

	// Providers is the default domain set for unified search.
	Providers []ContentType

	// ProviderTimeout bounds each domain search inside unified search.
	ProviderTimeout time.Duration
}

// DefaultLimit returns the page size default for t.
func (s SearchSettings) DefaultLimit(t ContentType) int {
	if n, ok := s.DefaultLimits[t]; ok && n > 0 {
		return n
	}
	return 10
}

// StorageSettings holds record source configuration.
type StorageSettings struct {
	// Backend selects memory, sqlite or jsonfile.
	Backend StorageBackend

	// DataDir holds the SQLite database and JSON datasets.
	// Empty means ~/.autopropelidos/data.
	DataDir string
}

// ServerSettings holds HTTP API configuration.
type ServerSettings struct {
	// Address is the listen address, e.g. ":8080".
	Address string

	// RateLimit is the sustained requests per second allowed.
	RateLimit float64

	// Burst is the token bucket size.
	Burst int
}

// LogSettings holds logging configuration.
type LogSettings struct {
	// Level is trace, debug, info, warn or error.
	Level string

	// Pretty enables human-readable console output.
	Pretty bool
}

// AppSettings holds all application settings.
type AppSettings struct {
	Cache   CacheSettings
	Search  SearchSettings
	Storage StorageSettings
	Server  ServerSettings
	Log     LogSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Cache: CacheSettings{
			Backend:         CacheBackendMemory,
			CleanupInterval: 10 * time.Minute,
			RedisAddress:    "localhost:6379",
			RedisPrefix:     "autopropelidos",
			TTL: CacheTTLSettings{
				All:     time.Hour,
				Search:  30 * time.Minute,
				Item:    2 * time.Hour,
				Stats:   6 * time.Hour,
				Unified: 5 * time.Minute,
			},
		},
		Search: SearchSettings{
			DefaultLimits: map[ContentType]int{
				ContentTypeNews:        10,
				ContentTypeVideos:      12,
				ContentTypeVehicles:    10,
				ContentTypeRegulations: 10,
			},
			MaxLimit:         100,
			SuggestionCap:    10,
			SuggestionSample: 100,
			Providers:        AllContentTypes(),
			ProviderTimeout:  5 * time.Second,
		},
		Storage: StorageSettings{
			Backend: StorageBackendMemory,
		},
		Server: ServerSettings{
			Address:   ":8080",
			RateLimit: 20,
			Burst:     40,
		},
		Log: LogSettings{
			Level: "warn",
		},
	}
}

// SettingSource tells where an effective setting value came from.
type SettingSource string

const (
	SettingSourceDefault SettingSource = "default"
	SettingSourceFile    SettingSource = "file"
	SettingSourceEnv     SettingSource = "env"
)

// SettingValue is one effective settings key.
type SettingValue struct {
	Key    string        `json:"key"`
	Value  string        `json:"value"`
	Source SettingSource `json:"source"`
}
