package services

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/autopropelidos/portal/internal/core/domain"
	"github.com/autopropelidos/portal/internal/core/ports/driven"
	"github.com/autopropelidos/portal/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// EnvPrefix prefixes environment overrides: cache.ttl.search is read
// from AUTOPROPELIDOS_CACHE_TTL_SEARCH.
const EnvPrefix = "AUTOPROPELIDOS_"

var logLevels = []string{"trace", "debug", "info", "warn", "error", "disabled"}

// setting binds one dotted key to a field of AppSettings.
type setting struct {
	key string

	// parse validates raw and returns the typed value persisted to the store.
	parse func(raw string) (any, error)

	// apply writes a value returned by parse into settings.
	apply func(s *domain.AppSettings, v any)

	// format renders the effective value.
	format func(s *domain.AppSettings) string
}

func durationSetting(key string, field func(s *domain.AppSettings) *time.Duration) setting {
	return setting{
		key: key,
		parse: func(raw string) (any, error) {
			d, err := time.ParseDuration(raw)
			if err != nil {
				return nil, err
			}
			if d < 0 {
				return nil, fmt.Errorf("negative duration %s", raw)
			}
			return d.String(), nil
		},
		apply: func(s *domain.AppSettings, v any) {
			d, _ := time.ParseDuration(v.(string))
			*field(s) = d
		},
		format: func(s *domain.AppSettings) string { return field(s).String() },
	}
}

func stringSetting(key string, field func(s *domain.AppSettings) *string, allowed ...string) setting {
	return setting{
		key: key,
		parse: func(raw string) (any, error) {
			if len(allowed) > 0 && !slices.Contains(allowed, raw) {
				return nil, fmt.Errorf("must be one of %s", strings.Join(allowed, ", "))
			}
			return raw, nil
		},
		apply:  func(s *domain.AppSettings, v any) { *field(s) = v.(string) },
		format: func(s *domain.AppSettings) string { return *field(s) },
	}
}

func intSetting(key string, minimum int, field func(s *domain.AppSettings) *int) setting {
	return setting{
		key: key,
		parse: func(raw string) (any, error) {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return nil, err
			}
			if n < minimum {
				return nil, fmt.Errorf("must be at least %d", minimum)
			}
			return int64(n), nil
		},
		apply:  func(s *domain.AppSettings, v any) { *field(s) = int(v.(int64)) },
		format: func(s *domain.AppSettings) string { return strconv.Itoa(*field(s)) },
	}
}

func floatSetting(key string, field func(s *domain.AppSettings) *float64) setting {
	return setting{
		key: key,
		parse: func(raw string) (any, error) {
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, err
			}
			if f < 0 {
				return nil, fmt.Errorf("must not be negative")
			}
			return f, nil
		},
		apply:  func(s *domain.AppSettings, v any) { *field(s) = v.(float64) },
		format: func(s *domain.AppSettings) string { return strconv.FormatFloat(*field(s), 'f', -1, 64) },
	}
}

func boolSetting(key string, field func(s *domain.AppSettings) *bool) setting {
	return setting{
		key: key,
		parse: func(raw string) (any, error) {
			return strconv.ParseBool(raw)
		},
		apply:  func(s *domain.AppSettings, v any) { *field(s) = v.(bool) },
		format: func(s *domain.AppSettings) string { return strconv.FormatBool(*field(s)) },
	}
}

func defaultLimitSetting(t domain.ContentType) setting {
	return setting{
		key: "search.default_limit." + t.String(),
		parse: func(raw string) (any, error) {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return nil, err
			}
			if n < 1 {
				return nil, fmt.Errorf("must be at least 1")
			}
			return int64(n), nil
		},
		apply: func(s *domain.AppSettings, v any) {
			limits := make(map[domain.ContentType]int, len(s.Search.DefaultLimits)+1)
			for k, n := range s.Search.DefaultLimits {
				limits[k] = n
			}
			limits[t] = int(v.(int64))
			s.Search.DefaultLimits = limits
		},
		format: func(s *domain.AppSettings) string { return strconv.Itoa(s.Search.DefaultLimit(t)) },
	}
}

var settingsTable = []setting{
	{
		key: "cache.backend",
		parse: func(raw string) (any, error) {
			if !domain.CacheBackend(raw).IsValid() {
				return nil, fmt.Errorf("must be memory or redis")
			}
			return raw, nil
		},
		apply:  func(s *domain.AppSettings, v any) { s.Cache.Backend = domain.CacheBackend(v.(string)) },
		format: func(s *domain.AppSettings) string { return s.Cache.Backend.String() },
	},
	durationSetting("cache.cleanup_interval", func(s *domain.AppSettings) *time.Duration { return &s.Cache.CleanupInterval }),
	stringSetting("cache.redis.address", func(s *domain.AppSettings) *string { return &s.Cache.RedisAddress }),
	stringSetting("cache.redis.password", func(s *domain.AppSettings) *string { return &s.Cache.RedisPassword }),
	intSetting("cache.redis.db", 0, func(s *domain.AppSettings) *int { return &s.Cache.RedisDB }),
	stringSetting("cache.redis.prefix", func(s *domain.AppSettings) *string { return &s.Cache.RedisPrefix }),
	durationSetting("cache.ttl.all", func(s *domain.AppSettings) *time.Duration { return &s.Cache.TTL.All }),
	durationSetting("cache.ttl.search", func(s *domain.AppSettings) *time.Duration { return &s.Cache.TTL.Search }),
	durationSetting("cache.ttl.item", func(s *domain.AppSettings) *time.Duration { return &s.Cache.TTL.Item }),
	durationSetting("cache.ttl.stats", func(s *domain.AppSettings) *time.Duration { return &s.Cache.TTL.Stats }),
	durationSetting("cache.ttl.unified", func(s *domain.AppSettings) *time.Duration { return &s.Cache.TTL.Unified }),
	defaultLimitSetting(domain.ContentTypeNews),
	defaultLimitSetting(domain.ContentTypeVideos),
	defaultLimitSetting(domain.ContentTypeVehicles),
	defaultLimitSetting(domain.ContentTypeRegulations),
	intSetting("search.max_limit", 1, func(s *domain.AppSettings) *int { return &s.Search.MaxLimit }),
	intSetting("search.suggestion_cap", 0, func(s *domain.AppSettings) *int { return &s.Search.SuggestionCap }),
	intSetting("search.suggestion_sample", 0, func(s *domain.AppSettings) *int { return &s.Search.SuggestionSample }),
	{
		key: "search.providers",
		parse: func(raw string) (any, error) {
			types, err := domain.ParseContentTypes(splitList(raw))
			if err != nil {
				return nil, err
			}
			names := make([]string, len(types))
			for i, t := range types {
				names[i] = t.String()
			}
			return names, nil
		},
		apply: func(s *domain.AppSettings, v any) {
			names := v.([]string)
			types := make([]domain.ContentType, len(names))
			for i, n := range names {
				types[i] = domain.ContentType(n)
			}
			s.Search.Providers = types
		},
		format: func(s *domain.AppSettings) string {
			names := make([]string, len(s.Search.Providers))
			for i, t := range s.Search.Providers {
				names[i] = t.String()
			}
			return strings.Join(names, ",")
		},
	},
	durationSetting("search.provider_timeout", func(s *domain.AppSettings) *time.Duration { return &s.Search.ProviderTimeout }),
	{
		key: "storage.backend",
		parse: func(raw string) (any, error) {
			if !domain.StorageBackend(raw).IsValid() {
				return nil, fmt.Errorf("must be memory, sqlite or jsonfile")
			}
			return raw, nil
		},
		apply:  func(s *domain.AppSettings, v any) { s.Storage.Backend = domain.StorageBackend(v.(string)) },
		format: func(s *domain.AppSettings) string { return s.Storage.Backend.String() },
	},
	stringSetting("storage.data_dir", func(s *domain.AppSettings) *string { return &s.Storage.DataDir }),
	stringSetting("server.address", func(s *domain.AppSettings) *string { return &s.Server.Address }),
	floatSetting("server.rate_limit", func(s *domain.AppSettings) *float64 { return &s.Server.RateLimit }),
	intSetting("server.burst", 1, func(s *domain.AppSettings) *int { return &s.Server.Burst }),
	stringSetting("log.level", func(s *domain.AppSettings) *string { return &s.Log.Level }, logLevels...),
	boolSetting("log.pretty", func(s *domain.AppSettings) *bool { return &s.Log.Pretty }),
}

// SettingsService resolves settings from defaults, the config store and
// the environment, in increasing precedence.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a new settings service reading the process environment.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		lookupEnv:   os.LookupEnv,
	}
}

// WithEnv replaces the environment lookup.
func (s *SettingsService) WithEnv(lookup func(string) (string, bool)) *SettingsService {
	s.lookupEnv = lookup
	return s
}

// Get returns the effective settings.
// An unparsable file or environment value is an error naming the key.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	settings, _, err := s.resolve()
	if err != nil {
		return nil, err
	}
	return settings, nil
}

// Describe lists every key with its effective value and origin.
func (s *SettingsService) Describe() ([]domain.SettingValue, error) {
	settings, sources, err := s.resolve()
	if err != nil {
		return nil, err
	}
	values := make([]domain.SettingValue, 0, len(settingsTable))
	for _, st := range settingsTable {
		values = append(values, domain.SettingValue{
			Key:    st.key,
			Value:  st.format(settings),
			Source: sources[st.key],
		})
	}
	return values, nil
}

// Set validates value for key and persists it.
func (s *SettingsService) Set(key, value string) error {
	st, ok := lookupSetting(key)
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	v, err := st.parse(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, key, err)
	}
	if err := s.configStore.Set(key, v); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys lists every supported key in table order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingsTable))
	for i, st := range settingsTable {
		keys[i] = st.key
	}
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// EnvKey returns the environment variable that overrides key.
func EnvKey(key string) string {
	return EnvPrefix + strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
}

func (s *SettingsService) resolve() (*domain.AppSettings, map[string]domain.SettingSource, error) {
	settings := domain.DefaultAppSettings()
	sources := make(map[string]domain.SettingSource, len(settingsTable))

	for _, st := range settingsTable {
		sources[st.key] = domain.SettingSourceDefault

		if s.configStore != nil {
			if raw, ok := s.configStore.Get(st.key); ok {
				v, err := st.parse(rawString(raw))
				if err != nil {
					return nil, nil, fmt.Errorf("%w: config %s: %w", domain.ErrInvalidInput, st.key, err)
				}
				st.apply(&settings, v)
				sources[st.key] = domain.SettingSourceFile
			}
		}

		if s.lookupEnv != nil {
			if raw, ok := s.lookupEnv(EnvKey(st.key)); ok && raw != "" {
				v, err := st.parse(strings.TrimSpace(raw))
				if err != nil {
					return nil, nil, fmt.Errorf("%w: env %s: %w", domain.ErrInvalidInput, EnvKey(st.key), err)
				}
				st.apply(&settings, v)
				sources[st.key] = domain.SettingSourceEnv
			}
		}
	}
	return &settings, sources, nil
}

func lookupSetting(key string) (setting, bool) {
	for _, st := range settingsTable {
		if st.key == key {
			return st, true
		}
	}
	return setting{}, false
}

// rawString renders a stored value in the form parse expects.
func rawString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case []string:
		return strings.Join(val, ",")
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, fmt.Sprint(item))
		}
		return strings.Join(parts, ",")
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
