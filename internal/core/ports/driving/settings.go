package driving

import "github.com/autopropelidos/portal/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get returns defaults overlaid with the config file and environment.
	Get() (*domain.AppSettings, error)

	// Set validates and persists a single dotted key.
	Set(key, value string) error

	// Keys lists every supported settings key.
	Keys() []string

	// Describe lists every key with its effective value and origin.
	Describe() ([]domain.SettingValue, error)

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
