// Package cli implements the autopropelidos command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/autopropelidos/portal/internal/app"
	"github.com/autopropelidos/portal/internal/core/domain"
	"github.com/autopropelidos/portal/internal/core/ports/driving"
	"github.com/autopropelidos/portal/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=v1.2.3".
var version = "dev"

// bootstrapAnnotation controls how much of the portal a command needs.
const (
	bootstrapAnnotation = "bootstrap"
	bootstrapNone       = "none"
	bootstrapSettings   = "settings"
)

var (
	verbose   bool
	configDir string

	// Services used by commands. Assembled by bootstrap unless injected.
	settingsService driving.SettingsService
	searchService   driving.UnifiedSearchService
	catalogService  driving.CatalogService
	portal          *app.App
	appSettings     *domain.AppSettings

	injected bool
)

var rootCmd = &cobra.Command{
	Use:   "autopropelidos",
	Short: "Search news, videos, vehicles and regulations about self-propelled vehicles",
	Long: `autopropelidos serves the portal's content catalogue: news, YouTube videos,
the vehicle catalogue and Brazilian regulations (CONTRAN resolutions, state
and municipal rules).

Results are cached per content domain. Settings come from
~/.autopropelidos/config.toml, a .env file and AUTOPROPELIDOS_* variables.`,
	SilenceUsage:      true,
	PersistentPreRunE: bootstrap,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.autopropelidos)")
}

// Services injects already assembled services, skipping bootstrap.
type Services struct {
	Settings    driving.SettingsService
	Unified     driving.UnifiedSearchService
	Catalog     driving.CatalogService
	Portal      *app.App
	AppSettings *domain.AppSettings
}

// SetServices injects services. A zero Services restores bootstrapping.
func SetServices(s Services) {
	settingsService = s.Settings
	searchService = s.Unified
	catalogService = s.Catalog
	portal = s.Portal
	appSettings = s.AppSettings
	injected = s.Settings != nil || s.Unified != nil || s.Catalog != nil || s.Portal != nil
}

// bootstrap loads .env and settings, configures logging and assembles the portal.
func bootstrap(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if injected {
		return nil
	}

	level := cmd.Annotations[bootstrapAnnotation]
	if level == bootstrapNone {
		return nil
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("loading .env: %v", err)
	}

	settings, svc, err := app.LoadSettings(configDir, os.LookupEnv)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	settingsService = svc
	appSettings = settings

	logger.Configure(settings.Log.Level, settings.Log.Pretty)
	logger.SetVerbose(verbose)
	if level == bootstrapSettings {
		return nil
	}

	a, err := app.New(cmd.Context(), settings)
	if err != nil {
		return fmt.Errorf("starting portal: %w", err)
	}
	portal = a
	searchService = a.Unified
	catalogService = a.Catalog
	return nil
}

// shutdown releases what bootstrap opened.
func shutdown() {
	if injected || portal == nil {
		return
	}
	if err := portal.Close(); err != nil {
		logger.Warn("closing portal: %v", err)
	}
	portal = nil
}

// requirePortal returns the assembled portal, or an error for commands that need it.
func requirePortal() (*app.App, error) {
	if portal == nil {
		return nil, errors.New("portal not configured")
	}
	return portal, nil
}

// Execute runs the root command until completion or SIGINT/SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer shutdown()

	return rootCmd.ExecuteContext(ctx)
}
