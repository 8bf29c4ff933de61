package cli

import (
	"github.com/spf13/cobra"

	"github.com/autopropelidos/portal/internal/adapters/driving/api"
	"github.com/autopropelidos/portal/internal/logger"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the JSON HTTP API.

Routes:
  GET    /health
  GET    /api/v1/search?q=...&types=news,videos
  GET    /api/v1/:type
  GET    /api/v1/:type/stats
  GET    /api/v1/:type/:id
  GET    /api/v1/news/latest
  DELETE /api/v1/cache/:namespace?pattern=...

With the jsonfile storage backend, edits to the dataset files drop the
affected cache entries while the server runs.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (default from server.address)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := requirePortal()
	if err != nil {
		return err
	}

	settings := a.Settings.Server
	if serveAddr != "" {
		settings.Address = serveAddr
	}

	if err := a.WatchDatasets(cmd.Context()); err != nil {
		return err
	}

	srv, err := api.NewServer(api.Ports{Unified: a.Unified, Catalog: a.Catalog, Cache: a}, settings, logger.L())
	if err != nil {
		return err
	}
	cmd.Printf("HTTP API listening on %s\n", srv.Addr())
	return srv.Run(cmd.Context())
}
