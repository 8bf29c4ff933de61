package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/autopropelidos/portal/internal/core/domain"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage cached results",
}

var cacheInvalidateCmd = &cobra.Command{
	Use:   "invalidate <namespace> [pattern]",
	Short: "Drop cached entries",
	Long: `Drops cached entries of a namespace whose key matches a regular expression.

Namespaces are the content types (news, videos, vehicles, regulations),
"unified" for cross-domain searches, or "all". An empty pattern drops the
whole namespace.

Examples:
  autopropelidos cache invalidate all
  autopropelidos cache invalidate news '^stats$'`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCacheInvalidate,
}

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the record store",
}

var dbSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the bundled datasets into the configured storage backend",
	Long: `Writes the bundled news, videos, vehicles and regulations into the
sqlite database or the JSON dataset directory, replacing what is there, and
drops every cached entry.`,
	Args: cobra.NoArgs,
	RunE: runDBSeed,
}

func init() {
	cacheCmd.AddCommand(cacheInvalidateCmd)
	dbCmd.AddCommand(dbSeedCmd)
	rootCmd.AddCommand(cacheCmd, dbCmd)
}

func runCacheInvalidate(cmd *cobra.Command, args []string) error {
	a, err := requirePortal()
	if err != nil {
		return err
	}

	pattern := ""
	if len(args) == 2 {
		pattern = args[1]
	}
	n, err := a.Invalidate(cmd.Context(), args[0], pattern)
	if err != nil {
		return fmt.Errorf("invalidate failed: %w", err)
	}
	cmd.Println(successStyle.Render(fmt.Sprintf("Invalidated %d entries from %s", n, args[0])))
	return nil
}

func runDBSeed(cmd *cobra.Command, _ []string) error {
	a, err := requirePortal()
	if err != nil {
		return err
	}

	counts, err := a.SeedStorage(cmd.Context())
	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	cmd.Println(successStyle.Render(fmt.Sprintf("Seeded %s storage", a.Settings.Storage.Backend)))
	for _, t := range domain.AllContentTypes() {
		cmd.Printf("  %-12s %d\n", t, counts[t])
	}
	return nil
}
