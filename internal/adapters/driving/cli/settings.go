package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/autopropelidos/portal/internal/core/domain"
)

var settingsAnnotations = map[string]string{bootstrapAnnotation: bootstrapSettings}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure cache, search, storage, server and logging settings.

Values are read from defaults, then ~/.autopropelidos/config.toml, then
AUTOPROPELIDOS_<KEY> environment variables (dots become underscores).`,
	Annotations: settingsAnnotations,
	RunE:        runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Show current settings",
	Annotations: settingsAnnotations,
	RunE:        runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Persist one setting",
	Long: `Validate and persist one dotted settings key.

Examples:
  autopropelidos settings set cache.ttl.search 45m
  autopropelidos settings set storage.backend sqlite
  autopropelidos settings set search.providers news,regulations`,
	Annotations: settingsAnnotations,
	Args:        cobra.ExactArgs(2),
	RunE:        runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	values, err := settingsService.Describe()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println(titleStyle.Render("Current Settings"))
	cmd.Println(settingsTable(values))
	return nil
}

func settingsTable(values []domain.SettingValue) string {
	rows := make([][]string, len(values))
	for i, v := range values {
		value := v.Value
		if v.Key == "cache.redis.password" && value != "" {
			value = maskSecret(value)
		}
		rows[i] = []string{v.Key, value, string(v.Source)}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorder).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("KEY", "VALUE", "SOURCE").
		Rows(rows...).
		Render()
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Println(successStyle.Render(fmt.Sprintf("Set %s = %s", args[0], args[1])))
	return nil
}

// maskSecret shows the first and last four characters of long secrets.
func maskSecret(secret string) string {
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}
