package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/autopropelidos/portal/internal/core/domain"
)

var (
	listQuery   string
	listPage    int
	listLimit   int
	listJSON    bool
	listFilters filterFlags

	getJSON bool

	latestCategory string
	latestLimit    int
	latestJSON     bool
)

var listCmd = &cobra.Command{
	Use:   "list <type>",
	Short: "List records of one content type",
	Long: `Lists news, videos, vehicles or regulations in their default order:
news by relevance, videos by views, vehicles by rating and regulations by
effective date.

Examples:
  autopropelidos list regulations --scope federal --limit 2
  autopropelidos list vehicles --brand Xiaomi --max-price 4000`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

var getCmd = &cobra.Command{
	Use:   "get <type> <id>",
	Short: "Show one record",
	Args:  cobra.ExactArgs(2),
	RunE:  runGet,
}

var statsCmd = &cobra.Command{
	Use:   "stats <type>",
	Short: "Show statistics of one content type",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Show the newest news articles",
	Args:  cobra.NoArgs,
	RunE:  runLatest,
}

func init() {
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "free text the records must contain")
	listCmd.Flags().IntVarP(&listPage, "page", "p", 1, "page number")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "page size (default from settings)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
	listFilters.register(listCmd)

	getCmd.Flags().BoolVar(&getJSON, "json", false, "output as JSON")

	latestCmd.Flags().StringVarP(&latestCategory, "category", "c", "all", "news category")
	latestCmd.Flags().IntVarP(&latestLimit, "limit", "n", 5, "number of articles")
	latestCmd.Flags().BoolVar(&latestJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(listCmd, getCmd, statsCmd, latestCmd)
}

func requireCatalog() error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	if err := requireCatalog(); err != nil {
		return err
	}
	t, err := domain.ParseContentType(args[0])
	if err != nil {
		return err
	}
	filters, err := listFilters.build(cmd)
	if err != nil {
		return err
	}
	filters.Query = listQuery

	result, err := catalogService.List(cmd.Context(), t, filters, domain.Pagination{Page: listPage, Limit: listLimit})
	if err != nil {
		return fmt.Errorf("list failed: %w", err)
	}
	if listJSON {
		return printJSON(cmd, result)
	}

	lines, info, ok := summarizePage(result)
	if !ok {
		return printJSON(cmd, result)
	}
	printPage(cmd, t.Description(), lines, info)
	return nil
}

func runGet(cmd *cobra.Command, args []string) error {
	if err := requireCatalog(); err != nil {
		return err
	}
	t, err := domain.ParseContentType(args[0])
	if err != nil {
		return err
	}

	record, found, err := catalogService.Get(cmd.Context(), t, args[1])
	if err != nil {
		return fmt.Errorf("get failed: %w", err)
	}
	if !found {
		return fmt.Errorf("%w: %s %q", domain.ErrNotFound, t, args[1])
	}
	if getJSON {
		return printJSON(cmd, record)
	}
	outputRecord(cmd, record)
	return nil
}

func outputRecord(cmd *cobra.Command, record any) {
	field := func(label, value string) {
		if value != "" {
			cmd.Printf("  %s %s\n", mutedStyle.Render(label+":"), value)
		}
	}

	switch r := record.(type) {
	case *domain.NewsItem:
		cmd.Println(titleStyle.Render(r.Title))
		field("Source", r.Source)
		field("Category", r.Category)
		field("Published", r.PublishedAt.Format(dateLayout))
		field("URL", r.URL)
		cmd.Println()
		cmd.Println(r.Description)
	case *domain.VideoItem:
		cmd.Println(titleStyle.Render(r.Title))
		field("Channel", r.Channel)
		field("Duration", formatDuration(r.DurationSeconds))
		field("Views", fmt.Sprint(r.Views))
		field("Watch", r.WatchURL())
		cmd.Println()
		cmd.Println(r.Description)
	case *domain.VehicleItem:
		cmd.Println(titleStyle.Render(r.Name))
		field("Brand", r.Brand)
		field("Classification", r.Classification)
		field("Price", fmt.Sprintf("R$ %.2f", r.Price))
		field("Max speed", fmt.Sprintf("%.0f km/h", r.MaxSpeedKmh))
		field("Range", fmt.Sprintf("%.0f km", r.RangeKm))
		field("License", yesNo(r.RequiresLicense))
		cmd.Println()
		cmd.Println(r.Description)
	case *domain.RegulationItem:
		cmd.Println(titleStyle.Render(r.Number + " - " + r.Title))
		field("Authority", r.Authority)
		field("Scope", r.Scope)
		field("Status", r.Status)
		field("Effective", r.EffectiveDate.Format(dateLayout))
		field("URL", r.URL)
		cmd.Println()
		cmd.Println(r.Summary)
	default:
		_ = printJSON(cmd, record)
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func runStats(cmd *cobra.Command, args []string) error {
	if err := requireCatalog(); err != nil {
		return err
	}
	t, err := domain.ParseContentType(args[0])
	if err != nil {
		return err
	}

	stats, err := catalogService.Stats(cmd.Context(), t)
	if err != nil {
		return fmt.Errorf("stats failed: %w", err)
	}
	cmd.Println(titleStyle.Render(t.Description() + " statistics"))
	return printJSON(cmd, stats)
}

func runLatest(cmd *cobra.Command, _ []string) error {
	if err := requireCatalog(); err != nil {
		return err
	}

	items, err := catalogService.Latest(cmd.Context(), latestCategory, latestLimit)
	if err != nil {
		return fmt.Errorf("latest failed: %w", err)
	}
	if latestJSON {
		return printJSON(cmd, items)
	}

	if len(items) == 0 {
		cmd.Println("No news found.")
		return nil
	}
	lines := make([]itemLine, len(items))
	for i, n := range items {
		lines[i] = newsLine(n)
	}
	cmd.Println(titleStyle.Render("Latest news"))
	printLines(cmd, lines, 1)
	return nil
}
