package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/autopropelidos/portal/internal/core/domain"
)

var (
	searchTypes   []string
	searchPage    int
	searchLimit   int
	searchSuggest bool
	searchJSON    bool
	searchFilters filterFlags
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search every content domain",
	Long: `Searches news, videos, vehicles and regulations at once.
Matching ignores case and accents, so "veiculo" finds "Veículo".

Examples:
  autopropelidos search patinete --type vehicles
  autopropelidos search "resolução 996" --scope federal --suggest`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringSliceVarP(&searchTypes, "type", "t", nil, "content types to search (default all)")
	searchCmd.Flags().IntVarP(&searchPage, "page", "p", 1, "page inside each content type")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "results per content type (default from settings)")
	searchCmd.Flags().BoolVar(&searchSuggest, "suggest", false, "include related search suggestions")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchFilters.register(searchCmd)
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	types, err := domain.ParseContentTypes(searchTypes)
	if err != nil {
		return err
	}
	filters, err := searchFilters.build(cmd)
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	result, err := searchService.Search(cmd.Context(), query, domain.UnifiedSearchOptions{
		Types:              types,
		Filters:            filters,
		Pagination:         domain.Pagination{Page: searchPage, Limit: searchLimit},
		IncludeSuggestions: searchSuggest,
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return printJSON(cmd, result)
	}
	outputSearch(cmd, result)
	return nil
}

func outputSearch(cmd *cobra.Command, r *domain.UnifiedSearchResult) {
	timing := fmt.Sprintf("%d ms", r.SearchTimeMs)
	if r.Cached {
		timing = "cached"
	}
	cmd.Println(titleStyle.Render(fmt.Sprintf("Results for %q", r.Query)) + " " +
		mutedStyle.Render(fmt.Sprintf("(%d total, %s)", r.TotalResults, timing)))
	cmd.Println()

	if r.TotalResults == 0 {
		cmd.Println("No results found.")
	}
	for _, sec := range searchSections(r.ResultsByType) {
		if sec.info.Total == 0 {
			continue
		}
		printPage(cmd, sec.contentType.Description(), sec.lines, sec.info)
		cmd.Println()
	}

	for t, msg := range r.Errors {
		cmd.Println(warningStyle.Render(fmt.Sprintf("%s unavailable: %s", t.Description(), msg)))
	}
	if len(r.Suggestions) > 0 {
		cmd.Println(sectionStyle.Render("Suggestions:") + " " + strings.Join(r.Suggestions, ", "))
	}
}

// section is the rendered page of one content domain.
type section struct {
	contentType domain.ContentType
	lines       []itemLine
	info        pageInfo
}

func searchSections(r domain.ResultsByType) []section {
	sections := make([]section, 0, 4)
	add := func(t domain.ContentType, lines []itemLine, info pageInfo) {
		sections = append(sections, section{contentType: t, lines: lines, info: info})
	}
	lines, info := pageOf(r.News, newsLine)
	add(domain.ContentTypeNews, lines, info)
	lines, info = pageOf(r.Videos, videoLine)
	add(domain.ContentTypeVideos, lines, info)
	lines, info = pageOf(r.Vehicles, vehicleLine)
	add(domain.ContentTypeVehicles, lines, info)
	lines, info = pageOf(r.Regulations, regulationLine)
	add(domain.ContentTypeRegulations, lines, info)
	return sections
}
