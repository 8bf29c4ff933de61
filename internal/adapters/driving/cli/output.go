package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/autopropelidos/portal/internal/core/domain"
)

// dateLayout is the display format for dates.
const dateLayout = "02/01/2006"

// itemLine is the one-line summary of a record.
type itemLine struct {
	ID     string
	Title  string
	Detail string
}

// pageInfo describes the position of a page in its result set.
type pageInfo struct {
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

func newsLine(n domain.NewsItem) itemLine {
	return itemLine{
		ID:     n.ID,
		Title:  n.Title,
		Detail: joinDetail(n.Source, n.Category, n.PublishedAt.Format(dateLayout)),
	}
}

func videoLine(v domain.VideoItem) itemLine {
	return itemLine{
		ID:     v.ID,
		Title:  v.Title,
		Detail: joinDetail(v.Channel, formatDuration(v.DurationSeconds), fmt.Sprintf("%d views", v.Views)),
	}
}

func vehicleLine(v domain.VehicleItem) itemLine {
	return itemLine{
		ID:     v.ID,
		Title:  v.Name,
		Detail: joinDetail(v.Brand, fmt.Sprintf("R$ %.2f", v.Price), fmt.Sprintf("%.0f km/h", v.MaxSpeedKmh), fmt.Sprintf("%.1f★", v.Rating)),
	}
}

func regulationLine(r domain.RegulationItem) itemLine {
	title := r.Title
	if r.Number != "" {
		title = r.Number + " - " + r.Title
	}
	return itemLine{
		ID:     r.ID,
		Title:  title,
		Detail: joinDetail(r.Scope, r.Status, "vigência "+r.EffectiveDate.Format(dateLayout)),
	}
}

func joinDetail(parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " · ")
}

func formatDuration(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func pageOf[T any](r domain.SearchResult[T], line func(T) itemLine) ([]itemLine, pageInfo) {
	lines := make([]itemLine, len(r.Items))
	for i, item := range r.Items {
		lines[i] = line(item)
	}
	return lines, pageInfo{Total: r.Total, Page: r.Page, Limit: r.Limit, TotalPages: r.TotalPages}
}

// summarizePage renders a typed page returned by the catalog.
func summarizePage(v any) ([]itemLine, pageInfo, bool) {
	switch r := v.(type) {
	case domain.SearchResult[domain.NewsItem]:
		lines, info := pageOf(r, newsLine)
		return lines, info, true
	case domain.SearchResult[domain.VideoItem]:
		lines, info := pageOf(r, videoLine)
		return lines, info, true
	case domain.SearchResult[domain.VehicleItem]:
		lines, info := pageOf(r, vehicleLine)
		return lines, info, true
	case domain.SearchResult[domain.RegulationItem]:
		lines, info := pageOf(r, regulationLine)
		return lines, info, true
	default:
		return nil, pageInfo{}, false
	}
}

// printLines writes numbered summaries, starting at first.
func printLines(cmd *cobra.Command, lines []itemLine, first int) {
	for i, l := range lines {
		cmd.Printf("  [%d] %s  %s\n", first+i, l.Title, mutedStyle.Render(l.ID))
		if l.Detail != "" {
			cmd.Println(indentedStyle.Render(l.Detail))
		}
	}
}

// printPage writes a page heading, its summaries and the page position.
func printPage(cmd *cobra.Command, heading string, lines []itemLine, info pageInfo) {
	cmd.Println(sectionStyle.Render(fmt.Sprintf("%s (%d)", heading, info.Total)))
	if len(lines) == 0 {
		cmd.Println(mutedStyle.Render("  No results found."))
		return
	}
	first := 1
	if info.Page > 1 {
		first = (info.Page-1)*info.Limit + 1
	}
	printLines(cmd, lines, first)
	if info.TotalPages > 1 {
		cmd.Println(mutedStyle.Render(fmt.Sprintf("  page %d of %d", info.Page, info.TotalPages)))
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
