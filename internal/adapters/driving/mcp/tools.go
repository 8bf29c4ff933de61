package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/autopropelidos/portal/internal/core/domain"
)

// SearchInput is the input schema for the unified_search tool.
type SearchInput struct {
	Query       string   `json:"query" jsonschema:"the search term, matched ignoring case and accents"`
	Types       []string `json:"types,omitempty" jsonschema:"content types to search: news, videos, vehicles, regulations (default all)"`
	Page        int      `json:"page,omitempty" jsonschema:"1-based page inside each content type (default 1)"`
	Limit       int      `json:"limit,omitempty" jsonschema:"results per content type (default 10)"`
	Suggestions bool     `json:"suggestions,omitempty" jsonschema:"include related search suggestions"`
}

// SearchOutput is the output schema for the unified_search tool.
type SearchOutput struct {
	Query        string         `json:"query"`
	TotalResults int            `json:"total_results"`
	Totals       map[string]int `json:"totals"`
	Hits         []Hit          `json:"hits"`
	Suggestions  []string       `json:"suggestions,omitempty"`
	Cached       bool           `json:"cached"`
}

// Hit is one matching record, reduced to what an assistant needs to cite it.
type Hit struct {
	Type    string `json:"type"`
	ID      string `json:"id"`
	Title   string `json:"title"`
	Summary string `json:"summary,omitempty"`
	URL     string `json:"url,omitempty"`
}

// ItemInput is the input schema for the get_item tool.
type ItemInput struct {
	Type string `json:"type" jsonschema:"content type: news, videos, vehicles or regulations"`
	ID   string `json:"id" jsonschema:"record identifier"`
}

// StatsInput is the input schema for the content_stats tool.
type StatsInput struct {
	Type string `json:"type" jsonschema:"content type: news, videos, vehicles or regulations"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "unified_search",
		Description: "Search news, videos, vehicles and regulations about self-propelled vehicles",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_item",
		Description: "Fetch one record by content type and identifier",
	}, s.handleGetItem)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "content_stats",
		Description: "Aggregate statistics of one content type",
	}, s.handleStats)
}

// handleSearch handles the unified_search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	types, err := domain.ParseContentTypes(input.Types)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	opts := domain.UnifiedSearchOptions{
		Types:              types,
		Pagination:         domain.Pagination{Page: input.Page, Limit: input.Limit},
		IncludeSuggestions: input.Suggestions,
	}
	result, err := s.ports.Unified.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	return nil, toSearchOutput(result), nil
}

func toSearchOutput(r *domain.UnifiedSearchResult) SearchOutput {
	out := SearchOutput{
		Query:        r.Query,
		TotalResults: r.TotalResults,
		Totals:       make(map[string]int, 4),
		Hits:         []Hit{},
		Suggestions:  r.Suggestions,
		Cached:       r.Cached,
	}
	for _, t := range domain.AllContentTypes() {
		out.Totals[t.String()] = r.ResultsByType.TotalFor(t)
	}

	for _, n := range r.ResultsByType.News.Items {
		out.Hits = append(out.Hits, Hit{Type: domain.ContentTypeNews.String(), ID: n.ID, Title: n.Title, Summary: n.Description, URL: n.URL})
	}
	for _, v := range r.ResultsByType.Videos.Items {
		out.Hits = append(out.Hits, Hit{Type: domain.ContentTypeVideos.String(), ID: v.ID, Title: v.Title, Summary: v.Description, URL: v.WatchURL()})
	}
	for _, v := range r.ResultsByType.Vehicles.Items {
		out.Hits = append(out.Hits, Hit{Type: domain.ContentTypeVehicles.String(), ID: v.ID, Title: v.Name, Summary: v.Description})
	}
	for _, g := range r.ResultsByType.Regulations.Items {
		out.Hits = append(out.Hits, Hit{Type: domain.ContentTypeRegulations.String(), ID: g.ID, Title: g.Title, Summary: g.Summary, URL: g.URL})
	}
	return out
}

// handleGetItem handles the get_item tool invocation.
func (s *Server) handleGetItem(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ItemInput,
) (*mcp.CallToolResult, any, error) {
	t, err := domain.ParseContentType(input.Type)
	if err != nil {
		return nil, nil, err
	}

	record, found, err := s.ports.Catalog.Get(ctx, t, input.ID)
	if err != nil {
		return nil, nil, err
	}
	if !found {
		return nil, nil, fmt.Errorf("%w: %s %q", domain.ErrNotFound, t, input.ID)
	}
	return nil, record, nil
}

// handleStats handles the content_stats tool invocation.
func (s *Server) handleStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input StatsInput,
) (*mcp.CallToolResult, any, error) {
	t, err := domain.ParseContentType(input.Type)
	if err != nil {
		return nil, nil, err
	}
	stats, err := s.ports.Catalog.Stats(ctx, t)
	if err != nil {
		return nil, nil, err
	}
	return nil, stats, nil
}
