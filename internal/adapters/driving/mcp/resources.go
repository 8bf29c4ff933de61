package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/autopropelidos/portal/internal/core/domain"
)

// uriScheme is the custom URI scheme for portal resources.
const uriScheme = "autopropelidos://"

// registerResources exposes the first page of every content type.
func (s *Server) registerResources() {
	for _, t := range domain.AllContentTypes() {
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + t.String(),
			Name:        t.String(),
			Description: fmt.Sprintf("First page of %s, in the default order", t.Description()),
			MIMEType:    "application/json",
		}, s.handleContentResource)
	}
}

// handleContentResource returns the first page of the content type named by the URI.
func (s *Server) handleContentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	t, ok := contentTypeFromURI(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	page, err := s.ports.Catalog.List(ctx, t, domain.SearchFilters{}, domain.Pagination{Page: 1})
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", t, err)
	}

	data, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", t, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// contentTypeFromURI extracts the content type from a URI like autopropelidos://news.
func contentTypeFromURI(uri string) (domain.ContentType, bool) {
	if !strings.HasPrefix(uri, uriScheme) {
		return "", false
	}
	t, err := domain.ParseContentType(strings.TrimPrefix(uri, uriScheme))
	if err != nil {
		return "", false
	}
	return t, true
}
