// Package mcp provides an MCP (Model Context Protocol) server adapter for the portal.
// It lets AI assistants search news, videos, vehicles and regulations.
package mcp

import "errors"

// ErrMissingService is returned when the unified search or catalog service is not provided.
var ErrMissingService = errors.New("mcp: unified search and catalog services are required")
