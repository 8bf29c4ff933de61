package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/autopropelidos/portal/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

Tools: unified_search, get_item, content_stats.
Resources: autopropelidos://news, autopropelidos://videos,
autopropelidos://vehicles, autopropelidos://regulations.

By default, the server communicates over stdio using JSON-RPC.
Use --port to start an HTTP server instead.

Examples:
  # Stdio mode (default)
  autopropelidos mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  autopropelidos mcp serve --port 8081

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "autopropelidos": {
        "command": "/path/to/autopropelidos",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	if searchService == nil || catalogService == nil {
		return errors.New("portal not configured")
	}

	if portal != nil {
		if err := portal.WatchDatasets(cmd.Context()); err != nil {
			return err
		}
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Unified: searchService,
		Catalog: catalogService,
	})
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
