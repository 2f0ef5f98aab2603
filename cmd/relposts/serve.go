package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	relpostsmcp "github.com/gorewood/relposts/internal/mcp"
	"github.com/gorewood/relposts/internal/site"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run relposts as a Model Context Protocol (MCP) server over stdio.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "relposts": {
        "command": "relposts",
        "args": ["serve", "--output-dir", "/path/to/site"]
      }
    }
  }

Available tools: list_releases, render_release (both read-only)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := newLogger(cmd)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck // stderr sync is not actionable

			cfg, err := loadSettings(cmd)
			if err != nil {
				return classify(err)
			}
			open := func() (*site.Site, error) { return site.Open(cfg, log) }

			server := relpostsmcp.NewServer(buildVersion(), open)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
