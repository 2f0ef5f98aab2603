// Package mcp provides a Model Context Protocol server for relposts.
// It exposes read-only release tools that any MCP-capable agent can use.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/relposts/internal/site"
)

// Opener opens the site for one tool call, so datasets edited between
// calls are picked up.
type Opener func() (*site.Site, error)

// NewServer creates an MCP server with all relposts tools registered.
func NewServer(version string, open Opener) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "relposts",
		Version: version,
	}, nil)
	registerTools(server, open)
	return server
}

func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

func registerTools(server *mcp.Server, open Opener) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_releases",
		Description: "List releases in the mail dataset with their bug count, mail reference count, thread count and snapshot availability.",
		Annotations: readOnlyAnnotations(),
	}, handleListReleases(open))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "render_release",
		Description: "Render the Markdown post for one release without writing it. Returns the post file name and content.",
		Annotations: readOnlyAnnotations(),
	}, handleRenderRelease(open))
}
