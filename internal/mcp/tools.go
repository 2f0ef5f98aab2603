package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/relposts/internal/site"
)

// ListReleasesInput is the input for the list_releases tool (no parameters needed).
type ListReleasesInput struct{}

// ListReleasesOutput is the output for the list_releases tool.
type ListReleasesOutput struct {
	Count    int            `json:"count"    jsonschema:"number of releases"`
	Releases []site.Summary `json:"releases" jsonschema:"releases in order"`
}

func handleListReleases(open Opener) mcp.ToolHandlerFor[ListReleasesInput, ListReleasesOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ ListReleasesInput) (*mcp.CallToolResult, ListReleasesOutput, error) {
		s, err := open()
		if err != nil {
			return nil, ListReleasesOutput{}, err
		}
		summaries := s.Summaries()
		return nil, ListReleasesOutput{Count: len(summaries), Releases: summaries}, nil
	}
}

// RenderReleaseInput is the input for the render_release tool.
type RenderReleaseInput struct {
	Release string `json:"release" jsonschema:"release key from the mail dataset, e.g. 20190415"`
}

// RenderReleaseOutput is the output for the render_release tool.
type RenderReleaseOutput struct {
	Release string `json:"release" jsonschema:"release key"`
	Name    string `json:"name"    jsonschema:"post file name"`
	Content string `json:"content" jsonschema:"rendered Markdown post"`
}

func handleRenderRelease(open Opener) mcp.ToolHandlerFor[RenderReleaseInput, RenderReleaseOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input RenderReleaseInput) (*mcp.CallToolResult, RenderReleaseOutput, error) {
		if input.Release == "" {
			return nil, RenderReleaseOutput{}, errors.New("release is required")
		}
		s, err := open()
		if err != nil {
			return nil, RenderReleaseOutput{}, err
		}
		p, err := s.Render(input.Release)
		if err != nil {
			return nil, RenderReleaseOutput{}, err
		}
		return nil, RenderReleaseOutput{Release: p.Release, Name: p.Name, Content: p.Content}, nil
	}
}
