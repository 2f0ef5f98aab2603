package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newMarkdownCmd creates the markdown command.
func newMarkdownCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "markdown",
		Aliases: []string{"build"},
		Short:   "Generate a post for every release",
		Long: `Generate one Markdown post per release in the mail dataset.

Existing posts are overwritten. Generation stops at the first failure;
posts written before it are kept.

Examples:
  relposts markdown                     # data/ and _posts/ under the current directory
  relposts markdown --output-dir site   # site/data -> site/_posts
  relposts build --template compact     # use the compact built-in template
  relposts markdown --json              # {"count": N, "posts": [...]}`,
		Args: cobra.NoArgs,
		RunE: runMarkdown,
	}
}

func runMarkdown(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)

	s, log, err := openSite(cmd)
	if log != nil {
		defer log.Sync() //nolint:errcheck // stderr sync is not actionable
	}
	if err != nil {
		return fail(printer, err)
	}

	written, err := s.Generate()
	if err != nil {
		if len(written) > 0 && !printer.IsJSON() {
			printer.Println(fmt.Sprintf("Wrote %d posts before failing", len(written)))
		}
		return fail(printer, err)
	}

	if written == nil {
		written = []string{}
	}
	return printer.Success(
		fmt.Sprintf("Wrote %d posts to %s", len(written), s.Config.Posts()),
		map[string]any{"count": len(written), "posts": written},
	)
}
