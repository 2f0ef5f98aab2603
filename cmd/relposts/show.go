package main

import (
	"github.com/spf13/cobra"
)

// newShowCmd creates the show command.
func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <release>",
		Short: "Render one release post to stdout",
		Long: `Render the post for a single release without writing it.

Examples:
  relposts show 20190415          # print the Markdown post
  relposts show 1.0 --json        # {"release", "name", "content"}`,
		Args: cobra.ExactArgs(1),
		RunE: runShow,
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)

	s, log, err := openSite(cmd)
	if log != nil {
		defer log.Sync() //nolint:errcheck // stderr sync is not actionable
	}
	if err != nil {
		return fail(printer, err)
	}

	p, err := s.Render(args[0])
	if err != nil {
		return fail(printer, err)
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"release": p.Release,
			"name":    p.Name,
			"content": p.Content,
		})
	}
	printer.Print(p.Content)
	return nil
}
