package main

import (
	"strconv"

	"github.com/spf13/cobra"
)

// newListCmd creates the list command.
func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List releases in the datasets",
		Long: `List every release in the mail dataset with its bug count, mail
reference count, thread count and whether a snapshot is available.`,
		Args: cobra.NoArgs,
		RunE: runList,
	}
}

func runList(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)

	s, log, err := openSite(cmd)
	if log != nil {
		defer log.Sync() //nolint:errcheck // stderr sync is not actionable
	}
	if err != nil {
		return fail(printer, err)
	}

	summaries := s.Summaries()
	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{"count": len(summaries), "releases": summaries})
	}

	if len(summaries) == 0 {
		printer.Println("No releases found")
		return nil
	}

	rows := make([][]string, 0, len(summaries))
	for _, summary := range summaries {
		snapshot := "no"
		if summary.Snapshot {
			snapshot = "yes"
		}
		rows = append(rows, []string{
			summary.Release,
			strconv.Itoa(summary.Bugs),
			strconv.Itoa(summary.MailRefs),
			strconv.Itoa(summary.Threads),
			snapshot,
		})
	}
	printer.Table([]string{"RELEASE", "BUGS", "MAIL REFS", "THREADS", "SNAPSHOT"}, rows)
	return nil
}
