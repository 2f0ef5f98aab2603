package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/relposts/internal/post"
	"github.com/gorewood/relposts/internal/site"
)

// newTemplatesCmd creates the templates command.
func newTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List available post templates",
		Long: `List post templates and where they come from.

Resolution order for a template name:
  1. <posts dir>/.template.md       (site)
  2. <config dir>/templates/<name>.md (global)
  3. built-in

A --template value containing a path separator or ending in .md is read
as a file instead.`,
		Args: cobra.NoArgs,
		RunE: runTemplates,
	}
}

func runTemplates(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)

	cfg, err := loadSettings(cmd)
	if err != nil {
		return fail(printer, err)
	}
	loc := site.Locations(cfg)
	infos := post.ListTemplates(loc)

	active, err := post.LoadTemplate(cfg.Template, loc)
	if err != nil {
		return fail(printer, err)
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"templates": infos,
			"active":    map[string]string{"name": active.Name, "source": active.Source},
		})
	}

	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		note := ""
		if info.ShadowedBy != "" {
			note = "shadowed by " + info.ShadowedBy
		}
		rows = append(rows, []string{info.Name, info.Source, info.Path, note})
	}
	printer.Table([]string{"NAME", "SOURCE", "PATH", "NOTE"}, rows)
	printer.Section("Active")
	printer.KeyValue(active.Source, active.Name)
	return nil
}
