package markdown

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gorewood/relposts/internal/dataset"
)

// Link formats an inline link.
func Link(text, href string) string {
	return "[" + text + "](" + href + ")"
}

// Variables formats a variable map as "key: value" lines sorted by key.
func Variables(vars map[string]string) string {
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var builder strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&builder, "%s: %s\n", key, vars[key])
	}
	return strings.TrimSpace(builder.String())
}

// Table formats a two-column table. Rows keep the order of data; keys found
// in bold are wrapped in strong emphasis.
func Table(headings [2]string, data dataset.Pairs, bold map[string]bool) string {
	lines := make([]string, 0, len(data)+2)
	lines = append(lines, headings[0]+" | "+headings[1], "--- | ---")
	for _, row := range data {
		key := row.Key
		if bold[key] {
			key = "**" + key + "**"
		}
		lines = append(lines, key+" | "+row.Value)
	}
	return strings.Join(lines, "\n")
}

// List prefixes each item with a list marker and joins them with newlines.
func List(items []string) string {
	if len(items) == 0 {
		return ""
	}
	return "- " + strings.Join(items, "\n- ")
}
