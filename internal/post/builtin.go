package post

import (
	"embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed templates/*.md
var builtinFS embed.FS

// builtinContent returns the content of a built-in template by name.
func builtinContent(name string) (string, error) {
	path := "templates/" + name + ".md"
	data, err := builtinFS.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading builtin template %s: %w", path, err)
	}
	return string(data), nil
}

// builtinNames returns the names of all built-in templates, sorted.
func builtinNames() []string {
	dirEntries, err := builtinFS.ReadDir("templates")
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range dirEntries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".md"))
	}
	sort.Strings(names)
	return names
}
