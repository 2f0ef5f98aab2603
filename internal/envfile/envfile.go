// Package envfile reads KEY=VALUE files and applies them to the process
// environment without overriding variables that are already set.
package envfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Var is one assignment read from an env file.
type Var struct {
	Key   string
	Value string
}

// Parse reads assignments in file order. Blank lines, comments and lines
// without '=' are skipped. An optional "export " prefix and matching quotes
// around the value are removed.
func Parse(r io.Reader) ([]Var, error) {
	var vars []Var
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if v, ok := parseLine(line); ok {
			vars = append(vars, v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return vars, nil
}

// Load applies each file in order. A variable is only set when the
// environment does not already have it, so earlier files win over later
// ones. Missing files are skipped.
func Load(paths ...string) error {
	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := loadFile(path); err != nil {
			return err
		}
	}
	return nil
}

func loadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("opening env file %s: %w", path, err)
	}
	defer file.Close() //nolint:errcheck // read-only

	vars, err := Parse(file)
	if err != nil {
		return fmt.Errorf("reading env file %s: %w", path, err)
	}
	for _, v := range vars {
		if _, set := os.LookupEnv(v.Key); set {
			continue
		}
		if err := os.Setenv(v.Key, v.Value); err != nil {
			return fmt.Errorf("setting %s from %s: %w", v.Key, path, err)
		}
	}
	return nil
}

func parseLine(line string) (Var, bool) {
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return Var{}, false
	}
	key = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(key), "export "))
	if key == "" {
		return Var{}, false
	}
	return Var{Key: key, Value: unquote(strings.TrimSpace(value))}, true
}

func unquote(value string) string {
	if len(value) < 2 {
		return value
	}
	first, last := value[0], value[len(value)-1]
	if first == last && (first == '"' || first == '\'') {
		return value[1 : len(value)-1]
	}
	return value
}
