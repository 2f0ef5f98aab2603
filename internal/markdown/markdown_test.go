package markdown

import (
	"sort"
	"strings"
	"testing"

	"github.com/gorewood/relposts/internal/dataset"
)

func TestLink(t *testing.T) {
	if got := Link("text", "https://example.org/x"); got != "[text](https://example.org/x)" {
		t.Errorf("Link() = %q", got)
	}
}

func TestVariables(t *testing.T) {
	vars := map[string]string{
		"release_version":         "20190415",
		"release_available":       "true",
		"release_score":           "0",
		"release_disk_base":       "1234",
		"release_reference_count": "12",
	}

	got := Variables(vars)
	want := strings.Join([]string{
		"release_available: true",
		"release_disk_base: 1234",
		"release_reference_count: 12",
		"release_score: 0",
		"release_version: 20190415",
	}, "\n")
	if got != want {
		t.Errorf("Variables() =\n%s\nwant\n%s", got, want)
	}

	lines := strings.Split(got, "\n")
	keys := make([]string, len(lines))
	for i, line := range lines {
		keys[i], _, _ = strings.Cut(line, ": ")
	}
	if !sort.StringsAreSorted(keys) {
		t.Errorf("keys not sorted: %v", keys)
	}

	for range 5 {
		if again := Variables(vars); again != got {
			t.Fatalf("Variables() not idempotent: %q != %q", again, got)
		}
	}
}

func TestVariables_Empty(t *testing.T) {
	if got := Variables(nil); got != "" {
		t.Errorf("Variables(nil) = %q, want empty", got)
	}
}

func TestTable(t *testing.T) {
	data := dataset.Pairs{
		{Key: "zypper", Value: "1.14.27"},
		{Key: "kernel-default", Value: "5.0.7"},
		{Key: "Mesa", Value: "19.0.2"},
	}
	bold := map[string]bool{"kernel-default": true, "not-in-data": true}

	got := Table([2]string{"Binary", "Version"}, data, bold)
	want := strings.Join([]string{
		"Binary | Version",
		"--- | ---",
		"zypper | 1.14.27",
		"**kernel-default** | 5.0.7",
		"Mesa | 19.0.2",
	}, "\n")
	if got != want {
		t.Errorf("Table() =\n%s\nwant\n%s", got, want)
	}
}

func TestTable_GeneralHeadings(t *testing.T) {
	got := Table([2]string{"Name", "Value"}, nil, nil)
	if got != "Name | Value\n--- | ---" {
		t.Errorf("Table() = %q", got)
	}
}

func TestList(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		want  string
	}{
		{"empty", nil, ""},
		{"one", []string{"a"}, "- a"},
		{"many", []string{"a", "b", "c"}, "- a\n- b\n- c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := List(tt.items); got != tt.want {
				t.Errorf("List() = %q, want %q", got, tt.want)
			}
		})
	}
}
