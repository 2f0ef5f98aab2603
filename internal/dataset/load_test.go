package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

const testMail = `
20190415:
  announcement: 2019-04/msg00300.html
  reference_count: 7
  thread_count: 2
  threads:
    - summary: kernel regression
      messages: [2019-04/msg00100.html, 2019-04/msg00101.html]
      reference_count: 5
    - summary: mesa update
      messages: [2019-04/msg00200.html]
      reference_count: 2
"1.0":
  announcement: m0
  reference_count: 0
  thread_count: 0
  threads: []
`

func TestLoad_AllDatasets(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "mail.yaml", testMail)
	writeFile(t, dir, "bug.yaml", `
20190415:
  - id: 1132641
    summary: kernel panics on boot
    status: RESOLVED
`)
	writeFile(t, dir, "snapshot.yaml", `
20190415:
  disk_base: 1234
  binary_interest:
    kernel-default: 5.0.7
    Mesa: 19.0.2
  binary_interest_changed: [Mesa]
`)

	data, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got, want := data.Releases(), []string{"1.0", "20190415"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Releases() = %v, want %v", got, want)
	}

	mail := data.Mail["20190415"]
	if mail.ReferenceCount != 7 || mail.ThreadCount != 2 || len(mail.Threads) != 2 {
		t.Errorf("mail release = %+v", mail)
	}
	if mail.Threads[0].Messages[1] != "2019-04/msg00101.html" {
		t.Errorf("Messages[1] = %q", mail.Threads[0].Messages[1])
	}

	bugs := data.BugsFor("20190415")
	if len(bugs) != 1 || bugs[0].ID != 1132641 || bugs[0].Status != StatusResolved {
		t.Errorf("BugsFor() = %+v", bugs)
	}
	if bugs := data.BugsFor("1.0"); len(bugs) != 0 {
		t.Errorf("BugsFor(1.0) = %+v, want empty", bugs)
	}

	snap, ok := data.SnapshotFor("20190415")
	if !ok {
		t.Fatal("SnapshotFor() found no snapshot")
	}
	if got, want := snap.BinaryInterest.keys(), []string{"kernel-default", "Mesa"}; !reflect.DeepEqual(got, want) {
		t.Errorf("BinaryInterest keys = %v, want %v", got, want)
	}
	if _, ok := data.SnapshotFor("1.0"); ok {
		t.Error("SnapshotFor(1.0) should be absent")
	}
}

func TestLoad_OptionalDatasetsAbsent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "mail.yaml", testMail)

	data, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(data.Bugs) != 0 {
		t.Errorf("Bugs = %v, want empty", data.Bugs)
	}
	if len(data.Snapshot) != 0 {
		t.Errorf("Snapshot = %v, want empty", data.Snapshot)
	}
}

func TestLoad_MissingMail(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bug.yaml", "{}\n")

	_, err := Load(dir)
	if !errors.Is(err, ErrMissingDataset) {
		t.Fatalf("Load() error = %v, want ErrMissingDataset", err)
	}
}

func TestLoad_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		file  string
		body  string
		field string
	}{
		{name: "mail not a mapping", file: "mail.yaml", body: "- a\n- b\n"},
		{name: "invalid yaml", file: "mail.yaml", body: "a: [b\n"},
		{name: "thread without messages", file: "mail.yaml", body: `
"1.0":
  announcement: m0
  threads:
    - summary: empty
      messages: []
`, field: "threads[0].messages"},
		{name: "missing announcement", file: "mail.yaml", body: `
"1.0":
  reference_count: 1
`, field: "announcement"},
		{name: "bug missing status", file: "bug.yaml", body: `
"1.0":
  - id: 1
    summary: no status
`, field: "[0].status"},
		{name: "bug id not a number", file: "bug.yaml", body: `
"1.0":
  - id: abc
    summary: bad
    status: OPEN
`},
		{name: "binary_interest not a mapping", file: "snapshot.yaml", body: `
"1.0":
  binary_interest: [kernel]
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.file != "mail.yaml" {
				writeFile(t, dir, "mail.yaml", "\"1.0\":\n  announcement: m0\n")
			}
			writeFile(t, dir, tt.file, tt.body)

			_, err := Load(dir)
			if !errors.Is(err, ErrMalformedDocument) {
				t.Fatalf("Load() error = %v, want ErrMalformedDocument", err)
			}
			if tt.field == "" {
				return
			}
			var valErr *ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("error %v is not a ValidationError", err)
			}
			if !reflect.DeepEqual(valErr.Fields, []string{tt.field}) {
				t.Errorf("Fields = %v, want [%s]", valErr.Fields, tt.field)
			}
		})
	}
}

func TestLoad_EmptyMailDocument(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "mail.yaml", "")

	data, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(data.Releases()) != 0 {
		t.Errorf("Releases() = %v, want none", data.Releases())
	}
}

func TestLoad_NullSnapshotEntry(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "mail.yaml", testMail)
	writeFile(t, dir, "snapshot.yaml", "20190415: ~\n")

	data, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	snap, ok := data.SnapshotFor("20190415")
	if !ok || snap == nil {
		t.Fatalf("SnapshotFor() = %v, %v, want an empty snapshot", snap, ok)
	}
	if len(snap.Fields) != 0 || len(snap.BinaryInterest) != 0 {
		t.Errorf("snapshot = %+v, want empty", snap)
	}
	if _, ok := data.SnapshotFor("1.0"); ok {
		t.Error("SnapshotFor(1.0) should be absent")
	}
}
