package dataset

import (
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestSnapshotRelease_UnmarshalYAML(t *testing.T) {
	raw := `
disk_base: 1234
binary_interest:
  zypper: 1.14.27
  kernel-default: 5.0.7
  Mesa: 19.0.2
binary_interest_changed:
  - kernel-default
binary_interest_note: dropped
package_count: 13004
tags: [stable, large]
`
	var snap SnapshotRelease
	if err := yaml.Unmarshal([]byte(raw), &snap); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	wantFields := []Field{
		{Name: "disk_base", Value: "1234"},
		{Name: "package_count", Value: "13004"},
		{Name: "tags", Value: "[stable, large]"},
	}
	if !reflect.DeepEqual(snap.Fields, wantFields) {
		t.Errorf("Fields = %+v, want %+v", snap.Fields, wantFields)
	}

	wantPairs := Pairs{
		{Key: "zypper", Value: "1.14.27"},
		{Key: "kernel-default", Value: "5.0.7"},
		{Key: "Mesa", Value: "19.0.2"},
	}
	if !reflect.DeepEqual(snap.BinaryInterest, wantPairs) {
		t.Errorf("BinaryInterest = %+v, want %+v", snap.BinaryInterest, wantPairs)
	}

	changed := snap.Changed()
	if !changed["kernel-default"] || len(changed) != 1 {
		t.Errorf("Changed() = %v, want {kernel-default}", changed)
	}
}

func TestSnapshotRelease_NoBinaryInterest(t *testing.T) {
	var snap SnapshotRelease
	if err := yaml.Unmarshal([]byte("disk_base: 1\n"), &snap); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(snap.BinaryInterest) != 0 || len(snap.BinaryInterestChanged) != 0 {
		t.Errorf("snapshot = %+v, want no binary interest", snap)
	}
	if len(snap.Changed()) != 0 {
		t.Errorf("Changed() = %v, want empty", snap.Changed())
	}
}

func TestPairs_PreservesOrder(t *testing.T) {
	var pairs Pairs
	if err := yaml.Unmarshal([]byte("c: 3\na: 1\nb: 2\n"), &pairs); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got, want := pairs.keys(), []string{"c", "a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("keys() = %v, want %v", got, want)
	}
}

func TestPairs_RejectsNestedValues(t *testing.T) {
	var pairs Pairs
	if err := yaml.Unmarshal([]byte("a:\n  b: 1\n"), &pairs); err == nil {
		t.Error("expected error for nested mapping value")
	}
}

func TestSnapshotRelease_MergeKeys(t *testing.T) {
	raw := `
base: &base
  disk_base: 1
  arch: x86_64
release:
  <<: *base
  disk_base: 2
  binary_interest:
    <<: {zypper: 1.0}
    kernel: 5.0
`
	var doc struct {
		Release SnapshotRelease `yaml:"release"`
	}
	if err := yaml.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	wantFields := []Field{
		{Name: "arch", Value: "x86_64"},
		{Name: "disk_base", Value: "2"},
	}
	if !reflect.DeepEqual(doc.Release.Fields, wantFields) {
		t.Errorf("Fields = %+v, want %+v", doc.Release.Fields, wantFields)
	}
	if got, want := doc.Release.BinaryInterest.keys(), []string{"zypper", "kernel"}; !reflect.DeepEqual(got, want) {
		t.Errorf("BinaryInterest keys = %v, want %v", got, want)
	}
}

func TestSnapshotRelease_NullValuesRenderEmpty(t *testing.T) {
	raw := `
disk: ~
note: null
binary_interest:
  kernel: ~
binary_interest_changed: ~
`
	var snap SnapshotRelease
	if err := yaml.Unmarshal([]byte(raw), &snap); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	wantFields := []Field{{Name: "disk", Value: ""}, {Name: "note", Value: ""}}
	if !reflect.DeepEqual(snap.Fields, wantFields) {
		t.Errorf("Fields = %+v, want %+v", snap.Fields, wantFields)
	}
	if want := (Pairs{{Key: "kernel", Value: ""}}); !reflect.DeepEqual(snap.BinaryInterest, want) {
		t.Errorf("BinaryInterest = %+v, want %+v", snap.BinaryInterest, want)
	}
	if snap.BinaryInterestChanged != nil {
		t.Errorf("BinaryInterestChanged = %v, want nil", snap.BinaryInterestChanged)
	}
}
