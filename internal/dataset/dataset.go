// Package dataset provides the per-release input schema and the YAML loader
// for the bug, mail and snapshot datasets.
package dataset

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Sentinel errors for dataset failures. Callers match them with errors.Is.
var (
	// ErrMissingDataset is returned when the mandatory mail dataset is absent or unreadable.
	ErrMissingDataset = errors.New("missing dataset")
	// ErrMalformedDocument is returned when a dataset does not parse into the expected shape.
	ErrMalformedDocument = errors.New("malformed document")
)

// Status is the issue-tracker status of a bug.
type Status string

// Known bug statuses. Only StatusResolved changes rendering.
const (
	StatusNew        Status = "NEW"
	StatusOpen       Status = "OPEN"
	StatusConfirmed  Status = "CONFIRMED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusReopened   Status = "REOPENED"
	StatusResolved   Status = "RESOLVED"
)

// Bug is one issue-tracker item attached to a release.
type Bug struct {
	ID      int    `yaml:"id"`
	Summary string `yaml:"summary"`
	Status  Status `yaml:"status"`
}

// Thread is a mailing-list discussion.
// Messages[0] is the thread root.
type Thread struct {
	Summary        string   `yaml:"summary"`
	Messages       []string `yaml:"messages"`
	ReferenceCount int      `yaml:"reference_count"`
}

// MailRelease holds the mailing-list activity for one release.
// ReferenceCount is computed upstream and is never derived from Threads.
type MailRelease struct {
	Threads        []Thread `yaml:"threads"`
	ReferenceCount int      `yaml:"reference_count"`
	ThreadCount    int      `yaml:"thread_count"`
	Announcement   string   `yaml:"announcement"`
}

// BugDataset maps a release key to its bugs.
type BugDataset map[string][]Bug

// MailDataset maps a release key to its mail activity.
type MailDataset map[string]MailRelease

// SnapshotDataset maps a release key to its snapshot.
type SnapshotDataset map[string]*SnapshotRelease

// Datasets bundles the three inputs. Only Mail is mandatory.
type Datasets struct {
	Bugs     BugDataset
	Mail     MailDataset
	Snapshot SnapshotDataset
}

// Releases returns the release keys to render, sorted ascending.
// Only the mail dataset contributes keys.
func (d *Datasets) Releases() []string {
	return slices.Sorted(maps.Keys(d.Mail))
}

// BugsFor returns the bugs for a release, or nil when there are none.
func (d *Datasets) BugsFor(release string) []Bug {
	return d.Bugs[release]
}

// SnapshotFor returns the snapshot for a release and whether one exists.
// A release listed with a null value has an empty snapshot.
func (d *Datasets) SnapshotFor(release string) (*SnapshotRelease, bool) {
	snap, ok := d.Snapshot[release]
	if !ok {
		return nil, false
	}
	if snap == nil {
		return &SnapshotRelease{}, true
	}
	return snap, true
}

// ValidationError is returned when a record is missing required fields.
// It wraps ErrMalformedDocument.
type ValidationError struct {
	Document string
	Release  string
	Fields   []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: release %s: missing or invalid fields: %s",
		e.Document, e.Release, strings.Join(e.Fields, ", "))
}

// Unwrap makes errors.Is(err, ErrMalformedDocument) succeed.
func (e *ValidationError) Unwrap() error {
	return ErrMalformedDocument
}

// Validate checks that every bug in the dataset carries id, summary and status.
func (b BugDataset) Validate() error {
	for _, release := range slices.Sorted(maps.Keys(b)) {
		bugs := b[release]
		var invalid []string
		for i, bug := range bugs {
			if bug.ID <= 0 {
				invalid = append(invalid, fmt.Sprintf("[%d].id", i))
			}
			if bug.Summary == "" {
				invalid = append(invalid, fmt.Sprintf("[%d].summary", i))
			}
			if bug.Status == "" {
				invalid = append(invalid, fmt.Sprintf("[%d].status", i))
			}
		}
		if len(invalid) > 0 {
			return &ValidationError{Document: bugFile, Release: release, Fields: invalid}
		}
	}
	return nil
}

// Validate checks announcements, thread summaries, message lists and counts.
func (m MailDataset) Validate() error {
	for _, release := range slices.Sorted(maps.Keys(m)) {
		if invalid := m[release].validate(); len(invalid) > 0 {
			return &ValidationError{Document: mailFile, Release: release, Fields: invalid}
		}
	}
	return nil
}

func (m MailRelease) validate() []string {
	var invalid []string
	if m.Announcement == "" {
		invalid = append(invalid, "announcement")
	}
	if m.ReferenceCount < 0 {
		invalid = append(invalid, "reference_count")
	}
	if m.ThreadCount < 0 {
		invalid = append(invalid, "thread_count")
	}
	for i, thread := range m.Threads {
		if thread.Summary == "" {
			invalid = append(invalid, fmt.Sprintf("threads[%d].summary", i))
		}
		if len(thread.Messages) == 0 {
			invalid = append(invalid, fmt.Sprintf("threads[%d].messages", i))
		}
		if thread.ReferenceCount < 0 {
			invalid = append(invalid, fmt.Sprintf("threads[%d].reference_count", i))
		}
	}
	return invalid
}
