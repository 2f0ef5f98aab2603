// Package resolve maps bug ids, mail message ids and snapshot artifacts to
// URLs, and turns release versions into date-like filename parts.
package resolve

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// URL template placeholders.
const (
	PlaceholderID      = "{id}"
	PlaceholderRelease = "{release}"
	PlaceholderFile    = "{file}"
)

// Default URL templates for the openSUSE Tumbleweed infrastructure.
const (
	DefaultBugURL      = "https://bugzilla.opensuse.org/show_bug.cgi?id={id}"
	DefaultMailURL     = "https://lists.opensuse.org/opensuse-factory/{id}"
	DefaultSnapshotURL = "http://download.tumbleweed.boombatower.com/{release}/{file}"
)

// Resolver builds URLs by substituting placeholders into configured templates.
// The zero value is not usable; see New and Default.
type Resolver struct {
	bug      string
	mail     string
	snapshot string
}

// New returns a Resolver for the given templates.
// The bug and mail templates must contain {id}; the snapshot template must
// contain {release} and {file}.
func New(bug, mail, snapshot string) (*Resolver, error) {
	var problems []string
	if !strings.Contains(bug, PlaceholderID) {
		problems = append(problems, "bug URL must contain "+PlaceholderID)
	}
	if !strings.Contains(mail, PlaceholderID) {
		problems = append(problems, "mail URL must contain "+PlaceholderID)
	}
	if !strings.Contains(snapshot, PlaceholderRelease) || !strings.Contains(snapshot, PlaceholderFile) {
		problems = append(problems, "snapshot URL must contain "+PlaceholderRelease+" and "+PlaceholderFile)
	}
	if len(problems) > 0 {
		return nil, errors.New(strings.Join(problems, "; "))
	}
	return &Resolver{bug: bug, mail: mail, snapshot: snapshot}, nil
}

// Default returns a Resolver using the default templates.
func Default() *Resolver {
	return &Resolver{bug: DefaultBugURL, mail: DefaultMailURL, snapshot: DefaultSnapshotURL}
}

// BugURL returns the bug-tracker URL for a bug id.
func (r *Resolver) BugURL(id int) string {
	return strings.ReplaceAll(r.bug, PlaceholderID, strconv.Itoa(id))
}

// MailURL returns the mailing-list archive URL for a message id.
func (r *Resolver) MailURL(id string) string {
	return strings.ReplaceAll(r.mail, PlaceholderID, id)
}

// SnapshotURL returns the URL of a snapshot artifact for a release.
func (r *Resolver) SnapshotURL(release, file string) string {
	return strings.NewReplacer(PlaceholderRelease, release, PlaceholderFile, file).Replace(r.snapshot)
}

// snapshotLayout is the layout of an eight-digit snapshot version.
const snapshotLayout = "20060102"

// ReleaseParts splits a release version into ordered date-like parts.
// Snapshot versions (YYYYMMDD) yield year, month and day; other versions are
// split on '.', '-' and '_'. Path separators are rejected.
func ReleaseParts(release string) ([]string, error) {
	if release == "" {
		return nil, errors.New("empty release version")
	}
	if strings.ContainsAny(release, `/\`) {
		return nil, fmt.Errorf("release %q contains a path separator", release)
	}

	if len(release) == len(snapshotLayout) && isDigits(release) {
		if _, err := time.Parse(snapshotLayout, release); err != nil {
			return nil, fmt.Errorf("release %q is not a valid snapshot date: %w", release, err)
		}
		return []string{release[:4], release[4:6], release[6:]}, nil
	}

	parts := strings.FieldsFunc(release, func(r rune) bool {
		return r == '.' || r == '-' || r == '_'
	})
	if len(parts) == 0 || strings.Count(release, ".")+strings.Count(release, "-")+strings.Count(release, "_") != len(parts)-1 {
		return nil, fmt.Errorf("release %q has an empty version part", release)
	}
	return parts, nil
}

// PostName returns the file name of the post for a release.
func PostName(release string) (string, error) {
	parts, err := ReleaseParts(release)
	if err != nil {
		return "", err
	}
	return strings.Join(parts, "-") + "-release.md", nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
