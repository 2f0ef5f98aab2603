// Package post assembles release posts from the loaded datasets and writes
// them into a Jekyll posts directory.
package post

import (
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/gorewood/relposts/internal/dataset"
	"github.com/gorewood/relposts/internal/markdown"
	"github.com/gorewood/relposts/internal/resolve"
)

// Sentinel errors for post assembly. Callers match them with errors.Is.
var (
	// ErrMissingTemplateField is returned when a template references a field Fields does not have.
	ErrMissingTemplateField = errors.New("missing template field")
	// ErrFileWrite is returned when a post cannot be persisted.
	ErrFileWrite = errors.New("file write failure")
	// ErrUnknownRelease is returned when a release is not in the mail dataset.
	ErrUnknownRelease = errors.New("unknown release")
	// ErrTemplateNotFound is returned when no template matches a name or path.
	ErrTemplateNotFound = errors.New("template not found")
)

// Placeholder text for empty sections.
const (
	noBugs  = "no relevant bugs"
	noMails = "no relevant mails"
)

// Snapshot artifacts linked from every post that has a snapshot.
const (
	uniqueListFile = "rpm.unique.list"
	listFile       = "rpm.list"
)

// Fields are the values substituted into a post template.
type Fields struct {
	Release        string
	Variables      string
	Bug            string
	BugCount       int
	Mail           string
	MailCount      int
	BinaryInterest string
	Links          string
}

// Links resolves the URLs a post links to.
type Links interface {
	BugURL(id int) string
	MailURL(id string) string
	SnapshotURL(release, file string) string
}

// nameFunc derives a post file name from a release.
type nameFunc func(release string) (string, error)

// Post is a rendered release post.
type Post struct {
	Release string
	Name    string
	Content string
	Fields  Fields
}

// Builder assembles posts. It holds no per-release state.
type Builder struct {
	template *Template
	links    Links
	name     nameFunc
	log      *zap.Logger
}

// NewBuilder creates a Builder.
// If links is nil, resolve.Default is used. If log is nil, logging is disabled.
func NewBuilder(tmpl *Template, links Links, log *zap.Logger) *Builder {
	if links == nil {
		links = resolve.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{template: tmpl, links: links, name: resolve.PostName, log: log}
}

// withNameFunc replaces the release-to-filename function.
func (b *Builder) withNameFunc(fn nameFunc) *Builder {
	b.name = fn
	return b
}

// Build renders the post for one release.
func (b *Builder) Build(data *dataset.Datasets, release string) (*Post, error) {
	mail, ok := data.Mail[release]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRelease, release)
	}
	snapshot, hasSnapshot := data.SnapshotFor(release)
	bugs := data.BugsFor(release)

	b.log.Debug("building post",
		zap.String("release", release),
		zap.Int("bugs", len(bugs)),
		zap.Int("threads", len(mail.Threads)),
		zap.Bool("snapshot", hasSnapshot))

	fields := b.fields(release, bugs, mail, snapshot)

	content, err := b.template.Render(fields)
	if err != nil {
		return nil, fmt.Errorf("release %s: %w", release, err)
	}

	name, err := b.name(release)
	if err != nil {
		return nil, fmt.Errorf("release %s: post name: %w", release, err)
	}

	return &Post{Release: release, Name: name, Content: content, Fields: fields}, nil
}

// fields computes the template fields for a release. snapshot may be nil.
func (b *Builder) fields(
	release string, bugs []dataset.Bug, mail dataset.MailRelease, snapshot *dataset.SnapshotRelease,
) Fields {
	bugCount, bugMarkdown := markdown.BugSection(bugs, b.links.BugURL)
	mailRefs, mailMarkdown := markdown.MailSection(mail, b.links.MailURL)

	vars := map[string]string{
		"release_available":            strconv.FormatBool(snapshot != nil),
		"release_reference_count":      strconv.Itoa(bugCount + mailRefs),
		"release_reference_count_mail": strconv.Itoa(mailRefs),
		"release_score":                "0",
		"release_stability_level":      "unknown",
		"release_version":              release,
	}

	links := []string{
		markdown.Link("mail announcement", b.links.MailURL(mail.Announcement)),
	}

	binaryInterest := ""
	if snapshot != nil {
		for _, field := range snapshot.Fields {
			vars["release_"+field.Name] = field.Value
		}
		binaryInterest = markdown.Table([2]string{"Binary", "Version"}, snapshot.BinaryInterest, snapshot.Changed())
		links = append(links,
			markdown.Link("binary unique list", b.links.SnapshotURL(release, uniqueListFile)),
			markdown.Link("binary list", b.links.SnapshotURL(release, listFile)),
		)
	}

	if bugMarkdown == "" {
		bugMarkdown = noBugs
	}
	if mailMarkdown == "" {
		mailMarkdown = noMails
	}

	return Fields{
		Release:        release,
		Variables:      markdown.Variables(vars),
		Bug:            bugMarkdown,
		BugCount:       bugCount,
		Mail:           mailMarkdown,
		MailCount:      mail.ThreadCount,
		BinaryInterest: binaryInterest,
		Links:          markdown.List(links),
	}
}

// WriteAll renders and writes every release into dir, one at a time.
// Existing files are overwritten. The first failure stops the batch; posts
// already written are left in place. Returns the written paths.
func (b *Builder) WriteAll(data *dataset.Datasets, dir string) ([]string, error) {
	var written []string
	for _, release := range data.Releases() {
		post, err := b.Build(data, release)
		if err != nil {
			return written, err
		}

		path, err := Write(dir, post)
		if err != nil {
			return written, err
		}
		b.log.Info("wrote post", zap.String("release", release), zap.String("path", path))
		written = append(written, path)
	}
	return written, nil
}
