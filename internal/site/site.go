// Package site opens a Jekyll site for post generation: it loads the
// datasets, resolves the post template and prepares a post.Builder.
package site

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/gorewood/relposts/internal/config"
	"github.com/gorewood/relposts/internal/dataset"
	"github.com/gorewood/relposts/internal/post"
)

// Site is an opened site ready for rendering.
type Site struct {
	Config   config.Config
	Data     *dataset.Datasets
	Template *post.Template
	Builder  *post.Builder
}

// Summary describes one release for listings.
type Summary struct {
	Release  string `json:"release"`
	Bugs     int    `json:"bugs"`
	MailRefs int    `json:"mail_refs"`
	Threads  int    `json:"threads"`
	Snapshot bool   `json:"snapshot"`
}

// Open loads everything a render needs. Nothing is written.
func Open(cfg config.Config, log *zap.Logger) (*Site, error) {
	links, err := cfg.Resolver()
	if err != nil {
		return nil, err
	}

	data, err := dataset.Load(cfg.Data())
	if err != nil {
		return nil, err
	}

	tmpl, err := post.LoadTemplate(cfg.Template, Locations(cfg))
	if err != nil {
		return nil, err
	}

	return &Site{
		Config:   cfg,
		Data:     data,
		Template: tmpl,
		Builder:  post.NewBuilder(tmpl, links, log),
	}, nil
}

// Locations returns where templates are looked up for cfg.
func Locations(cfg config.Config) post.Locations {
	return post.Locations{PostsDir: cfg.Posts(), GlobalDir: config.TemplatesDir()}
}

// Summaries lists every release in order.
func (s *Site) Summaries() []Summary {
	releases := s.Data.Releases()
	summaries := make([]Summary, 0, len(releases))
	for _, release := range releases {
		mail := s.Data.Mail[release]
		_, hasSnapshot := s.Data.SnapshotFor(release)
		summaries = append(summaries, Summary{
			Release:  release,
			Bugs:     len(s.Data.BugsFor(release)),
			MailRefs: mail.ReferenceCount,
			Threads:  mail.ThreadCount,
			Snapshot: hasSnapshot,
		})
	}
	return summaries
}

// Render builds one release post without writing it.
func (s *Site) Render(release string) (*post.Post, error) {
	return s.Builder.Build(s.Data, release)
}

// Generate writes every post into the posts directory, creating it if needed.
// Returns the written paths, including those written before a failure.
func (s *Site) Generate() ([]string, error) {
	dir := s.Config.Posts()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating %s: %v", post.ErrFileWrite, dir, err)
	}
	return s.Builder.WriteAll(s.Data, dir)
}
