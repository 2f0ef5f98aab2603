package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/gorewood/relposts/internal/resolve"
)

// ErrInvalidConfig is returned for unreadable settings: a bad YAML file, an
// unknown key, or a URL template missing its placeholders.
var ErrInvalidConfig = errors.New("invalid config")

// FileName is the config file looked up in Dir.
const FileName = "config.yaml"

// Environment variables that override file settings.
const (
	EnvOutputDir   = "RELPOSTS_OUTPUT_DIR"
	EnvDataDir     = "RELPOSTS_DATA_DIR"
	EnvPostsDir    = "RELPOSTS_POSTS_DIR"
	EnvTemplate    = "RELPOSTS_TEMPLATE"
	EnvBugURL      = "RELPOSTS_BUG_URL"
	EnvMailURL     = "RELPOSTS_MAIL_URL"
	EnvSnapshotURL = "RELPOSTS_SNAPSHOT_URL"
)

// URLs are the link templates used for post links.
type URLs struct {
	Bug      string `yaml:"bug"`
	Mail     string `yaml:"mail"`
	Snapshot string `yaml:"snapshot"`
}

// Config holds resolved relposts settings.
// Empty DataDir and PostsDir fall back to directories under OutputDir.
type Config struct {
	OutputDir string `yaml:"output_dir"`
	DataDir   string `yaml:"data_dir"`
	PostsDir  string `yaml:"posts_dir"`
	Template  string `yaml:"template"`
	URLs      URLs   `yaml:"urls"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		OutputDir: ".",
		URLs: URLs{
			Bug:      resolve.DefaultBugURL,
			Mail:     resolve.DefaultMailURL,
			Snapshot: resolve.DefaultSnapshotURL,
		},
	}
}

// Load reads the config file at path over Default.
// An empty path means <Dir>/config.yaml, which may be absent.
// An explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		dir := Dir()
		if dir == "" {
			return cfg, nil
		}
		path = filepath.Join(dir, FileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("%w: reading %s: %w", ErrInvalidConfig, path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides settings from RELPOSTS_* variables looked up with getenv.
// Empty values are ignored.
func (c *Config) ApplyEnv(getenv func(string) string) {
	overrides := []struct {
		key   string
		field *string
	}{
		{EnvOutputDir, &c.OutputDir},
		{EnvDataDir, &c.DataDir},
		{EnvPostsDir, &c.PostsDir},
		{EnvTemplate, &c.Template},
		{EnvBugURL, &c.URLs.Bug},
		{EnvMailURL, &c.URLs.Mail},
		{EnvSnapshotURL, &c.URLs.Snapshot},
	}
	for _, o := range overrides {
		if v := getenv(o.key); v != "" {
			*o.field = v
		}
	}
}

// Data returns the dataset directory.
func (c Config) Data() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	return filepath.Join(c.outputDir(), "data")
}

// Posts returns the directory posts are written to.
func (c Config) Posts() string {
	if c.PostsDir != "" {
		return c.PostsDir
	}
	return filepath.Join(c.outputDir(), "_posts")
}

// Resolver builds the URL resolver from the configured templates.
func (c Config) Resolver() (*resolve.Resolver, error) {
	r, err := resolve.New(c.URLs.Bug, c.URLs.Mail, c.URLs.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return r, nil
}

func (c Config) outputDir() string {
	if c.OutputDir == "" {
		return "."
	}
	return c.OutputDir
}
