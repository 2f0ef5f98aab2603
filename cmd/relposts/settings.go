package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gorewood/relposts/internal/config"
	"github.com/gorewood/relposts/internal/dataset"
	"github.com/gorewood/relposts/internal/output"
	"github.com/gorewood/relposts/internal/post"
	"github.com/gorewood/relposts/internal/site"
)

// loadSettings layers the config file, RELPOSTS_* variables and flags,
// in increasing precedence.
func loadSettings(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	cfg.ApplyEnv(os.Getenv)

	if dir, _ := cmd.Flags().GetString("output-dir"); dir != "" {
		cfg.OutputDir = dir
		// An explicit site directory re-roots data and posts unless the
		// environment points them elsewhere.
		cfg.DataDir = os.Getenv(config.EnvDataDir)
		cfg.PostsDir = os.Getenv(config.EnvPostsDir)
	}
	if tmpl, _ := cmd.Flags().GetString("template"); tmpl != "" {
		cfg.Template = tmpl
	}
	return cfg, nil
}

// openSite resolves settings and opens the site with a fresh logger.
// The caller syncs the returned logger.
func openSite(cmd *cobra.Command) (*site.Site, *zap.Logger, error) {
	log, err := newLogger(cmd)
	if err != nil {
		return nil, nil, output.NewSystemErrorWithCause("setting up logger: "+err.Error(), err)
	}

	cfg, err := loadSettings(cmd)
	if err != nil {
		return nil, log, err
	}

	s, err := site.Open(cfg, log)
	if err != nil {
		return nil, log, err
	}
	return s, log, nil
}

// newPrinter returns a printer for cmd honoring --json.
func newPrinter(cmd *cobra.Command) *output.Printer {
	out := cmd.OutOrStdout()
	return output.NewPrinter(out, isJSONMode(cmd), output.IsTTY(out)).WithStderr(cmd.ErrOrStderr())
}

// classify maps domain errors to exit-coded errors, keeping the cause.
func classify(err error) *output.ExitError {
	var exitErr *output.ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}

	msg := err.Error()
	switch {
	case errors.Is(err, dataset.ErrMissingDataset),
		errors.Is(err, dataset.ErrMalformedDocument),
		errors.Is(err, post.ErrMissingTemplateField):
		return output.NewDataErrorWithCause(msg, err)
	case errors.Is(err, config.ErrInvalidConfig),
		errors.Is(err, post.ErrUnknownRelease),
		errors.Is(err, post.ErrTemplateNotFound):
		return output.NewUserErrorWithCause(msg, err)
	default:
		return output.NewSystemErrorWithCause(msg, err)
	}
}

// fail prints err and returns it classified, for use as a RunE result.
func fail(printer *output.Printer, err error) error {
	exitErr := classify(err)
	printer.Error(exitErr)
	return exitErr
}
