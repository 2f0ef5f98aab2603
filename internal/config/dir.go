// Package config resolves relposts settings from the config directory,
// an optional YAML file and RELPOSTS_* environment variables.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "relposts"

// Dir returns the relposts configuration directory.
//
// Resolution:
//   - $RELPOSTS_CONFIG_HOME if set
//   - $XDG_CONFIG_HOME/relposts if set (on any platform)
//   - %AppData%/relposts on Windows
//   - ~/.config/relposts elsewhere
//
// Returns "" when no home directory can be determined.
func Dir() string {
	if dir := os.Getenv("RELPOSTS_CONFIG_HOME"); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appName)
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// TemplatesDir returns the directory holding user templates, or "" when
// the config directory is unknown.
func TemplatesDir() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "templates")
}

// EnvFile returns the path of the env file kept in the config directory.
func EnvFile() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "env")
}
