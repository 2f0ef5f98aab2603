package post

import (
	"fmt"
	"os"
	"path/filepath"
)

// postMode is the permission of written posts; the site generator reads them.
const postMode = 0o644

// Write persists a post into dir, replacing any existing file of the same name.
// The content is written to a temp file in dir and renamed into place.
func Write(dir string, post *Post) (string, error) {
	path := filepath.Join(dir, post.Name)
	if err := atomicWrite(path, []byte(post.Content)); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrFileWrite, path, err)
	}
	return path, nil
}

// atomicWrite writes data to path using write-to-temp-then-rename.
// The temp file is created in the same directory as path.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, ".tmp-*.md")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write data: %w", err)
	}
	if err := tmpFile.Chmod(postMode); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
