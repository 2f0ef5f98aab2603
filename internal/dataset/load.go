package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Dataset file names inside the data directory.
const (
	bugFile      = "bug.yaml"
	mailFile     = "mail.yaml"
	snapshotFile = "snapshot.yaml"
)

// Load reads bug.yaml, mail.yaml and snapshot.yaml from dir.
// The bug and snapshot files are optional and default to empty datasets.
// A missing or unreadable mail.yaml returns ErrMissingDataset; any document
// that fails to parse or validate returns ErrMalformedDocument.
func Load(dir string) (*Datasets, error) {
	data := &Datasets{
		Bugs:     BugDataset{},
		Mail:     MailDataset{},
		Snapshot: SnapshotDataset{},
	}

	found, err := readOptional(filepath.Join(dir, mailFile), &data.Mail)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s not found in %s", ErrMissingDataset, mailFile, dir)
	}
	if _, err := readOptional(filepath.Join(dir, bugFile), &data.Bugs); err != nil {
		return nil, err
	}
	if _, err := readOptional(filepath.Join(dir, snapshotFile), &data.Snapshot); err != nil {
		return nil, err
	}

	if err := data.Mail.Validate(); err != nil {
		return nil, err
	}
	if err := data.Bugs.Validate(); err != nil {
		return nil, err
	}
	return data, nil
}

// readOptional decodes the YAML file at path into out.
// Returns false without error when the file does not exist.
func readOptional(path string, out any) (bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		if filepath.Base(path) == mailFile {
			return false, fmt.Errorf("%w: reading %s: %v", ErrMissingDataset, path, err)
		}
		return false, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := Parse(raw, out); err != nil {
		return true, fmt.Errorf("%s: %w", path, err)
	}
	return true, nil
}

// Parse decodes a dataset document into out. An empty document leaves out untouched.
func Parse(raw []byte, out any) error {
	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if len(root.Content) == 0 {
		return nil
	}

	doc := resolveAlias(root.Content[0])
	if doc.Tag == "!!null" {
		return nil
	}
	if doc.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: line %d: document root must map release to data", ErrMalformedDocument, doc.Line)
	}
	if err := doc.Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	return nil
}
