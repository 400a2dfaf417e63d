// Package file implements storage.KeyValue as one file per key inside a
// directory. Writes go to a temporary file in the same directory which is
// then renamed over the target, so a crash never leaves a half-written
// snapshot behind.
package file

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/kjk/common/atomicfile"

	"github.com/aanand-mishra/student-roster/internal/storage"
)

var _ storage.KeyValue = (*Dir)(nil)

// Dir is a directory of <key>.json files.
type Dir struct {
	path string
}

// New creates the directory if needed.
func New(path string) (*Dir, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("file.New: mkdir: %w", err)
	}
	return &Dir{path: path}, nil
}

// Open adapts New to storage.Opener.
func Open(path string) (storage.KeyValue, error) {
	return New(path)
}

// keyPath escapes key so it can never leave the directory.
func (d *Dir) keyPath(key string) string {
	return filepath.Join(d.path, url.PathEscape(key)+".json")
}

// GetItem reads <key>.json. A missing file is reported as absent, not as
// an error.
func (d *Dir) GetItem(key string) (string, bool, error) {
	b, err := os.ReadFile(d.keyPath(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("GetItem: read: %w", err)
	}
	return string(b), true, nil
}

// SetItem replaces <key>.json atomically: readers see either the old
// snapshot or the new one.
func (d *Dir) SetItem(key, value string) error {
	f, err := atomicfile.New(d.keyPath(key))
	if err != nil {
		return fmt.Errorf("SetItem: create temp: %w", err)
	}
	// no-op once Close has renamed the file
	defer f.RemoveIfNotClosed()

	if _, err := f.WriteString(value); err != nil {
		return fmt.Errorf("SetItem: write: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("SetItem: commit: %w", err)
	}
	return nil
}

// RemoveItem deletes <key>.json. Removing a missing key is not an error.
func (d *Dir) RemoveItem(key string) error {
	err := os.Remove(d.keyPath(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("RemoveItem: %w", err)
	}
	return nil
}

// Close is a no-op; every call opens and closes its own file.
func (d *Dir) Close() error {
	return nil
}
