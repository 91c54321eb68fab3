package persistence

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash"
)

// FileExt is the extension of framed TEDS files.
const FileExt = ".bin"

// ErrFileChanged is returned when a file no longer matches its recorded
// fingerprint.
var ErrFileChanged = errors.New("file changed on disk")

// Fingerprint returns the content hash recorded for a TEDS file.
func Fingerprint(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// WriteFile writes framed TEDS data to path through a temporary file in the
// same directory, so readers never observe a partial file.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".teds-*"+FileExt)
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Chmod(name, 0644); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return err
	}
	return nil
}

// ReadFile reads a framed TEDS file.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	return data, nil
}

// Verify checks that the file at r.Path still has the recorded fingerprint.
func Verify(r RecentFile) error {
	data, err := os.ReadFile(r.Path)
	if err != nil {
		return err
	}
	if Fingerprint(data) != r.Fingerprint {
		return fmt.Errorf("%w: %s", ErrFileChanged, r.Path)
	}
	return nil
}
