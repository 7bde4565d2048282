// Package images implements the image storage root: a directory of files
// addressed by stored name, with put/delete/exists semantics. Reports
// reference files by name only; whether the file is actually present is
// checked at read time, never cached.
package images

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store is a directory-rooted image file store.
type Store struct {
	root string
}

// NewStore opens the image root, creating the directory if needed.
func NewStore(root string) (*Store, error) {
	if root == "" {
		return nil, fmt.Errorf("image root must not be empty")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating image root: %w", err)
	}
	return &Store{root: root}, nil
}

// NewName derives a stored file name for an upload. The prefix is a random
// token, so concurrent uploads can never collide; the sanitized original
// basename is kept as a suffix so files stay recognizable on disk.
func (s *Store) NewName(original string) string {
	base := filepath.Base(strings.TrimSpace(original))
	if base == "." || base == string(filepath.Separator) || base == "" {
		base = "upload"
	}
	return uuid.NewString() + "_" + base
}

// Put writes the file under the given stored name.
func (s *Store) Put(name string, r io.Reader) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating image file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("writing image file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("closing image file: %w", err)
	}
	return nil
}

// Delete removes the file under the given stored name. A missing file is not
// an error.
func (s *Store) Delete(name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting image file: %w", err)
	}
	return nil
}

// Exists reports whether a file with the given stored name is present. An
// empty name (report without a photo) is never present.
func (s *Store) Exists(name string) bool {
	if name == "" {
		return false
	}
	path, err := s.path(name)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// FilePath returns the on-disk path for a stored name, for serving the file.
func (s *Store) FilePath(name string) (string, error) {
	return s.path(name)
}

// path resolves a stored name inside the root, rejecting traversal attempts.
func (s *Store) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("invalid image name %q", name)
	}
	return filepath.Join(s.root, name), nil
}
