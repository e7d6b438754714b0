package filestore

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"
)

// Store persists uploaded attachments on local disk under a single root
// directory. Files are addressed by paths relative to that root; the
// background pipeline needs real filesystem paths because compression shells
// out to an external process.
type Store struct {
	root string
}

func New(root string, subdirs ...string) (*Store, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve uploads root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads root: %w", err)
	}
	for _, dir := range subdirs {
		if err := os.MkdirAll(filepath.Join(abs, dir), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create uploads subdir %q: %w", dir, err)
		}
	}
	return &Store{root: abs}, nil
}

// Save writes the content of r into the given subdirectory under a unique
// timestamp-random name and returns the path relative to the store root.
func (s *Store) Save(dir string, origName string, r io.Reader) (string, error) {
	name := fmt.Sprintf("%d-%d%s",
		time.Now().UnixMilli(), rand.Intn(1_000_000_000), filepath.Ext(origName))
	rel := filepath.Join(dir, name)

	if err := os.MkdirAll(filepath.Join(s.root, dir), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory %q: %w", dir, err)
	}

	f, err := os.Create(filepath.Join(s.root, rel))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return filepath.ToSlash(rel), nil
}

func (s *Store) Exists(rel string) bool {
	_, err := os.Stat(s.Abs(rel))
	return err == nil
}

func (s *Store) Delete(rel string) error {
	if err := os.Remove(s.Abs(rel)); err != nil {
		return fmt.Errorf("failed to delete %q: %w", rel, err)
	}
	return nil
}

func (s *Store) Open(rel string) (*os.File, error) {
	return os.Open(s.Abs(rel))
}

// Abs maps a store-relative path to an absolute filesystem path.
func (s *Store) Abs(rel string) string {
	return filepath.Join(s.root, filepath.FromSlash(rel))
}

// Rel maps an absolute path inside the store back to a store-relative path.
func (s *Store) Rel(abs string) (string, error) {
	rel, err := filepath.Rel(s.root, abs)
	if err != nil {
		return "", fmt.Errorf("path %q is outside the store: %w", abs, err)
	}
	return filepath.ToSlash(rel), nil
}

func (s *Store) Root() string {
	return s.root
}
