// Package store implements address book persistence to the filesystem.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/smileynet/rolodex/internal/book"
)

// FileStore persists the whole address book as a JSON file.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore that saves the book at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the file the store reads and writes.
func (s *FileStore) Path() string {
	return s.path
}

// Save writes the full book state, creating parent directories as needed.
func (s *FileStore) Save(b *book.AddressBook) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store: creating directory: %w", err)
	}

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("store: marshaling: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("store: writing %s: %w", s.path, err)
	}
	return nil
}

// Load reads the persisted book. A missing file is not an error: a fresh
// empty book is returned so first runs start clean.
func (s *FileStore) Load() (*book.AddressBook, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return book.New(), nil
		}
		return nil, fmt.Errorf("store: reading %s: %w", s.path, err)
	}

	b := book.New()
	if err := json.Unmarshal(data, b); err != nil {
		return nil, fmt.Errorf("store: parsing %s: %w", s.path, err)
	}
	return b, nil
}
