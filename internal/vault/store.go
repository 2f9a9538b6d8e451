// Package vault persists notes and audio files. The core only ever
// reads and writes text or bytes at a path; the directory layout
// underneath is this package's business.
package vault

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store abstracts file persistence so workflows can be tested without
// touching the disk.
type Store interface {
	// Read returns the text content at path.
	Read(path string) (string, error)

	// Write stores text at path, creating or overwriting.
	Write(path string, content string) error

	// WriteBinary stores raw bytes at path, creating or overwriting.
	WriteBinary(path string, data []byte) error

	// Exists reports whether path holds a file.
	Exists(path string) bool
}

// DirStore is a Store rooted at a directory on disk.
type DirStore struct {
	root string
}

// NewDirStore creates a store rooted at root. The directory is created
// on first write, not here.
func NewDirStore(root string) *DirStore {
	return &DirStore{root: root}
}

// Root returns the store's root directory.
func (s *DirStore) Root() string {
	return s.root
}

// Read returns the text content at path.
func (s *DirStore) Read(path string) (string, error) {
	data, err := os.ReadFile(s.abs(path))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// Write stores text at path, creating parent directories as needed.
func (s *DirStore) Write(path string, content string) error {
	return s.WriteBinary(path, []byte(content))
}

// WriteBinary stores raw bytes at path, creating parent directories as
// needed.
func (s *DirStore) WriteBinary(path string, data []byte) error {
	full := s.abs(path)
	if dir := filepath.Dir(full); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(full, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Exists reports whether path holds a file.
func (s *DirStore) Exists(path string) bool {
	info, err := os.Stat(s.abs(path))
	return err == nil && !info.IsDir()
}

func (s *DirStore) abs(path string) string {
	return filepath.Join(s.root, path)
}
