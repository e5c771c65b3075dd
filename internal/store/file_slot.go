package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileSlot persists a slot as a single JSON file under a data directory.
// Writes go through a temp file plus rename so a crashed writer never
// leaves a half-written snapshot behind.
type FileSlot struct {
	path string
}

// NewFileSlot ensures dir exists and returns a slot backed by dir/<name>.json.
func NewFileSlot(dir, name string) (*FileSlot, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir %q: %w", dir, err)
	}
	return &FileSlot{path: filepath.Join(dir, name+".json")}, nil
}

// Read returns the file contents, or (nil, nil) when the file does not exist.
func (s *FileSlot) Read(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read slot %q: %w", s.path, err)
	}
	return data, nil
}

// Write atomically replaces the file contents.
func (s *FileSlot) Write(_ context.Context, data []byte) error {
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write slot temp %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace slot %q: %w", s.path, err)
	}
	return nil
}

// Delete removes the file; a missing file is treated as success.
func (s *FileSlot) Delete(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete slot %q: %w", s.path, err)
	}
	return nil
}
