// Package checkpoint persists the byte offset up to which the CDR log file
// has already been processed.
package checkpoint

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	defaultFileMode = 0644
	defaultDirMode  = 0755
)

// Store reads and writes a single non-negative byte offset bound to one
// checkpoint file. The store itself enforces nothing about monotonicity;
// callers only save offsets obtained from the file they just read.
type Store struct {
	path string
}

// NewStore creates a store for the checkpoint file at path.
func NewStore(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("checkpoint: path is empty")
	}
	return &Store{path: path}, nil
}

// Path returns the checkpoint file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the persisted offset. A missing file, unreadable content, or
// a negative value all yield offset 0 so a fresh or damaged checkpoint means
// "start from the beginning" rather than an error.
func (s *Store) Load() (int64, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return 0, false
	}
	text := strings.TrimSpace(string(data))
	offset, err := strconv.ParseInt(text, 10, 64)
	if err != nil || offset < 0 {
		return 0, false
	}
	return offset, true
}

// Save durably persists offset. The value is written to a sidecar temp file,
// synced, and renamed into place so a crash never leaves a torn checkpoint.
func (s *Store) Save(offset int64) error {
	if offset < 0 {
		return fmt.Errorf("checkpoint: negative offset %d", offset)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), defaultDirMode); err != nil {
		return fmt.Errorf("checkpoint: mkdir: %w", err)
	}

	tmp := s.path + ".tmp"
	payload := []byte(strconv.FormatInt(offset, 10) + "\n")
	if err := os.WriteFile(tmp, payload, defaultFileMode); err != nil {
		return fmt.Errorf("checkpoint: write tmp: %w", err)
	}

	f, err := os.OpenFile(tmp, os.O_RDWR, defaultFileMode)
	if err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("checkpoint: open tmp: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("checkpoint: sync tmp: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("checkpoint: close tmp: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("checkpoint: rename: %w", err)
	}
	return nil
}
