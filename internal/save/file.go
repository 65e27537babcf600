package save

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps one JSON file per slot under a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at dir. The directory is created on
// the first save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) path(slot string) string {
	return filepath.Join(s.dir, slot+".json")
}

// Save writes rec to the slot's file, replacing it atomically.
func (s *FileStore) Save(ctx context.Context, slot string, rec *Record) error {
	if err := validateSlot(slot); err != nil {
		return err
	}
	data, err := encode(rec)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create save directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, slot+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create save file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write save file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write save file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(slot)); err != nil {
		return fmt.Errorf("failed to replace save file: %w", err)
	}
	return nil
}

// Load reads the slot's file. A missing file yields ErrNotFound.
func (s *FileStore) Load(ctx context.Context, slot string) (*Record, error) {
	if err := validateSlot(slot); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(slot))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read save file: %w", err)
	}
	return decode(data)
}

// Delete removes the slot's file. Deleting a missing slot is not an error.
func (s *FileStore) Delete(ctx context.Context, slot string) error {
	if err := validateSlot(slot); err != nil {
		return err
	}
	if err := os.Remove(s.path(slot)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete save file: %w", err)
	}
	return nil
}

var _ Store = (*FileStore)(nil)
