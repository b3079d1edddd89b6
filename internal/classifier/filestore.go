package classifier

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Veraticus/thuchi/internal/common"
	"github.com/Veraticus/thuchi/internal/model"
)

// FileSnapshotStore keeps one snapshot file per direction in a directory.
type FileSnapshotStore struct {
	dir string
}

// NewFileSnapshotStore creates the directory if needed.
func NewFileSnapshotStore(dir string) (*FileSnapshotStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty snapshot directory", common.ErrInvalidConfig)
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	return &FileSnapshotStore{dir: dir}, nil
}

func (f *FileSnapshotStore) path(direction model.Direction) (string, error) {
	if !direction.IsValid() {
		return "", fmt.Errorf("invalid direction %q", direction)
	}
	return filepath.Join(f.dir, string(direction)+".model"), nil
}

// LoadSnapshot returns common.ErrNotFound when no snapshot exists.
func (f *FileSnapshotStore) LoadSnapshot(_ context.Context, direction model.Direction) ([]byte, error) {
	path, err := f.path(direction)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path) //nolint:gosec // path is built from a validated direction
	if errors.Is(err, os.ErrNotExist) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return data, nil
}

// SaveSnapshot writes through a temp file and renames it into place, so a
// reader never sees a partial snapshot.
func (f *FileSnapshotStore) SaveSnapshot(_ context.Context, direction model.Direction, data []byte) error {
	path, err := f.path(direction)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.dir, string(direction)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close snapshot: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to move snapshot into place: %w", err)
	}
	return nil
}

// DeleteSnapshot removes the snapshot; a missing one is not an error.
func (f *FileSnapshotStore) DeleteSnapshot(_ context.Context, direction model.Direction) error {
	path, err := f.path(direction)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}
