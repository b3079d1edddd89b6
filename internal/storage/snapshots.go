package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Veraticus/thuchi/internal/common"
	"github.com/Veraticus/thuchi/internal/model"
)

// LoadSnapshot returns the stored classifier blob for direction, or
// common.ErrNotFound.
func (s *SQLiteStorage) LoadSnapshot(ctx context.Context, direction model.Direction) ([]byte, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var data []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT data FROM model_snapshots WHERE direction = ?", string(direction)).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return data, nil
}

// SaveSnapshot stores data as the snapshot for direction, replacing any previous one.
func (s *SQLiteStorage) SaveSnapshot(ctx context.Context, direction model.Direction, data []byte) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if !direction.IsValid() {
		return fmt.Errorf("invalid direction %q", direction)
	}
	if len(data) == 0 {
		return fmt.Errorf("%w: snapshot data", ErrNilParameter)
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO model_snapshots (direction, data, created_at)
			VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(direction) DO UPDATE SET
				data = excluded.data,
				created_at = excluded.created_at
		`, string(direction), data)
		if err != nil {
			return fmt.Errorf("failed to save snapshot: %w", err)
		}
		return nil
	})
}

// DeleteSnapshot removes the snapshot for direction; a missing one is not an error.
func (s *SQLiteStorage) DeleteSnapshot(ctx context.Context, direction model.Direction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM model_snapshots WHERE direction = ?", string(direction)); err != nil {
			return fmt.Errorf("failed to delete snapshot: %w", err)
		}
		return nil
	})
}
