package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/thuchi/internal/model"
)

// AppendFeedback stores a teaching example and assigns its ID and CreatedAt.
func (s *SQLiteStorage) AppendFeedback(ctx context.Context, example *model.TeachingExample) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateFeedback(example); err != nil {
		return err
	}

	createdAt := dbTime(time.Now())
	category := strings.TrimSpace(example.Category)
	description := strings.TrimSpace(example.Description)

	var id int64
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO feedback (user_id, direction, category, description, created_at)
			VALUES (?, ?, ?, ?, ?)
		`, example.UserID, string(example.Direction), category, description, createdAt)
		if err != nil {
			return fmt.Errorf("failed to insert feedback: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read feedback id: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	example.ID = id
	example.CreatedAt = createdAt
	example.Category = category
	example.Description = description
	return nil
}

// ListFeedback returns every teaching example for direction, oldest first.
func (s *SQLiteStorage) ListFeedback(ctx context.Context, direction model.Direction) ([]model.TeachingExample, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if !direction.IsValid() {
		return nil, fmt.Errorf("%w: direction %q", ErrInvalidFeedback, direction)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, direction, category, description, created_at
		FROM feedback
		WHERE direction = ?
		ORDER BY id ASC
	`, string(direction))
	if err != nil {
		return nil, classifyError(fmt.Errorf("failed to query feedback: %w", err))
	}
	defer func() { _ = rows.Close() }()

	var examples []model.TeachingExample
	for rows.Next() {
		var ex model.TeachingExample
		var dir string
		if err := rows.Scan(&ex.ID, &ex.UserID, &dir, &ex.Category, &ex.Description, &ex.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		ex.Direction = model.Direction(dir)
		examples = append(examples, ex)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feedback: %w", err)
	}

	return examples, nil
}
