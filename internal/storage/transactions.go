package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Veraticus/thuchi/internal/model"
	"github.com/Veraticus/thuchi/internal/service"
)

// AppendTransaction inserts txn and assigns its ID. Transactions are never updated.
func (s *SQLiteStorage) AppendTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}

	ts := dbTime(txn.Timestamp)

	var id int64
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO transactions (user_id, timestamp, direction, amount, category, description)
			VALUES (?, ?, ?, ?, ?, ?)
		`, txn.UserID, ts, string(txn.Direction), txn.Amount, txn.Category, txn.Description)
		if err != nil {
			return fmt.Errorf("failed to insert transaction: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read transaction id: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	txn.ID = id
	txn.Timestamp = ts
	return nil
}

// ListTransactions returns a user's transactions within filter, oldest first.
func (s *SQLiteStorage) ListTransactions(ctx context.Context, userID int64, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	return s.listTransactions(ctx, s.db, userID, filter)
}

func (s *SQLiteStorage) listTransactions(ctx context.Context, q queryable, userID int64, filter service.TransactionFilter) ([]model.Transaction, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT id, user_id, timestamp, direction, amount, category, description
		FROM transactions
		WHERE user_id = ?`)
	args := []any{userID}

	if filter.Start != nil {
		sb.WriteString(" AND timestamp >= ?")
		args = append(args, dbTime(*filter.Start))
	}
	if filter.End != nil {
		sb.WriteString(" AND timestamp <= ?")
		args = append(args, dbTime(*filter.End))
	}
	sb.WriteString(" ORDER BY timestamp ASC, id ASC")

	rows, err := q.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, classifyError(fmt.Errorf("failed to query transactions: %w", err))
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		var txn model.Transaction
		var direction string
		if err := rows.Scan(
			&txn.ID,
			&txn.UserID,
			&txn.Timestamp,
			&direction,
			&txn.Amount,
			&txn.Category,
			&txn.Description,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txn.Direction = model.Direction(direction)
		transactions = append(transactions, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}

// CountTransactions returns the number of transactions stored for userID.
func (s *SQLiteStorage) CountTransactions(ctx context.Context, userID int64) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM transactions WHERE user_id = ?", userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}
