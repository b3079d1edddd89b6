// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/thuchi/internal/model"
)

// TransactionFilter bounds a ledger query. Nil bounds are open.
type TransactionFilter struct {
	Start *time.Time
	End   *time.Time
}

// TransactionStore is the append-only ledger.
type TransactionStore interface {
	// AppendTransaction stores txn and sets its ID.
	AppendTransaction(ctx context.Context, txn *model.Transaction) error
	ListTransactions(ctx context.Context, userID int64, filter TransactionFilter) ([]model.Transaction, error)
}

// FeedbackStore is the append-only log of teaching examples.
type FeedbackStore interface {
	// AppendFeedback stores example and sets its ID and CreatedAt.
	AppendFeedback(ctx context.Context, example *model.TeachingExample) error
	// ListFeedback returns every example for direction in insertion order.
	ListFeedback(ctx context.Context, direction model.Direction) ([]model.TeachingExample, error)
}

// SnapshotStore keeps one opaque classifier blob per direction.
type SnapshotStore interface {
	// LoadSnapshot returns common.ErrNotFound when no snapshot exists.
	LoadSnapshot(ctx context.Context, direction model.Direction) ([]byte, error)
	SaveSnapshot(ctx context.Context, direction model.Direction, data []byte) error
	DeleteSnapshot(ctx context.Context, direction model.Direction) error
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	TransactionStore
	FeedbackStore
	SnapshotStore

	Migrate(ctx context.Context) error
	Close() error
}
