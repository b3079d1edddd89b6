package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// CategoryOther is the category used when no classifier is available.
const CategoryOther = "Other"

// ErrInvalidTransaction is returned when a transaction breaks an invariant.
var ErrInvalidTransaction = errors.New("invalid transaction")

// Transaction is a single finalized ledger entry. It is never modified once stored.
type Transaction struct {
	Timestamp   time.Time
	Direction   Direction
	Category    string
	Description string
	ID          int64
	UserID      int64
	Amount      int64
}

// Validate checks the ledger invariants.
func (t *Transaction) Validate() error {
	if t.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive, got %d", ErrInvalidTransaction, t.Amount)
	}
	if !t.Direction.IsValid() {
		return fmt.Errorf("%w: direction %q", ErrInvalidTransaction, t.Direction)
	}
	if strings.TrimSpace(t.Category) == "" {
		return fmt.Errorf("%w: missing category", ErrInvalidTransaction)
	}
	if strings.TrimSpace(t.Description) == "" {
		return fmt.Errorf("%w: missing description", ErrInvalidTransaction)
	}
	if t.Timestamp.IsZero() {
		return fmt.Errorf("%w: missing timestamp", ErrInvalidTransaction)
	}
	return nil
}

// Receipt is what the transport shows back after a transaction is recorded.
type Receipt struct {
	Direction     Direction
	Description   string
	Category      string
	TransactionID int64
	Amount        int64
}

// ReceiptFor builds the confirmation payload for a stored transaction.
func ReceiptFor(t Transaction) Receipt {
	return Receipt{
		TransactionID: t.ID,
		Direction:     t.Direction,
		Amount:        t.Amount,
		Description:   t.Description,
		Category:      t.Category,
	}
}
