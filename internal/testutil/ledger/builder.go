package ledger

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Veraticus/thuchi/internal/model"
	"github.com/Veraticus/thuchi/internal/service"
)

// Builder provides a fluent interface for constructing a test ledger.
type Builder interface {
	// ForUser sets the owner of every entry added after it.
	ForUser(userID int64) Builder

	// At sets the timestamp of every entry added after it.
	At(ts time.Time) Builder

	// Expense adds an expense entry.
	Expense(category CategoryName, amount int64, description string) Builder

	// Income adds an income entry.
	Income(category CategoryName, amount int64, description string) Builder

	// Teach adds a teaching example.
	Teach(direction model.Direction, category CategoryName, description string) Builder

	// WithFixture adds every entry of a predefined fixture.
	WithFixture(fixture Fixture) Builder

	// Build appends the entries to the stores in the order they were added.
	Build(ctx context.Context, txns service.TransactionStore, feedback service.FeedbackStore) (Ledger, error)
}

// CategoryName represents a strongly-typed category name.
type CategoryName string

// String returns the string representation of the category name.
func (c CategoryName) String() string {
	return string(c)
}

// Category names shared with the seed corpus.
const (
	CategoryFood      CategoryName = "Ăn uống"
	CategoryTransport CategoryName = "Đi lại"
	CategoryShopping  CategoryName = "Mua sắm"
	CategoryBills     CategoryName = "Hóa đơn"
	CategoryFun       CategoryName = "Giải trí"
	CategorySalary    CategoryName = "Lương"
	CategoryBonus     CategoryName = "Thưởng"
	CategorySideJob   CategoryName = "Thu nhập phụ"
)

// Ledger is what a Builder stored.
type Ledger struct {
	Transactions []model.Transaction
	Feedback     []model.TeachingExample
}

// Total sums the stored transactions of direction.
func (l Ledger) Total(direction model.Direction) int64 {
	var total int64
	for _, txn := range l.Transactions {
		if txn.Direction == direction {
			total += txn.Amount
		}
	}
	return total
}

// ledgerBuilder implements the Builder interface.
type ledgerBuilder struct {
	t        *testing.T
	at       time.Time
	txns     []model.Transaction
	feedback []model.TeachingExample
	userID   int64
}

// NewBuilder creates a new ledger builder for the given test. Entries default
// to user 1 at the current time.
func NewBuilder(t *testing.T) Builder {
	t.Helper()
	return &ledgerBuilder{
		t:      t,
		userID: 1,
		at:     time.Now(),
	}
}

func (b *ledgerBuilder) ForUser(userID int64) Builder {
	b.userID = userID
	return b
}

func (b *ledgerBuilder) At(ts time.Time) Builder {
	b.at = ts
	return b
}

func (b *ledgerBuilder) add(direction model.Direction, category CategoryName, amount int64, description string) Builder {
	b.txns = append(b.txns, model.Transaction{
		UserID:      b.userID,
		Timestamp:   b.at,
		Direction:   direction,
		Amount:      amount,
		Category:    category.String(),
		Description: description,
	})
	return b
}

func (b *ledgerBuilder) Expense(category CategoryName, amount int64, description string) Builder {
	return b.add(model.DirectionExpense, category, amount, description)
}

func (b *ledgerBuilder) Income(category CategoryName, amount int64, description string) Builder {
	return b.add(model.DirectionIncome, category, amount, description)
}

func (b *ledgerBuilder) Teach(direction model.Direction, category CategoryName, description string) Builder {
	b.feedback = append(b.feedback, model.TeachingExample{
		UserID:      b.userID,
		Direction:   direction,
		Category:    category.String(),
		Description: description,
	})
	return b
}

func (b *ledgerBuilder) WithFixture(fixture Fixture) Builder {
	for _, e := range fixture.Entries() {
		b.ForUser(e.UserID).At(e.At)
		b.add(e.Direction, e.Category, e.Amount, e.Description)
	}
	return b
}

func (b *ledgerBuilder) Build(ctx context.Context, txns service.TransactionStore, feedback service.FeedbackStore) (Ledger, error) {
	b.t.Helper()

	var result Ledger
	for i := range b.txns {
		txn := b.txns[i]
		if err := txns.AppendTransaction(ctx, &txn); err != nil {
			return Ledger{}, fmt.Errorf("failed to seed transaction %q: %w", txn.Description, err)
		}
		result.Transactions = append(result.Transactions, txn)
	}

	for i := range b.feedback {
		example := b.feedback[i]
		if err := feedback.AppendFeedback(ctx, &example); err != nil {
			return Ledger{}, fmt.Errorf("failed to seed teaching example %q: %w", example.Description, err)
		}
		result.Feedback = append(result.Feedback, example)
	}

	return result, nil
}
