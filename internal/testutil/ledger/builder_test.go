package ledger_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/thuchi/internal/model"
	"github.com/Veraticus/thuchi/internal/service"
	"github.com/Veraticus/thuchi/internal/storage"
	"github.com/Veraticus/thuchi/internal/testutil/ledger"
)

func newStore(t *testing.T) *storage.SQLiteStorage {
	t.Helper()
	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestBuilder_Build(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	at := time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)

	built, err := ledger.NewBuilder(t).
		ForUser(5).
		At(at).
		Expense(ledger.CategoryFood, 50000, "ăn trưa").
		Income(ledger.CategorySalary, 10000000, "lương").
		Teach(model.DirectionExpense, "Ăn vặt", "xúc xích").
		Build(ctx, store, store)
	require.NoError(t, err)

	require.Len(t, built.Transactions, 2)
	assert.Positive(t, built.Transactions[0].ID)
	assert.Equal(t, int64(50000), built.Total(model.DirectionExpense))
	assert.Equal(t, int64(10000000), built.Total(model.DirectionIncome))
	require.Len(t, built.Feedback, 1)
	assert.Positive(t, built.Feedback[0].ID)

	stored, err := store.ListTransactions(ctx, 5, service.TransactionFilter{})
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestBuilder_FixtureMonth(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	built, err := ledger.NewBuilder(t).WithFixture(ledger.FixtureMonth).Build(ctx, store, store)
	require.NoError(t, err)
	assert.Len(t, built.Transactions, len(ledger.FixtureMonth.Entries()))
	assert.Equal(t, "Month", ledger.FixtureMonth.Name())

	other, err := store.ListTransactions(ctx, 2, service.TransactionFilter{})
	require.NoError(t, err)
	assert.Len(t, other, 1)
}
