package storage

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/thuchi/internal/common"
	"github.com/Veraticus/thuchi/internal/model"
	"github.com/Veraticus/thuchi/internal/service"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func testTransaction(userID int64, ts time.Time, dir model.Direction, amount int64, category string) *model.Transaction {
	return &model.Transaction{
		UserID:      userID,
		Timestamp:   ts,
		Direction:   dir,
		Amount:      amount,
		Category:    category,
		Description: "mô tả " + category,
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.Migrate(ctx))

	version, err := store.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("  ")
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestAppendTransaction_AssignsIncreasingIDs(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()
	now := time.Now()

	first := testTransaction(1, now, model.DirectionExpense, 50000, "Ăn uống")
	second := testTransaction(1, now, model.DirectionIncome, 100, "Lương")

	require.NoError(t, store.AppendTransaction(ctx, first))
	require.NoError(t, store.AppendTransaction(ctx, second))

	assert.Positive(t, first.ID)
	assert.Greater(t, second.ID, first.ID)
	assert.Equal(t, time.UTC, first.Timestamp.Location())
	assert.Zero(t, first.Timestamp.Nanosecond())
}

func TestAppendTransaction_RejectsInvalid(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()
	now := time.Now()

	tests := []struct {
		txn  *model.Transaction
		name string
	}{
		{name: "nil", txn: nil},
		{name: "zero amount", txn: testTransaction(1, now, model.DirectionExpense, 0, "Ăn uống")},
		{name: "bad direction", txn: testTransaction(1, now, model.Direction("sideways"), 10, "Ăn uống")},
		{name: "empty category", txn: testTransaction(1, now, model.DirectionExpense, 10, " ")},
		{name: "empty description", txn: &model.Transaction{UserID: 1, Timestamp: now, Direction: model.DirectionExpense, Amount: 10, Category: "X"}},
		{name: "zero timestamp", txn: testTransaction(1, time.Time{}, model.DirectionExpense, 10, "X")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, store.AppendTransaction(ctx, tt.txn))
		})
	}

	all, err := store.ListTransactions(ctx, 1, service.TransactionFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestListTransactions_FiltersByUserAndRange(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	for _, txn := range []*model.Transaction{
		testTransaction(1, base.Add(-48*time.Hour), model.DirectionExpense, 10, "A"),
		testTransaction(1, base, model.DirectionExpense, 20, "B"),
		testTransaction(1, base.Add(2*time.Hour), model.DirectionIncome, 30, "C"),
		testTransaction(2, base, model.DirectionExpense, 40, "D"),
	} {
		require.NoError(t, store.AppendTransaction(ctx, txn))
	}

	all, err := store.ListTransactions(ctx, 1, service.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "A", all[0].Category)
	assert.True(t, all[1].Timestamp.Equal(base))

	start := base
	end := base.Add(2 * time.Hour)
	ranged, err := store.ListTransactions(ctx, 1, service.TransactionFilter{Start: &start, End: &end})
	require.NoError(t, err)
	require.Len(t, ranged, 2)
	assert.Equal(t, "B", ranged[0].Category)
	assert.Equal(t, "C", ranged[1].Category)
	assert.Equal(t, model.DirectionIncome, ranged[1].Direction)

	other, err := store.ListTransactions(ctx, 2, service.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, other, 1)
	assert.Equal(t, int64(40), other[0].Amount)

	_, err = store.ListTransactions(ctx, 1, service.TransactionFilter{Start: &end, End: &start})
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestListTransactions_LocalTimeBounds(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()
	loc := time.FixedZone("ICT", 7*60*60)

	// 23:30 local on the 9th is 16:30 UTC on the 9th.
	local := time.Date(2025, 3, 9, 23, 30, 0, 0, loc)
	require.NoError(t, store.AppendTransaction(ctx, testTransaction(1, local, model.DirectionExpense, 10, "A")))

	start := time.Date(2025, 3, 10, 0, 0, 0, 0, loc)
	end := start.Add(24 * time.Hour)
	got, err := store.ListTransactions(ctx, 1, service.TransactionFilter{Start: &start, End: &end})
	require.NoError(t, err)
	assert.Empty(t, got)

	start = time.Date(2025, 3, 9, 0, 0, 0, 0, loc)
	got, err = store.ListTransactions(ctx, 1, service.TransactionFilter{Start: &start, End: &end})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestAppendTransaction_ConcurrentAppendsAreNotLost(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	const writers = 8
	const perWriter = 10

	var wg sync.WaitGroup
	errs := make(chan error, writers*perWriter)
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				errs <- store.AppendTransaction(ctx, testTransaction(userID, time.Now(), model.DirectionExpense, int64(i+1), "X"))
			}
		}(int64(w + 1))
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	seen := make(map[int64]bool)
	for w := 0; w < writers; w++ {
		txns, err := store.ListTransactions(ctx, int64(w+1), service.TransactionFilter{})
		require.NoError(t, err)
		assert.Len(t, txns, perWriter)
		for _, txn := range txns {
			assert.False(t, seen[txn.ID], "duplicate id %d", txn.ID)
			seen[txn.ID] = true
		}
	}
	assert.Len(t, seen, writers*perWriter)
}

func TestFeedback_AppendAndList(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	first := &model.TeachingExample{UserID: 7, Direction: model.DirectionExpense, Category: " Ăn vặt ", Description: " xúc xích "}
	second := &model.TeachingExample{UserID: 8, Direction: model.DirectionExpense, Category: "Đi lại", Description: "vé tàu"}
	income := &model.TeachingExample{UserID: 7, Direction: model.DirectionIncome, Category: "Quà tặng", Description: "bà cho"}

	require.NoError(t, store.AppendFeedback(ctx, first))
	require.NoError(t, store.AppendFeedback(ctx, second))
	require.NoError(t, store.AppendFeedback(ctx, income))

	assert.Positive(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())
	assert.Equal(t, "Ăn vặt", first.Category)

	expenses, err := store.ListFeedback(ctx, model.DirectionExpense)
	require.NoError(t, err)
	require.Len(t, expenses, 2)
	assert.Equal(t, "xúc xích", expenses[0].Description)
	assert.Equal(t, int64(7), expenses[0].UserID)
	assert.Equal(t, "vé tàu", expenses[1].Description)

	incomes, err := store.ListFeedback(ctx, model.DirectionIncome)
	require.NoError(t, err)
	require.Len(t, incomes, 1)
	assert.Equal(t, model.DirectionIncome, incomes[0].Direction)
}

func TestFeedback_RejectsInvalid(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	assert.Error(t, store.AppendFeedback(ctx, nil))
	assert.ErrorIs(t, store.AppendFeedback(ctx, &model.TeachingExample{Direction: "x", Category: "a", Description: "b"}), ErrInvalidFeedback)
	assert.ErrorIs(t, store.AppendFeedback(ctx, &model.TeachingExample{Direction: model.DirectionIncome, Description: "b"}), ErrInvalidFeedback)
	assert.ErrorIs(t, store.AppendFeedback(ctx, &model.TeachingExample{Direction: model.DirectionIncome, Category: "a"}), ErrInvalidFeedback)

	_, err := store.ListFeedback(ctx, model.Direction("x"))
	assert.Error(t, err)
}

func TestSnapshots_SaveLoadDelete(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	_, err := store.LoadSnapshot(ctx, model.DirectionExpense)
	assert.ErrorIs(t, err, common.ErrNotFound)

	require.NoError(t, store.SaveSnapshot(ctx, model.DirectionExpense, []byte("v1")))
	require.NoError(t, store.SaveSnapshot(ctx, model.DirectionExpense, []byte("v2")))
	require.NoError(t, store.SaveSnapshot(ctx, model.DirectionIncome, []byte("inc")))

	data, err := store.LoadSnapshot(ctx, model.DirectionExpense)
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), data)

	require.NoError(t, store.DeleteSnapshot(ctx, model.DirectionExpense))
	require.NoError(t, store.DeleteSnapshot(ctx, model.DirectionExpense))

	_, err = store.LoadSnapshot(ctx, model.DirectionExpense)
	assert.ErrorIs(t, err, common.ErrNotFound)

	data, err = store.LoadSnapshot(ctx, model.DirectionIncome)
	require.NoError(t, err)
	assert.Equal(t, []byte("inc"), data)

	assert.Error(t, store.SaveSnapshot(ctx, model.DirectionIncome, nil))
}

func TestCountTransactions(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.AppendTransaction(ctx, testTransaction(3, time.Now(), model.DirectionExpense, 5, "A")))
	require.NoError(t, store.AppendTransaction(ctx, testTransaction(3, time.Now(), model.DirectionIncome, 5, "B")))

	count, err := store.CountTransactions(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

var _ service.Storage = (*SQLiteStorage)(nil)
