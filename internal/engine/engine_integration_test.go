package engine_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/thuchi/internal/model"
	"github.com/Veraticus/thuchi/internal/report"
	"github.com/Veraticus/thuchi/internal/service"
	"github.com/Veraticus/thuchi/internal/testutil"
	"github.com/Veraticus/thuchi/internal/testutil/ledger"
)

var integrationNow = time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)

func TestEngineIntegration_RecordScenarios(t *testing.T) {
	te := testutil.SetupTestEngine(t, nil, integrationNow)
	ctx := context.Background()

	tests := []struct {
		input string
		want  model.Receipt
	}{
		{
			input: "50000 ăn trưa",
			want:  model.Receipt{Direction: model.DirectionExpense, Amount: 50000, Description: "ăn trưa", Category: "Ăn uống"},
		},
		{
			input: "thu 10000000 lương",
			want:  model.Receipt{Direction: model.DirectionIncome, Amount: 10000000, Description: "lương", Category: "Lương"},
		},
		{
			input: "Lương 10000000 +",
			want:  model.Receipt{Direction: model.DirectionIncome, Amount: 10000000, Description: "lương", Category: "Lương"},
		},
		{
			input: "ăn trưa 20 50000",
			want:  model.Receipt{Direction: model.DirectionExpense, Amount: 50000, Description: "ăn trưa", Category: "Ăn uống"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			receipt, err := te.Engine.Record(ctx, 1, tt.input)
			require.NoError(t, err)
			assert.Positive(t, receipt.TransactionID)
			receipt.TransactionID = 0
			assert.Equal(t, tt.want, receipt)
		})
	}

	stored, err := te.Storage.ListTransactions(ctx, 1, service.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, stored, len(tests))
	for _, txn := range stored {
		assert.True(t, txn.Timestamp.Equal(integrationNow))
	}
}

func TestEngineIntegration_RejectedMessagesAreNotStored(t *testing.T) {
	te := testutil.SetupTestEngine(t, nil, integrationNow)
	ctx := context.Background()

	for _, input := range []string{"ăn trưa", "thu 5000", "0 cà phê"} {
		_, err := te.Engine.Record(ctx, 1, input)
		assert.Error(t, err, input)
	}

	stored, err := te.Storage.ListTransactions(ctx, 1, service.TransactionFilter{})
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestEngineIntegration_TeachThenRetrain(t *testing.T) {
	te := testutil.SetupTestEngine(t, nil, integrationNow)
	ctx := context.Background()

	before, err := te.Engine.Record(ctx, 1, "xúc xích nướng 15000")
	require.NoError(t, err)
	require.NotEqual(t, "Ăn vặt", before.Category)

	example, err := te.Engine.TeachText(ctx, 1, "chi Ăn vặt | xúc xích nướng")
	require.NoError(t, err)
	assert.Equal(t, "Ăn vặt", example.Category)
	assert.Equal(t, model.DirectionExpense, example.Direction)

	unchanged, err := te.Engine.Record(ctx, 1, "xúc xích nướng 15000")
	require.NoError(t, err)
	assert.Equal(t, before.Category, unchanged.Category)

	directions, err := te.Engine.Retrain(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, model.Directions, directions)

	after, err := te.Engine.Record(ctx, 1, "xúc xích nướng 15000")
	require.NoError(t, err)
	assert.Equal(t, "Ăn vặt", after.Category)

	// Earlier rows keep the category they were stored with.
	stored, err := te.Storage.ListTransactions(ctx, 1, service.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, stored, 3)
	assert.Equal(t, before.Category, stored[0].Category)
}

func TestEngineIntegration_Reports(t *testing.T) {
	db := testutil.SetupTestDBWithBuilder(t, func(b ledger.Builder) ledger.Builder {
		return b.WithFixture(ledger.FixtureMonth)
	})
	te := testutil.SetupTestEngine(t, db, integrationNow)
	ctx := context.Background()

	month, err := te.Engine.Report(ctx, 1, model.PeriodMonth)
	require.NoError(t, err)
	assert.Equal(t, int64(10500000), month.Income.Total)
	assert.Equal(t, int64(150000), month.Expense.Total)
	assert.Equal(t, int64(10350000), month.Balance)
	assert.Equal(t, []report.CategoryTotal{
		{Category: "Ăn uống", Amount: 80000, Count: 2},
		{Category: "Đi lại", Amount: 70000, Count: 1},
	}, month.Expense.Categories)

	week, err := te.Engine.Report(ctx, 1, model.PeriodWeek)
	require.NoError(t, err)
	assert.True(t, week.Empty())
	assert.Zero(t, week.Balance)

	all, err := te.Engine.Report(ctx, 1, model.PeriodAll)
	require.NoError(t, err)
	assert.Equal(t, int64(1650000), all.Expense.Total)
	assert.Equal(t, "Hóa đơn", all.Expense.Categories[0].Category)

	other, err := te.Engine.Report(ctx, 2, model.PeriodAll)
	require.NoError(t, err)
	assert.Equal(t, int64(999000), other.Expense.Total)
	assert.Zero(t, other.Income.Total)

	// A transaction recorded now shows up in this week's report.
	_, err = te.Engine.Record(ctx, 1, "50000 ăn trưa")
	require.NoError(t, err)
	week, err = te.Engine.Report(ctx, 1, model.PeriodWeek)
	require.NoError(t, err)
	assert.Equal(t, int64(50000), week.Expense.Total)
}

func TestEngineIntegration_ConcurrentRecords(t *testing.T) {
	te := testutil.SetupTestEngine(t, nil, integrationNow)
	ctx := context.Background()

	const users = 5
	const perUser = 8

	var wg sync.WaitGroup
	for u := 1; u <= users; u++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			for i := 0; i < perUser; i++ {
				_, err := te.Engine.Record(ctx, userID, "1000 cà phê")
				assert.NoError(t, err)
			}
		}(int64(u))
	}
	wg.Wait()

	for u := 1; u <= users; u++ {
		r, err := te.Engine.Report(ctx, int64(u), model.PeriodAll)
		require.NoError(t, err)
		assert.Equal(t, int64(perUser*1000), r.Expense.Total)
	}
}
