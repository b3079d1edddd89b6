// Package ledger provides test infrastructure for seeding transactions and
// teaching examples. It offers a fluent API so tests read as the ledger they
// set up.
//
// # Basic Usage
//
//	func TestMonthlyReport(t *testing.T) {
//		db := testutil.SetupTestDBWithBuilder(t, func(b ledger.Builder) ledger.Builder {
//			return b.
//				ForUser(1).
//				At(time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)).
//				Expense(ledger.CategoryFood, 50000, "ăn trưa").
//				Income(ledger.CategorySalary, 10000000, "lương")
//		})
//
//		// db.Transactions holds the stored rows with their IDs
//	}
//
// # Fixtures
//
// Fixtures provide consistent ledgers across related tests:
//
//	db := testutil.SetupTestDBWithBuilder(t, func(b ledger.Builder) ledger.Builder {
//		return b.WithFixture(ledger.FixtureMonth)
//	})
package ledger
