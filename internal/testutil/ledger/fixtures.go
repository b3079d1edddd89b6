package ledger

import (
	"time"

	"github.com/Veraticus/thuchi/internal/model"
)

// Entry is one fixture transaction.
type Entry struct {
	At          time.Time
	Direction   model.Direction
	Category    CategoryName
	Description string
	UserID      int64
	Amount      int64
}

// Fixture represents a predefined ledger for testing.
type Fixture interface {
	// Name returns the fixture's descriptive name.
	Name() string

	// Entries returns the transactions included in this fixture.
	Entries() []Entry
}

// fixture implements the Fixture interface.
type fixture struct {
	name    string
	entries []Entry
}

func (f *fixture) Name() string     { return f.name }
func (f *fixture) Entries() []Entry { return f.entries }

// FixtureMonthStart is the first instant of the month FixtureMonth covers.
var FixtureMonthStart = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

// FixtureMonth is a month of activity for user 1 plus one entry for user 2
// and one entry from the previous month.
var FixtureMonth = &fixture{
	name: "Month",
	entries: []Entry{
		{At: FixtureMonthStart.Add(-24 * time.Hour), UserID: 1, Direction: model.DirectionExpense, Category: CategoryBills, Amount: 1500000, Description: "tiền nhà"},
		{At: FixtureMonthStart.Add(9 * time.Hour), UserID: 1, Direction: model.DirectionIncome, Category: CategorySalary, Amount: 10000000, Description: "lương"},
		{At: FixtureMonthStart.Add(36 * time.Hour), UserID: 1, Direction: model.DirectionExpense, Category: CategoryFood, Amount: 50000, Description: "ăn trưa"},
		{At: FixtureMonthStart.Add(80 * time.Hour), UserID: 1, Direction: model.DirectionExpense, Category: CategoryTransport, Amount: 70000, Description: "đổ xăng"},
		{At: FixtureMonthStart.Add(100 * time.Hour), UserID: 1, Direction: model.DirectionExpense, Category: CategoryFood, Amount: 30000, Description: "cà phê"},
		{At: FixtureMonthStart.Add(200 * time.Hour), UserID: 1, Direction: model.DirectionIncome, Category: CategoryBonus, Amount: 500000, Description: "thưởng dự án"},
		{At: FixtureMonthStart.Add(50 * time.Hour), UserID: 2, Direction: model.DirectionExpense, Category: CategoryShopping, Amount: 999000, Description: "giày mới"},
	},
}
