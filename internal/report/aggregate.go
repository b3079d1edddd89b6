package report

import (
	"sort"

	"github.com/Veraticus/thuchi/internal/model"
	"github.com/Veraticus/thuchi/internal/service"
)

// CategoryTotal is the sum of one category within a direction.
type CategoryTotal struct {
	Category string
	Amount   int64
	Count    int
}

// Section summarizes one direction.
type Section struct {
	Direction  model.Direction
	Categories []CategoryTotal
	Total      int64
	Count      int
}

// Report is the aggregated view of a user's ledger over a period.
type Report struct {
	Filter  service.TransactionFilter
	Period  model.Period
	Title   string
	Income  Section
	Expense Section
	Balance int64
}

// Empty reports whether the period contained no transactions.
func (r Report) Empty() bool {
	return r.Income.Count == 0 && r.Expense.Count == 0
}

// Section returns the summary for direction.
func (r Report) Section(direction model.Direction) Section {
	if direction == model.DirectionIncome {
		return r.Income
	}
	return r.Expense
}

// Aggregate partitions txns by direction and sums them per category.
// Categories are ordered by descending sum, then by name.
func Aggregate(period model.Period, title string, filter service.TransactionFilter, txns []model.Transaction) Report {
	r := Report{
		Period:  period,
		Title:   title,
		Filter:  filter,
		Income:  summarize(model.DirectionIncome, txns),
		Expense: summarize(model.DirectionExpense, txns),
	}
	r.Balance = r.Income.Total - r.Expense.Total
	return r
}

func summarize(direction model.Direction, txns []model.Transaction) Section {
	section := Section{Direction: direction}
	byCategory := make(map[string]*CategoryTotal)

	for _, txn := range txns {
		if txn.Direction != direction {
			continue
		}
		section.Total += txn.Amount
		section.Count++

		ct, ok := byCategory[txn.Category]
		if !ok {
			ct = &CategoryTotal{Category: txn.Category}
			byCategory[txn.Category] = ct
		}
		ct.Amount += txn.Amount
		ct.Count++
	}

	if len(byCategory) == 0 {
		return section
	}

	section.Categories = make([]CategoryTotal, 0, len(byCategory))
	for _, ct := range byCategory {
		section.Categories = append(section.Categories, *ct)
	}
	sort.Slice(section.Categories, func(i, j int) bool {
		a, b := section.Categories[i], section.Categories[j]
		if a.Amount != b.Amount {
			return a.Amount > b.Amount
		}
		return a.Category < b.Category
	})

	return section
}
