// Package report aggregates the ledger into per-direction, per-category summaries.
package report

import (
	"fmt"
	"time"

	"github.com/Veraticus/thuchi/internal/model"
	"github.com/Veraticus/thuchi/internal/service"
)

// Range returns the query bounds for period as of now. Boundaries are computed
// in now's location; weeks start on Monday.
func Range(period model.Period, now time.Time) service.TransactionFilter {
	var start time.Time
	switch period {
	case model.PeriodWeek:
		offset := (int(now.Weekday()) + 6) % 7
		start = time.Date(now.Year(), now.Month(), now.Day()-offset, 0, 0, 0, 0, now.Location())
	case model.PeriodMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	default:
		return service.TransactionFilter{}
	}

	end := now
	return service.TransactionFilter{Start: &start, End: &end}
}

// Title names the period the way the bot does in its report header.
func Title(period model.Period, now time.Time) string {
	switch period {
	case model.PeriodWeek:
		year, week := now.ISOWeek()
		return fmt.Sprintf("Tuần %d, %d", week, year)
	case model.PeriodMonth:
		return fmt.Sprintf("Tháng %d/%d", int(now.Month()), now.Year())
	default:
		return "Toàn bộ"
	}
}
