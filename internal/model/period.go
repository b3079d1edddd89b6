package model

import (
	"fmt"
	"strings"
)

// Period selects which slice of the ledger a report covers.
type Period string

// Period constants.
const (
	PeriodAll   Period = "all"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// ParsePeriod accepts the english names and the bot command names (tuan, thang).
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all", "":
		return PeriodAll, nil
	case "week", "tuan", "tuần":
		return PeriodWeek, nil
	case "month", "thang", "tháng":
		return PeriodMonth, nil
	default:
		return "", fmt.Errorf("unknown period %q (want all, week or month)", s)
	}
}
