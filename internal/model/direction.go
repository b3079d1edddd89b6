// Package model defines the core domain models used throughout the application.
package model

import (
	"fmt"
	"strings"

	"github.com/Veraticus/thuchi/internal/common"
)

// Direction says whether money came in or went out.
type Direction string

// Direction constants.
const (
	DirectionIncome  Direction = "income"
	DirectionExpense Direction = "expense"
)

// Directions lists every direction in a stable order.
var Directions = []Direction{DirectionExpense, DirectionIncome}

// IsValid reports whether d is one of the known directions.
func (d Direction) IsValid() bool {
	return d == DirectionIncome || d == DirectionExpense
}

// Label is the short Vietnamese marker for the direction.
func (d Direction) Label() string {
	if d == DirectionIncome {
		return "thu"
	}
	return "chi"
}

// ParseDirection accepts the english names and the vietnamese or sign markers.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income", "thu", "+":
		return DirectionIncome, nil
	case "expense", "chi", "-":
		return DirectionExpense, nil
	default:
		return "", fmt.Errorf("%w: unknown direction %q", common.ErrInvalidFeedback, s)
	}
}
