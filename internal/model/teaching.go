package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/thuchi/internal/common"
)

// TeachingExample is a user-submitted labelled description held for the next retrain.
type TeachingExample struct {
	CreatedAt   time.Time
	Direction   Direction
	Category    string
	Description string
	ID          int64
	UserID      int64
}

// NewTeachingExample validates and normalizes a teach submission.
func NewTeachingExample(userID int64, direction Direction, category, description string) (TeachingExample, error) {
	if !direction.IsValid() {
		return TeachingExample{}, fmt.Errorf("%w: direction %q", common.ErrInvalidFeedback, direction)
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return TeachingExample{}, fmt.Errorf("%w: empty category", common.ErrInvalidFeedback)
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return TeachingExample{}, fmt.Errorf("%w: empty description", common.ErrInvalidFeedback)
	}
	return TeachingExample{
		UserID:      userID,
		Direction:   direction,
		Category:    category,
		Description: description,
	}, nil
}
