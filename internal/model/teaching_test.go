package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/thuchi/internal/common"
)

func TestNewTeachingExample(t *testing.T) {
	example, err := NewTeachingExample(42, DirectionExpense, "  Ăn vặt ", " xúc xích nướng ")
	require.NoError(t, err)
	assert.Equal(t, int64(42), example.UserID)
	assert.Equal(t, "Ăn vặt", example.Category)
	assert.Equal(t, "xúc xích nướng", example.Description)

	tests := []struct {
		name        string
		direction   Direction
		category    string
		description string
	}{
		{name: "bad direction", direction: "x", category: "a", description: "b"},
		{name: "blank category", direction: DirectionIncome, category: "  ", description: "b"},
		{name: "blank description", direction: DirectionIncome, category: "a", description: "\t"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTeachingExample(1, tt.direction, tt.category, tt.description)
			assert.ErrorIs(t, err, common.ErrInvalidFeedback)
		})
	}
}

func TestTransaction_Validate(t *testing.T) {
	valid := Transaction{
		Timestamp:   time.Now(),
		Direction:   DirectionExpense,
		Category:    CategoryOther,
		Description: "ăn trưa",
		Amount:      50000,
	}
	require.NoError(t, valid.Validate())

	receipt := ReceiptFor(valid)
	assert.Equal(t, valid.Amount, receipt.Amount)
	assert.Equal(t, valid.Category, receipt.Category)

	broken := valid
	broken.Amount = -1
	assert.ErrorIs(t, broken.Validate(), ErrInvalidTransaction)

	broken = valid
	broken.Category = ""
	assert.ErrorIs(t, broken.Validate(), ErrInvalidTransaction)

	broken = valid
	broken.Timestamp = time.Time{}
	assert.ErrorIs(t, broken.Validate(), ErrInvalidTransaction)
}
