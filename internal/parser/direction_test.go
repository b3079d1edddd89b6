package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/thuchi/internal/model"
)

func TestResolveDirection(t *testing.T) {
	tests := []struct {
		name     string
		tokens   []string
		wantDir  model.Direction
		wantRule string
	}{
		{"thu marker", []string{"thu", "bán", "xe"}, model.DirectionIncome, "income-marker"},
		{"plus marker", []string{"bán", "xe", "+"}, model.DirectionIncome, "income-marker"},
		{"chi marker", []string{"chi", "ăn"}, model.DirectionExpense, "expense-marker"},
		{"minus marker", []string{"-", "ăn"}, model.DirectionExpense, "expense-marker"},
		{"thu wins over chi", []string{"chi", "thu", "lẫn", "lộn"}, model.DirectionIncome, "income-marker"},
		{"chi wins over income keyword", []string{"chi", "lương", "nhân", "viên"}, model.DirectionExpense, "expense-marker"},
		{"lương keyword", []string{"lương", "tháng"}, model.DirectionIncome, "income-keyword"},
		{"bonus keyword", []string{"bonus", "q3"}, model.DirectionIncome, "income-keyword"},
		{"lãi keyword", []string{"lãi", "ngân", "hàng"}, model.DirectionIncome, "income-keyword"},
		{"keywords only match whole tokens", []string{"thuốc", "chim"}, model.DirectionExpense, DefaultRule},
		{"no tokens", nil, model.DirectionExpense, DefaultRule},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, rule := ResolveDirection(tt.tokens)
			assert.Equal(t, tt.wantDir, dir)
			assert.Equal(t, tt.wantRule, rule)
		})
	}
}

func TestDirectionRules_Order(t *testing.T) {
	names := make([]string, 0, len(DirectionRules))
	for _, r := range DirectionRules {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"income-marker", "expense-marker", "income-keyword"}, names)
}

func TestCleanDescription(t *testing.T) {
	got, err := CleanDescription([]string{"thu", "tiền", "+", "cho", "-", "thuê", "chi", "xe"})
	assert.NoError(t, err)
	assert.Equal(t, "tiền cho thuê xe", got)

	_, err = CleanDescription([]string{"thu", "chi", "+", "-"})
	assert.Error(t, err)
}
