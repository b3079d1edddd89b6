package parser

import "github.com/Veraticus/thuchi/internal/model"

// DirectionRule fires when any of its keywords appears as a token.
type DirectionRule struct {
	Name      string
	Direction model.Direction
	Keywords  []string
}

// Matches reports whether any keyword is present among tokens.
func (r DirectionRule) Matches(tokens []string) bool {
	for _, tok := range tokens {
		for _, kw := range r.Keywords {
			if tok == kw {
				return true
			}
		}
	}
	return false
}

// DefaultRule is the name reported when no rule in DirectionRules fires.
const DefaultRule = "default"

// DirectionRules is evaluated top to bottom; the first match wins.
var DirectionRules = []DirectionRule{
	{Name: "income-marker", Direction: model.DirectionIncome, Keywords: []string{"thu", "+"}},
	{Name: "expense-marker", Direction: model.DirectionExpense, Keywords: []string{"chi", "-"}},
	{Name: "income-keyword", Direction: model.DirectionIncome, Keywords: []string{"nhận", "lương", "thưởng", "bonus", "lãi"}},
}

// ResolveDirection applies DirectionRules and falls back to expense.
// It also returns the name of the rule that decided.
func ResolveDirection(tokens []string) (model.Direction, string) {
	for _, rule := range DirectionRules {
		if rule.Matches(tokens) {
			return rule.Direction, rule.Name
		}
	}
	return model.DirectionExpense, DefaultRule
}
