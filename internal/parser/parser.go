package parser

import "github.com/Veraticus/thuchi/internal/model"

// Parsed is the structured reading of one message.
type Parsed struct {
	Direction   model.Direction
	Description string
	Rule        string
	Amount      int64
}

// Parse runs normalize, amount extraction, direction resolution and
// description cleaning in that order.
func Parse(text string) (Parsed, error) {
	normalized := Normalize(text)

	amount, remainder, err := ExtractAmount(normalized)
	if err != nil {
		return Parsed{}, err
	}

	tokens := Tokenize(remainder)
	direction, rule := ResolveDirection(tokens)

	description, err := CleanDescription(tokens)
	if err != nil {
		return Parsed{}, err
	}

	return Parsed{
		Amount:      amount,
		Direction:   direction,
		Description: description,
		Rule:        rule,
	}, nil
}
