package parser

import (
	"strings"

	"github.com/Veraticus/thuchi/internal/common"
)

// markerTokens are stripped from every description whichever rule fired.
var markerTokens = map[string]struct{}{
	"thu": {},
	"chi": {},
	"+":   {},
	"-":   {},
}

// CleanDescription drops direction markers and joins the remaining tokens
// with single spaces, keeping their order.
func CleanDescription(tokens []string) (string, error) {
	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, marker := markerTokens[tok]; marker {
			continue
		}
		kept = append(kept, tok)
	}

	description := strings.Join(kept, " ")
	if description == "" {
		return "", common.ErrEmptyDescription
	}
	return description, nil
}
