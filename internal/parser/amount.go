package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Veraticus/thuchi/internal/common"
)

// numberToken is a whole-word run of ASCII digits at [start, end) in the scanned text.
type numberToken struct {
	text  string
	start int
	end   int
}

// isWordRune matches the characters a regexp \w accepts in unicode mode.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

func isASCIIDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// findNumbers returns every maximal digit run that is not glued to a word
// character on either side, in scan order.
func findNumbers(text string) []numberToken {
	var tokens []numberToken
	prev := utf8.RuneError
	hasPrev := false

	for i := 0; i < len(text); {
		if !isASCIIDigit(text[i]) {
			r, size := utf8.DecodeRuneInString(text[i:])
			prev, hasPrev = r, true
			i += size
			continue
		}

		start := i
		for i < len(text) && isASCIIDigit(text[i]) {
			i++
		}

		leftOK := !hasPrev || !isWordRune(prev)
		rightOK := true
		if i < len(text) {
			next, _ := utf8.DecodeRuneInString(text[i:])
			rightOK = !isWordRune(next)
		}
		if leftOK && rightOK {
			tokens = append(tokens, numberToken{text: text[start:i], start: start, end: i})
		}

		prev, hasPrev = rune(text[i-1]), true
	}

	return tokens
}

// ExtractAmount finds the largest whole-word number in text and returns it
// together with the text that is left once every matched number is removed.
// When several numbers share the largest value the first one wins; the value
// is the same either way.
func ExtractAmount(text string) (int64, string, error) {
	tokens := findNumbers(text)
	if len(tokens) == 0 {
		return 0, "", common.ErrNoAmountFound
	}

	var amount int64
	for i, tok := range tokens {
		value, err := strconv.ParseInt(tok.text, 10, 64)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return 0, "", fmt.Errorf("%w: %s is too large", common.ErrInvalidAmount, tok.text)
			}
			return 0, "", fmt.Errorf("%w: %v", common.ErrInvalidAmount, err)
		}
		if i == 0 || value > amount {
			amount = value
		}
	}

	if amount <= 0 {
		return 0, "", fmt.Errorf("%w: amount must be positive", common.ErrInvalidAmount)
	}

	var remainder strings.Builder
	last := 0
	for _, tok := range tokens {
		remainder.WriteString(text[last:tok.start])
		last = tok.end
	}
	remainder.WriteString(text[last:])

	return amount, strings.TrimSpace(remainder.String()), nil
}
