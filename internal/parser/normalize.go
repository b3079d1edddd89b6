// Package parser turns a raw chat message into an amount, a direction and a
// clean description.
package parser

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Normalize composes the text to NFC and lower-cases it, so that messages
// typed with decomposed Vietnamese diacritics match the composed ones.
func Normalize(text string) string {
	composed := norm.NFC.String(text)
	return strings.TrimSpace(cases.Lower(language.Vietnamese).String(composed))
}

// Tokenize splits normalized text on whitespace.
func Tokenize(text string) []string {
	return strings.Fields(text)
}
