package textutil

import (
	"sort"
	"strings"
	"unicode"
)

// Tokenize lowercases text and splits it on every run of characters that are
// neither letters nor digits.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// SortedTokens returns the tokens of text sorted and joined by single spaces,
// so word order no longer affects comparisons.
func SortedTokens(text string) string {
	tokens := Tokenize(text)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
