package domain

import (
	"strings"
	"unicode/utf8"
)

// NormalizeText trims the input and collapses internal runs of whitespace
// into single spaces. Returns "" for whitespace-only input.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeLower is NormalizeText plus lowercasing. Used for vendor names and
// transaction category names.
func NormalizeLower(s string) string {
	return strings.ToLower(NormalizeText(s))
}

// CapitalizeName normalizes whitespace and capitalizes the string the way
// stored category names are displayed: first rune upper, rest lower.
func CapitalizeName(s string) string {
	s = NormalizeText(s)
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return strings.ToUpper(string(r)) + strings.ToLower(s[size:])
}

// CategoryKey produces the case- and whitespace-insensitive key under which
// category names are compared. Two names with the same key must resolve to
// the same category id.
func CategoryKey(s string) string {
	return strings.ToLower(NormalizeText(s))
}
