package usecase

import (
	"regexp"
	"strings"
)

// Compiled regex patterns for name normalization
var (
	// Matches the standalone word AND (input is already uppercased)
	andWordPattern = regexp.MustCompile(`\bAND\b`)

	// Matches an ampersand together with any surrounding spaces
	ampersandPattern = regexp.MustCompile(`\s*&\s*`)

	// Matches a digit split from a unit suffix, e.g. "7 UP", "8 PC", "12 PCS"
	digitSuffixPattern = regexp.MustCompile(`(?i)(\d)\s+(UP|PCS|PC)\b`)
)

// Normalize canonicalizes a product name or query for comparison.
// The result is uppercase, single-spaced, renders "and" as " & " and glues
// counts to their unit ("8 pc" -> "8PC"). Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	normalized := collapseSpaces(strings.ToUpper(text))
	normalized = andWordPattern.ReplaceAllString(normalized, "&")
	normalized = ampersandPattern.ReplaceAllString(normalized, " & ")
	normalized = collapseSpaces(normalized)

	return digitSuffixPattern.ReplaceAllString(normalized, "${1}${2}")
}

// collapseSpaces trims s and reduces every whitespace run to a single space
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
