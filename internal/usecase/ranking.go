package usecase

import (
	"strings"
	"unicode/utf8"
)

// Rank score weights. These are hand-tuned and kept as-is for compatibility
// with the kiosk's existing ordering.
const (
	rankBase           = 100
	exactMatchBonus    = 1000
	containsMatchBonus = 500
	bundlePenalty      = 400
)

// comboIntentTerms signal the caller asked for a bundle
var comboIntentTerms = []string{"COMBO", "MEAL", "BUCKET"}

// bundleMarkers identify bundle products in a normalized name
var bundleMarkers = []string{"COMBO", "MEAL", "BUCKET", " & "}

// HasComboIntent reports whether a normalized query asks for a bundled product
func HasComboIntent(normalizedQuery string) bool {
	return containsAny(normalizedQuery, comboIntentTerms)
}

// RankScore computes the sort key of a candidate. Higher ranks first.
// Exact matches beat containment, shorter names beat longer ones, and bundles
// sink unless the query asked for one.
func RankScore(normalizedName, normalizedQuery string, comboIntent bool) int {
	score := rankBase

	if normalizedName == normalizedQuery {
		score += exactMatchBonus
	} else if strings.Contains(normalizedName, normalizedQuery) {
		score += containsMatchBonus
	}

	score -= utf8.RuneCountInString(normalizedName)

	if !comboIntent && containsAny(strings.ToUpper(normalizedName), bundleMarkers) {
		score -= bundlePenalty
	}

	return score
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
