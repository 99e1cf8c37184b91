package usecase

import "strings"

// TokenSet is an unordered set of comparison tokens
type TokenSet map[string]struct{}

// Tokenize splits a normalized string on whitespace into a set of tokens
func Tokenize(normalized string) TokenSet {
	words := strings.Fields(normalized)
	set := make(TokenSet, len(words))
	for _, word := range words {
		set[word] = struct{}{}
	}
	return set
}

// Contains reports whether token is in the set
func (s TokenSet) Contains(token string) bool {
	_, ok := s[token]
	return ok
}

// Overlap returns the fraction of query tokens present in the candidate.
// Extra candidate tokens are not penalized. An empty query scores 0.
func Overlap(query, candidate TokenSet) float64 {
	if len(query) == 0 {
		return 0.0
	}

	matched := 0
	for token := range query {
		if candidate.Contains(token) {
			matched++
		}
	}

	return float64(matched) / float64(len(query))
}
