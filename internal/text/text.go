// Package text normalizes free text the same way the offline pipeline
// does: case-fold, strip punctuation, drop short tokens and stop terms.
// The term index and every analytics aggregate depend on query text and
// corpus text passing through the identical normalization.
package text

import (
	"regexp"
	"strings"
)

// minTermLength drops tokens that are too short to carry signal.
const minTermLength = 3

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Tokenize normalizes s into index terms: lowercase, punctuation stripped,
// tokens shorter than three characters and stop terms removed.
func Tokenize(s string) []string {
	if s == "" {
		return nil
	}
	raw := nonAlnum.Split(strings.ToLower(s), -1)
	terms := make([]string, 0, len(raw))
	for _, t := range raw {
		if len(t) < minTermLength || IsStopTerm(t) {
			continue
		}
		terms = append(terms, t)
	}
	return terms
}

// IsStopTerm reports whether t is an English stop term.
func IsStopTerm(t string) bool {
	_, ok := stopTerms[t]
	return ok
}

var stopTerms = func() map[string]struct{} {
	words := []string{
		"the", "and", "but", "for", "with", "from", "about", "into",
		"through", "during", "before", "after", "above", "below", "out",
		"off", "over", "under", "again", "further", "then", "once", "here",
		"there", "when", "where", "why", "how", "all", "any", "both",
		"each", "few", "more", "most", "other", "some", "such", "nor",
		"not", "only", "own", "same", "than", "too", "very", "can",
		"will", "just", "should", "now", "are", "was", "were", "been",
		"being", "have", "has", "had", "does", "did", "would", "could",
		"may", "might", "must", "shall", "this", "that", "these", "those",
		"you", "she", "him", "her", "them", "they", "his", "its", "our",
		"their", "which", "what", "who", "whom", "also", "because",
		"between", "while", "using", "used", "within", "without",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()
