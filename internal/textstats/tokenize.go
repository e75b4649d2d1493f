// Package textstats turns raw page text into word-frequency data and derives
// ranked views from it. All functions are pure.
package textstats

import (
	"regexp"
	"strings"
)

// wordPattern matches a maximal alphabetic run, optionally followed by a
// single apostrophe-joined alphabetic suffix so contractions stay one token.
var wordPattern = regexp.MustCompile(`[A-Za-z]+(?:'[A-Za-z]+)?`)

// Tokenize splits text into candidate words: lowercased, with leading and
// trailing apostrophes stripped. Text with no alphabetic runs yields nil.
func Tokenize(text string) []string {
	matches := wordPattern.FindAllString(text, -1)
	if matches == nil {
		return nil
	}
	words := make([]string, 0, len(matches))
	for _, m := range matches {
		w := strings.Trim(strings.ToLower(m), "'")
		if w == "" {
			continue
		}
		words = append(words, w)
	}
	return words
}

// IsNonCommon reports whether a candidate word counts toward frequencies.
// Stopwords and words of two characters or fewer are rejected.
func IsNonCommon(word string) bool {
	if _, ok := stopwords[strings.ToLower(word)]; ok {
		return false
	}
	if len(word) <= 2 {
		return false
	}
	return true
}

// Accumulate tokenizes text and increments counts for every non-common word.
func Accumulate(counts map[string]int, text string) {
	for _, w := range Tokenize(text) {
		if IsNonCommon(w) {
			counts[w]++
		}
	}
}
