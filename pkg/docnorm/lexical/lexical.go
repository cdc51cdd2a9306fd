// Package lexical classifies words of normalized text.
package lexical

import (
	"strings"
	"unicode"

	"github.com/cognicore/docnorm/pkg/docnorm/vocab"
)

var (
	keywords    = vocab.Keywords()
	punctuation = func() map[string]struct{} {
		set := make(map[string]struct{})
		for _, p := range vocab.Punctuation() {
			set[p] = struct{}{}
		}
		return set
	}()
)

// IsKeyword reports whether word is a placeholder token, optionally followed
// by a numeric suffix (VARIABLE3).
func IsKeyword(word string) bool {
	for _, kw := range keywords {
		if !strings.HasPrefix(word, kw) {
			continue
		}
		rest := word[len(kw):]
		if rest == "" || isNumeric(rest) {
			return true
		}
	}
	return false
}

// IsPunctuation reports whether word is one of the punctuation symbols.
func IsPunctuation(word string) bool {
	_, ok := punctuation[word]
	return ok
}

// MeaningfulWords counts keywords and purely alphabetic words.
func MeaningfulWords(words []string) int {
	n := 0
	for _, w := range words {
		if IsKeyword(w) || isAlpha(w) {
			n++
		}
	}
	return n
}

// MeaningfulWordRatio returns the share of meaningful words, 0 for no words.
func MeaningfulWordRatio(words []string) float64 {
	if len(words) == 0 {
		return 0
	}
	return float64(MeaningfulWords(words)) / float64(len(words))
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
