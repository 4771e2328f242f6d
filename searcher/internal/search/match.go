package search

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// isWordRune reports whether r continues a word. Hyphens and underscores join
// words, so "habla" does not match inside "habla-dor".
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-'
}

// containsWord reports whether term occurs in text with no word rune directly
// before or after it. Both are expected to be folded already.
func containsWord(text, term string) bool {
	if term == "" {
		return false
	}
	for i := 0; i <= len(text)-len(term); {
		j := strings.Index(text[i:], term)
		if j < 0 {
			return false
		}
		start := i + j
		end := start + len(term)

		before, _ := utf8.DecodeLastRuneInString(text[:start])
		after, _ := utf8.DecodeRuneInString(text[end:])
		if (start == 0 || !isWordRune(before)) && (end == len(text) || !isWordRune(after)) {
			return true
		}

		_, size := utf8.DecodeRuneInString(text[start:])
		i = start + size
	}
	return false
}

// matchesAny reports whether text contains any of terms as a whole word.
func matchesAny(text string, terms []string) bool {
	for _, t := range terms {
		if containsWord(text, t) {
			return true
		}
	}
	return false
}
