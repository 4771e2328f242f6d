package tokenizer

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/javijec/new-biblia/internal/textnorm"
)

var wordRe = regexp.MustCompile(`[a-z0-9]+`)

type Tokenizer struct {
	StopWords map[string]bool
	minLength int
	maxLength int
}

func NewTokenizer() *Tokenizer {
	return &Tokenizer{
		StopWords: defaultStopWords(),
		minLength: 2,
		maxLength: 50,
	}
}

// Tokenize folds text, splits it into words and drops stop words, numbers and
// words outside the length bounds.
func (t *Tokenizer) Tokenize(text string) []string {
	normalized := t.normalize(text)
	words := t.split(normalized)

	tokens := make([]string, 0)

	for _, word := range words {
		if word == "" {
			continue
		}

		if t.StopWords[word] {
			continue
		}

		if len(word) < t.minLength || len(word) > t.maxLength {
			continue
		}

		if !t.IsValidToken(word) {
			continue
		}

		tokens = append(tokens, word)
	}
	return tokens
}

func (t *Tokenizer) TokenizeToFrequency(text string) map[string]int {
	tokens := t.Tokenize(text)
	result := make(map[string]int)

	for _, token := range tokens {
		result[token]++
	}
	return result
}

func (t *Tokenizer) normalize(text string) string {
	text = textnorm.Fold(textnorm.DecodeEntities(text))

	text = strings.ReplaceAll(text, "-", " ")
	text = strings.ReplaceAll(text, "_", " ")

	return text
}

func (t *Tokenizer) split(text string) []string {
	return wordRe.FindAllString(text, -1)
}

func (t *Tokenizer) IsValidToken(word string) bool {
	alphaCount := 0
	digitCount := 0

	for _, r := range word {
		if unicode.IsLetter(r) {
			alphaCount++
		} else if unicode.IsDigit(r) {
			digitCount++
		}
	}
	if alphaCount == 0 {
		return false
	}
	if digitCount > alphaCount {
		return false
	}
	return true
}

// Stop words are stored folded, the way Tokenize compares them.
func defaultStopWords() map[string]bool {
	words := []string{
		// Articles
		"el", "la", "los", "las", "un", "una", "unos", "unas", "lo",

		// Pronouns
		"yo", "me", "mi", "mis", "tu", "te", "ti", "tus", "se", "si",
		"nos", "os", "su", "sus", "le", "les", "ella", "ellas", "ellos",
		"nosotros", "vosotros", "usted", "ustedes", "esto", "eso", "aquello",

		// Prepositions
		"a", "al", "ante", "bajo", "con", "contra", "de", "del", "desde",
		"en", "entre", "hacia", "hasta", "para", "por", "segun", "sin", "sobre", "tras",

		// Conjunctions
		"y", "e", "o", "u", "ni", "pero", "sino", "que", "porque", "pues", "como", "cuando",

		// Demonstratives and relatives
		"este", "esta", "estos", "estas", "ese", "esa", "esos", "esas",
		"aquel", "aquella", "aquellos", "aquellas", "cual", "cuales", "quien", "quienes",

		// Other common words
		"mas", "muy", "ya", "no", "tambien", "todo", "toda", "todos", "todas",
	}

	stopWords := make(map[string]bool, len(words))
	for _, word := range words {
		stopWords[word] = true
	}
	return stopWords
}
