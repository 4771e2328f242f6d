package textprocessor

import (
	"sort"

	"github.com/javijec/new-biblia/internal/tokenizer"
)

type TextProcessor struct {
	tokenizer *tokenizer.Tokenizer
	stemmer   *Stemmer
}

func NewTextProcessor() *TextProcessor {
	return &TextProcessor{
		tokenizer: tokenizer.NewTokenizer(),
		stemmer:   NewStemmer(),
	}
}

func (tp *TextProcessor) Process(text string) []string {
	tokens := tp.tokenizer.Tokenize(text)
	return tp.stemmer.StemBatch(tokens)
}

func (tp *TextProcessor) ProcessToFrequency(text string) map[string]int {
	tokens := tp.Process(text)

	freq := make(map[string]int)
	for _, token := range tokens {
		freq[token]++
	}

	return freq
}

type ProcessedVerse struct {
	TermFrequencies map[string]int
	TotalTerms      int
	UniqueTerms     int
}

// ProcessVerse stems a verse into the term frequencies stored in the index.
func (tp *TextProcessor) ProcessVerse(text string) ProcessedVerse {
	termFreq := tp.ProcessToFrequency(text)
	totalTerms := 0
	for _, freq := range termFreq {
		totalTerms += freq
	}

	return ProcessedVerse{
		TermFrequencies: termFreq,
		TotalTerms:      totalTerms,
		UniqueTerms:     len(termFreq),
	}
}

// QueryTerms stems every word of every query and returns the distinct stems, sorted.
func (tp *TextProcessor) QueryTerms(queries ...string) []string {
	seen := make(map[string]bool)
	var terms []string
	for _, q := range queries {
		for _, term := range tp.Process(q) {
			if !seen[term] {
				seen[term] = true
				terms = append(terms, term)
			}
		}
	}
	sort.Strings(terms)
	return terms
}
