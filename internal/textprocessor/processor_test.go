package textprocessor_test

import (
	"testing"

	"github.com/javijec/new-biblia/internal/textprocessor"
)

func TestProcessVerse(t *testing.T) {
	tp := textprocessor.NewTextProcessor()

	doc := tp.ProcessVerse("Y dijo Dios: Hágase la luz. Y la luz se hizo.")
	if doc.TotalTerms != 6 {
		t.Errorf("TotalTerms = %d, want 6", doc.TotalTerms)
	}
	if doc.UniqueTerms != 5 {
		t.Errorf("UniqueTerms = %d, want 5", doc.UniqueTerms)
	}

	luz := textprocessor.NewStemmer().Stem("luz")
	if doc.TermFrequencies[luz] != 2 {
		t.Errorf("frequency of %q = %d, want 2", luz, doc.TermFrequencies[luz])
	}
}

func TestQueryTerms(t *testing.T) {
	tp := textprocessor.NewTextProcessor()

	terms := tp.QueryTerms("hablar", "hablaba", "de")
	if len(terms) != 1 {
		t.Fatalf("QueryTerms() = %v, want a single stem", terms)
	}
	if want := textprocessor.NewStemmer().Stem("hablar"); terms[0] != want {
		t.Errorf("QueryTerms()[0] = %q, want %q", terms[0], want)
	}

	if got := tp.QueryTerms(""); len(got) != 0 {
		t.Errorf("QueryTerms(\"\") = %v, want empty", got)
	}
}
