package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/javijec/new-biblia/internal/corpus"
	"github.com/javijec/new-biblia/internal/textnorm"
)

// A verse block is its number, whitespace (including no-break space), then text.
var verseRe = regexp.MustCompile(`(?s)^(\d+)[\s\x{00A0}]+(.+)$`)

// Segment returns the verses of a page in document order. Paragraphs that do
// not start with a verse number are skipped. Numbering is not repaired.
func Segment(page *Page) []corpus.Verse {
	verses := make([]corpus.Verse, 0)
	page.find(paragraphSel).Each(func(_ int, s *goquery.Selection) {
		if v, ok := parseVerse(s.Text()); ok {
			verses = append(verses, v)
		}
	})
	return verses
}

func parseVerse(block string) (corpus.Verse, bool) {
	txt := strings.TrimSpace(block)
	if txt == "" {
		return corpus.Verse{}, false
	}
	m := verseRe.FindStringSubmatch(txt)
	if m == nil {
		return corpus.Verse{}, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return corpus.Verse{}, false
	}
	text := textnorm.Normalize(m[2])
	if text == "" {
		return corpus.Verse{}, false
	}
	return corpus.Verse{Number: n, Text: text}, true
}

type IssueKind string

const (
	IssueDuplicate  IssueKind = "duplicate"
	IssueGap        IssueKind = "gap"
	IssueOutOfOrder IssueKind = "out_of_order"
)

// VerseIssue describes a numbering anomaly at Index in a chapter's verse list.
type VerseIssue struct {
	Kind     IssueKind `json:"kind"`
	Index    int       `json:"index"`
	Number   int       `json:"number"`
	Previous int       `json:"previous"`
}

func (i VerseIssue) String() string {
	return fmt.Sprintf("%s: verse %d after %d (position %d)", i.Kind, i.Number, i.Previous, i.Index)
}

// CheckVerses reports duplicate, skipped and backwards verse numbers. It only
// diagnoses; verses are emitted as found.
func CheckVerses(verses []corpus.Verse) []VerseIssue {
	var issues []VerseIssue
	seen := make(map[int]bool, len(verses))
	for i, v := range verses {
		if i > 0 {
			prev := verses[i-1].Number
			switch {
			case seen[v.Number]:
				issues = append(issues, VerseIssue{Kind: IssueDuplicate, Index: i, Number: v.Number, Previous: prev})
			case v.Number < prev:
				issues = append(issues, VerseIssue{Kind: IssueOutOfOrder, Index: i, Number: v.Number, Previous: prev})
			case v.Number > prev+1:
				issues = append(issues, VerseIssue{Kind: IssueGap, Index: i, Number: v.Number, Previous: prev})
			}
		}
		seen[v.Number] = true
	}
	return issues
}
