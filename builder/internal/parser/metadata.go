package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/javijec/new-biblia/internal/corpus"
	"github.com/javijec/new-biblia/internal/textnorm"
)

const maxBreadcrumbLevels = 3

var trailingIntRe = regexp.MustCompile(`(\d+)$`)

// Metadata is what a page says about itself. Zero values mean unset.
type Metadata struct {
	Testament     corpus.Testament
	BookTitle     string
	ChapterNumber int
}

func (m Metadata) Complete() bool {
	return m.Testament != "" && m.BookTitle != "" && m.ChapterNumber > 0
}

// fill sets the fields of m that are unset from other.
func (m Metadata) fill(other Metadata) Metadata {
	if m.Testament == "" {
		m.Testament = other.Testament
	}
	if m.BookTitle == "" {
		m.BookTitle = other.BookTitle
	}
	if m.ChapterNumber <= 0 {
		m.ChapterNumber = other.ChapterNumber
	}
	return m
}

// Heuristic reads one source of metadata from a page and fills the fields
// still unset in partial. It never overwrites a set field.
type Heuristic func(page *Page, partial Metadata) Metadata

// DefaultHeuristics is the precedence order used by Resolve.
var DefaultHeuristics = []Heuristic{
	Breadcrumb,
	DeclaredPart,
	Caption,
	Title,
}

// Resolve folds DefaultHeuristics over an empty Metadata.
func Resolve(page *Page) Metadata {
	return ResolveWith(page, DefaultHeuristics)
}

func ResolveWith(page *Page, heuristics []Heuristic) Metadata {
	var m Metadata
	for _, h := range heuristics {
		if m.Complete() {
			break
		}
		m = h(page, m)
	}
	return m
}

// Breadcrumb walks the first square-bulleted list down its chain of first
// items: testament, book, chapter.
func Breadcrumb(page *Page, partial Metadata) Metadata {
	var root *goquery.Selection
	page.find(listSel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if t, _ := s.Attr("type"); strings.EqualFold(strings.TrimSpace(t), "square") {
			root = s
			return false
		}
		return true
	})
	if root == nil {
		return partial
	}

	var levels []string
	li := root.ChildrenMatcher(listItemSel).First()
	for li.Length() > 0 && len(levels) < maxBreadcrumbLevels {
		own := li.Clone()
		own.ChildrenMatcher(nestedSel).Remove()
		if txt := textnorm.Normalize(own.Text()); txt != "" {
			levels = append(levels, txt)
		}

		next := li.ChildrenMatcher(nestedSel).First()
		if next.Length() == 0 {
			break
		}
		li = next.ChildrenMatcher(listItemSel).First()
	}

	var found Metadata
	if len(levels) > 0 {
		found.Testament = corpus.Testament(levels[0])
	}
	if len(levels) > 1 {
		found.BookTitle = levels[1]
	}
	if len(levels) > 2 {
		found.ChapterNumber = leadingInt(levels[2])
	}
	return partial.fill(found)
}

// DeclaredPart reads <meta name="part" content="Testament>Book>Chapter">.
func DeclaredPart(page *Page, partial Metadata) Metadata {
	var content string
	var ok bool
	page.find(metaSel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if name, _ := s.Attr("name"); strings.EqualFold(strings.TrimSpace(name), "part") {
			content, ok = s.Attr("content")
			return !ok
		}
		return true
	})
	if !ok || strings.TrimSpace(content) == "" {
		return partial
	}

	parts := strings.Split(content, ">")
	for i := range parts {
		parts[i] = textnorm.Normalize(parts[i])
	}

	var found Metadata
	if len(parts) > 0 && parts[0] != "" {
		found.Testament = canonicalTestament(parts[0])
	}
	if len(parts) > 1 {
		found.BookTitle = parts[1]
	}
	if len(parts) > 2 {
		found.ChapterNumber = leadingInt(parts[2])
	}
	return partial.fill(found)
}

func canonicalTestament(label string) corpus.Testament {
	switch corpus.Testament(label).Kind() {
	case corpus.TestamentOld:
		return corpus.OldTestament
	case corpus.TestamentNew:
		return corpus.NewTestament
	}
	return corpus.Testament(label)
}

// Caption takes the chapter number from the trailing integer of the first
// announcement paragraph ("SALMO 23").
func Caption(page *Page, partial Metadata) Metadata {
	if partial.ChapterNumber > 0 {
		return partial
	}
	sel := page.find(captionSel).First()
	if sel.Length() == 0 {
		return partial
	}
	m := trailingIntRe.FindStringSubmatch(textnorm.Normalize(sel.Text()))
	if m == nil {
		return partial
	}
	if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
		partial.ChapterNumber = n
	}
	return partial
}

// Title takes the book title from the first book-title paragraph.
func Title(page *Page, partial Metadata) Metadata {
	if partial.BookTitle != "" {
		return partial
	}
	sel := page.find(titleSel).First()
	if sel.Length() == 0 {
		return partial
	}
	partial.BookTitle = textnorm.Normalize(sel.Text())
	return partial
}
