// Package parser reads the legacy chapter markup: the metadata heuristics,
// the verse segmenter and the reference extractor all work on a parsed Page.
package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	berrors "github.com/javijec/new-biblia/internal/errors"
)

var (
	listSel      = cascadia.MustCompile("ul[type]")
	listItemSel  = cascadia.MustCompile("li")
	nestedSel    = cascadia.MustCompile("ul")
	metaSel      = cascadia.MustCompile("meta[name]")
	captionSel   = cascadia.MustCompile("p.Enunciado")
	titleSel     = cascadia.MustCompile("p.TtulodelLibro")
	paragraphSel = cascadia.MustCompile("p")
	refBlockSel  = cascadia.MustCompile("p.MsoNormal")
	anchorSel    = cascadia.MustCompile("a")
)

var leadingIntRe = regexp.MustCompile(`^[\s\x{00A0}]*[+]?(\d+)`)

// Page is one parsed chapter document.
type Page struct {
	FileID string
	doc    *goquery.Document
}

type Parser struct{}

func New() *Parser {
	return &Parser{}
}

// ParseHTML parses decoded chapter markup. Malformed markup is repaired by the
// HTML tokenizer, so errors are rare.
func (p *Parser) ParseHTML(htmlContent string, fileID string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, berrors.NewParse("HTML", fileID, "unreadable markup", err)
	}
	return &Page{FileID: fileID, doc: doc}, nil
}

func (pg *Page) Document() *goquery.Document {
	return pg.doc
}

func (pg *Page) find(m goquery.Matcher) *goquery.Selection {
	return pg.doc.FindMatcher(m)
}

// leadingInt mimics parseInt: optional whitespace, then the leading digits.
// Missing or non-positive numbers yield 0.
func leadingInt(s string) int {
	m := leadingIntRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
