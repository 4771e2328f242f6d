package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/javijec/new-biblia/internal/corpus"
)

var (
	digitsRe        = regexp.MustCompile(`^\d+$`)
	leadingNumberRe = regexp.MustCompile(`^(\d+)[\s\x{00A0}]+`)
)

// ExtractReferences maps each verse paragraph of a linked page to its
// outbound links, keyed by the primary corpus file name and verse number.
func ExtractReferences(page *Page, fileID string) corpus.ReferenceMap {
	refs := corpus.ReferenceMap{}
	file := corpus.NormalizeReferenceFile(fileID)

	page.find(refBlockSel).Each(func(_ int, p *goquery.Selection) {
		number, ok := referenceVerseNumber(p)
		if !ok {
			return
		}

		var links []corpus.Reference
		p.FindMatcher(anchorSel).Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			href = strings.TrimSpace(href)
			if href == "" {
				return
			}
			links = append(links, corpus.Reference{Href: href, Text: strings.TrimSpace(a.Text())})
		})

		refs.Add(corpus.ReferenceKey(file, number), links...)
	})

	return refs
}

// referenceVerseNumber prefers a first anchor whose text is a bare number and
// falls back to the paragraph's leading digits.
func referenceVerseNumber(p *goquery.Selection) (int, bool) {
	if first := p.FindMatcher(anchorSel).First(); first.Length() > 0 {
		if txt := strings.TrimSpace(first.Text()); digitsRe.MatchString(txt) {
			n, err := strconv.Atoi(txt)
			return n, err == nil
		}
	}

	m := leadingNumberRe.FindStringSubmatch(strings.TrimSpace(p.Text()))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	return n, err == nil
}
