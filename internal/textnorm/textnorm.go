// Package textnorm cleans legacy chapter markup into plain text and folds
// text for accent-insensitive comparison.
package textnorm

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Named entities found in the legacy pages. Letter entities are matched
// case-insensitively except where case picks the letter (&Aacute; vs &aacute;).
var namedEntities = map[string]string{
	"aacute": "á", "eacute": "é", "iacute": "í", "oacute": "ó", "uacute": "ú",
	"Aacute": "Á", "Eacute": "É", "Iacute": "Í", "Oacute": "Ó", "Uacute": "Ú",
	"ntilde": "ñ", "Ntilde": "Ñ",
	"uuml": "ü", "Uuml": "Ü",
	"iexcl": "¡", "iquest": "¿",
	"laquo": "«", "raquo": "»",
	"ndash": "–", "mdash": "—",
	"ldquo": "“", "rdquo": "”", "lsquo": "‘", "rsquo": "’",
	"nbsp": " ",
	"quot": `"`,
	"amp":  "&",
	"lt":   "<",
	"gt":   ">",
}

var (
	entityRe     = regexp.MustCompile(`&(#[0-9]{1,5}|#[xX][0-9a-fA-F]{1,4}|[a-zA-Z]{2,8});`)
	tagRe        = regexp.MustCompile(`<[^>]+?>`)
	whitespaceRe = regexp.MustCompile(`[\s\x{00A0}]+`)
)

// Normalize decodes legacy entities, strips tags, collapses whitespace and trims.
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	// Decoding can surface escaped markup ("&lt;i&gt;") and stripping can splice
	// an entity back together, so run both until neither changes the text.
	text := raw
	for {
		next := DecodeEntities(tagRe.ReplaceAllString(text, ""))
		if next == text {
			break
		}
		text = next
	}
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// DecodeEntities replaces the legacy named and numeric entities. Unknown
// entities are left untouched.
func DecodeEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	// Double-escaped input ("&amp;aacute;") needs more than one pass.
	for {
		out := entityRe.ReplaceAllStringFunc(s, decodeEntity)
		if out == s {
			return out
		}
		s = out
	}
}

func decodeEntity(m string) string {
	name := m[1 : len(m)-1]
	if strings.HasPrefix(name, "#") {
		var n int64
		var err error
		if len(name) > 1 && (name[1] == 'x' || name[1] == 'X') {
			n, err = strconv.ParseInt(name[2:], 16, 32)
		} else {
			n, err = strconv.ParseInt(name[1:], 10, 32)
		}
		if err != nil || n <= 0 || !utf8Valid(rune(n)) {
			return m
		}
		if n == 0xA0 {
			return " "
		}
		return string(rune(n))
	}
	if v, ok := namedEntities[name]; ok {
		return v
	}
	if v, ok := namedEntities[strings.ToLower(name)]; ok {
		return v
	}
	return m
}

func utf8Valid(r rune) bool {
	return r <= unicode.MaxRune && !(r >= 0xD800 && r <= 0xDFFF)
}

// Fold lower-cases s, decomposes it (NFD) and drops combining marks, so
// "Habló" and "hablo" compare equal. Whitespace is left as is.
func Fold(s string) string {
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// FoldQuery folds a free-text query and collapses its whitespace.
func FoldQuery(q string) string {
	return strings.Join(strings.Fields(Fold(q)), " ")
}
