// Package fetcher reads legacy chapter files from disk and decodes them to UTF-8.
package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html/charset"

	berrors "github.com/javijec/new-biblia/internal/errors"
)

// EncodingAuto sniffs the charset from BOM and <meta> and falls back to windows-1252.
const EncodingAuto = "auto"

const fallbackEncoding = "windows-1252"

// Document is one source file decoded to UTF-8.
type Document struct {
	FileID string
	Path   string
	HTML   string
}

type Fetcher struct {
	encoding string
}

// New returns a Fetcher decoding with the named charset (any WHATWG label) or
// EncodingAuto. An empty name means windows-1252.
func New(encoding string) (*Fetcher, error) {
	encoding = strings.ToLower(strings.TrimSpace(encoding))
	if encoding == "" {
		encoding = fallbackEncoding
	}
	if encoding != EncodingAuto {
		if enc, _ := charset.Lookup(encoding); enc == nil {
			return nil, fmt.Errorf("%w: encoding %q", berrors.ErrUnsupported, encoding)
		}
	}
	return &Fetcher{encoding: encoding}, nil
}

func (f *Fetcher) Encoding() string {
	return f.encoding
}

// Fetch reads and decodes the file at path.
func (f *Fetcher) Fetch(ctx context.Context, path string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, berrors.NewIO("read", path, err)
	}

	html, err := f.decode(raw)
	if err != nil {
		return nil, berrors.NewIO("decode", path, err)
	}

	return &Document{
		FileID: filepath.Base(path),
		Path:   path,
		HTML:   html,
	}, nil
}

func (f *Fetcher) decode(raw []byte) (string, error) {
	label := f.encoding
	if label == EncodingAuto {
		_, name, certain := charset.DetermineEncoding(raw, "text/html")
		if certain || name != "windows-1252" {
			label = name
		} else {
			label = fallbackEncoding
		}
	}

	r, err := charset.NewReaderLabel(label, bytes.NewReader(raw))
	if err != nil {
		return "", err
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// List returns the regular files in dir whose names match the glob pattern,
// ignoring case. A missing directory is an error; an empty one is not.
func List(dir, pattern string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, berrors.NewIO("list", dir, err)
	}

	upperPattern := strings.ToUpper(pattern)
	if _, err := filepath.Match(upperPattern, ""); err != nil {
		return nil, berrors.NewValidation("pattern", err.Error())
	}

	var paths []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if ok, _ := filepath.Match(upperPattern, strings.ToUpper(e.Name())); ok {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	return paths, nil
}
