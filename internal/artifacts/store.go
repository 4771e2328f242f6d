// Package artifacts reads and writes the JSON documents produced by the build:
// the raw corpus, one file per book, the book index, the reference map and the
// consolidation report. Writes are atomic; files may be zstd-compressed.
package artifacts

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/zeebo/blake3"

	"github.com/javijec/new-biblia/internal/corpus"
	berrors "github.com/javijec/new-biblia/internal/errors"
)

const (
	CorpusName     = "bible-complete"
	BooksDir       = "books"
	IndexName      = corpus.IndexID
	ReferencesName = "verse-refs"
	ReportName     = "duplicates"

	jsonExt = ".json"
	zstdExt = ".zst"
)

// Compression selects how artifacts are written.
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionZstd Compression = "zstd"
)

// ParseCompression maps a config value to a Compression; "" means none.
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	}
	return CompressionNone, fmt.Errorf("%w: compression %q", berrors.ErrUnsupported, s)
}

type Store struct {
	root        string
	compression Compression
}

func NewStore(root string, compression Compression) *Store {
	if compression == "" {
		compression = CompressionNone
	}
	return &Store{root: root, compression: compression}
}

func (s *Store) Root() string {
	return s.root
}

// WriteCorpus writes bible-complete.json.
func (s *Store) WriteCorpus(raw *corpus.RawCorpus) error {
	_, err := s.writeJSON(CorpusName, raw)
	return err
}

func (s *Store) LoadCorpus() (*corpus.RawCorpus, error) {
	var raw corpus.RawCorpus
	if err := s.readJSON(CorpusName, "corpus", CorpusName, &raw); err != nil {
		return nil, err
	}
	return &raw, nil
}

// WriteBook writes books/<id>.json and returns the BLAKE3 checksum of its
// uncompressed JSON.
func (s *Store) WriteBook(book *corpus.Book) (string, error) {
	if err := validateID(book.ID); err != nil {
		return "", err
	}
	return s.writeJSON(filepath.Join(BooksDir, book.ID), book)
}

// LoadBook reads one book, compressed or not. A missing book yields a NotFoundError.
func (s *Store) LoadBook(id string) (*corpus.Book, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	var book corpus.Book
	if err := s.readJSON(filepath.Join(BooksDir, id), "book", id, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

func (s *Store) WriteIndex(idx *corpus.BookIndex) error {
	_, err := s.writeJSON(filepath.Join(BooksDir, IndexName), idx)
	return err
}

func (s *Store) LoadIndex() (*corpus.BookIndex, error) {
	var idx corpus.BookIndex
	if err := s.readJSON(filepath.Join(BooksDir, IndexName), "book index", IndexName, &idx); err != nil {
		return nil, err
	}
	return &idx, nil
}

func (s *Store) WriteReferences(refs corpus.ReferenceMap) error {
	if refs == nil {
		refs = corpus.ReferenceMap{}
	}
	_, err := s.writeJSON(ReferencesName, refs)
	return err
}

func (s *Store) LoadReferences() (corpus.ReferenceMap, error) {
	refs := corpus.ReferenceMap{}
	if err := s.readJSON(ReferencesName, "references", ReferencesName, &refs); err != nil {
		return nil, err
	}
	return refs, nil
}

// WriteReport writes duplicates.json.
func (s *Store) WriteReport(report any) error {
	_, err := s.writeJSON(ReportName, report)
	return err
}

func (s *Store) LoadReport(v any) error {
	return s.readJSON(ReportName, "report", ReportName, v)
}

// Checksum returns the hex BLAKE3-256 digest of data.
func Checksum(data []byte) string {
	h := blake3.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Encode renders v the way artifacts are stored: two-space indent, no HTML escaping.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Store) writeJSON(name string, v any) (string, error) {
	data, err := Encode(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", name, err)
	}
	sum := Checksum(data)

	path := filepath.Join(s.root, name+jsonExt)
	if s.compression == CompressionZstd {
		data, err = compress(data)
		if err != nil {
			return "", fmt.Errorf("failed to compress %s: %w", name, err)
		}
		path += zstdExt
	}

	if err := writeFileAtomic(path, data); err != nil {
		return "", err
	}
	return sum, nil
}

// readJSON tries the configured variant first, then the other one.
func (s *Store) readJSON(name, resource, id string, v any) error {
	plain := filepath.Join(s.root, name+jsonExt)
	candidates := []string{plain, plain + zstdExt}
	if s.compression == CompressionZstd {
		candidates[0], candidates[1] = candidates[1], candidates[0]
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return berrors.NewIO("read", path, err)
		}
		if strings.HasSuffix(path, zstdExt) {
			if data, err = decompress(data); err != nil {
				return berrors.NewIO("decompress", path, err)
			}
		}
		if err := json.Unmarshal(data, v); err != nil {
			return berrors.NewParse("JSON", path, "invalid artifact", err)
		}
		return nil
	}
	return berrors.NewNotFound(resource, id)
}

func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(data); err != nil {
		zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompress(data []byte) ([]byte, error) {
	zr, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

// writeFileAtomic writes to a temp file in the target directory and renames it
// into place.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return berrors.NewIO("create", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp_artifact_*")
	if err != nil {
		return berrors.NewIO("create", dir, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return berrors.NewIO("write", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return berrors.NewIO("sync", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return berrors.NewIO("close", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return berrors.NewIO("chmod", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return berrors.NewIO("rename", path, err)
	}
	return nil
}

func validateID(id string) error {
	if !corpus.ValidID(id) {
		return berrors.NewValidation("book id", fmt.Sprintf("invalid id %q", id))
	}
	return nil
}
