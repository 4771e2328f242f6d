// Package reader reads verses from the corpus database written by the builder.
package reader

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	berrors "github.com/javijec/new-biblia/internal/errors"
)

// Verse is one corpus verse with its location. ID follows corpus order.
type Verse struct {
	ID       int
	BookID   string
	BookName string
	Chapter  int
	Number   int
	Text     string
}

type CorpusReader struct {
	db *sql.DB
}

// NewCorpusReader opens an existing corpus database. A missing file is a
// NotFoundError rather than a new empty database.
func NewCorpusReader(dbPath string) (*CorpusReader, error) {
	if _, err := os.Stat(dbPath); err != nil {
		if os.IsNotExist(err) {
			return nil, berrors.NewNotFound("corpus database", dbPath)
		}
		return nil, berrors.NewIO("stat", dbPath, err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus database: %w", err)
	}

	return &CorpusReader{db: db}, nil
}

func (r *CorpusReader) Close() error {
	return r.db.Close()
}

func (r *CorpusReader) GetVerseByID(id int) (*Verse, error) {
	v := &Verse{}
	err := r.db.QueryRow(`
		SELECT v.id, v.book_id, b.name, v.chapter, v.number, v.text
		FROM verses v JOIN books b ON b.id = v.book_id
		WHERE v.id = ?`,
		id,
	).Scan(&v.ID, &v.BookID, &v.BookName, &v.Chapter, &v.Number, &v.Text)

	if err == sql.ErrNoRows {
		return nil, berrors.NewNotFound("verse", fmt.Sprint(id))
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// GetVersesAfterID returns up to limit verses with id greater than afterID, in id order.
func (r *CorpusReader) GetVersesAfterID(afterID int, limit int) ([]*Verse, error) {
	rows, err := r.db.Query(`
		SELECT v.id, v.book_id, b.name, v.chapter, v.number, v.text
		FROM verses v JOIN books b ON b.id = v.book_id
		WHERE v.id > ?
		ORDER BY v.id
		LIMIT ?`,
		afterID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var verses []*Verse
	for rows.Next() {
		v := &Verse{}
		if err := rows.Scan(&v.ID, &v.BookID, &v.BookName, &v.Chapter, &v.Number, &v.Text); err != nil {
			return nil, err
		}
		verses = append(verses, v)
	}

	return verses, rows.Err()
}

func (r *CorpusReader) GetTotalVerseCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM verses").Scan(&count)
	return count, err
}

// BuildID returns the id the builder stamped on this corpus, or "" if none.
func (r *CorpusReader) BuildID() (string, error) {
	var id string
	err := r.db.QueryRow("SELECT value FROM corpus_metadata WHERE key = 'build_id'").Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return id, err
}
