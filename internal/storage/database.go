package storage

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/javijec/new-biblia/internal/corpus"
)

// CorpusDB is the SQLite export of the consolidated corpus read by the indexer.
type CorpusDB struct {
	db *sql.DB
}

func NewCorpusDB(dbPath string) (*CorpusDB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	database := &CorpusDB{db: db}

	if err := database.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return database, nil
}

func (d *CorpusDB) initSchema() error {
	schema := `
	-- Books in corpus order
	CREATE TABLE IF NOT EXISTS books (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		testament TEXT,
		abbreviation TEXT,
		chapter_count INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS chapters (
		book_id TEXT NOT NULL,
		number INTEGER NOT NULL,
		file TEXT NOT NULL,
		PRIMARY KEY (book_id, number),
		FOREIGN KEY (book_id) REFERENCES books(id)
	);

	-- Verses: id order is corpus order, which the indexer resumes on
	CREATE TABLE IF NOT EXISTS verses (
		id INTEGER PRIMARY KEY,
		book_id TEXT NOT NULL,
		chapter INTEGER NOT NULL,
		number INTEGER NOT NULL,
		text TEXT NOT NULL,
		FOREIGN KEY (book_id) REFERENCES books(id)
	);
	CREATE INDEX IF NOT EXISTS idx_verses_location ON verses(book_id, chapter, number);

	-- Refs: outbound links keyed the same way as verse-refs.json
	CREATE TABLE IF NOT EXISTS refs (
		ref_key TEXT NOT NULL,
		position INTEGER NOT NULL,
		href TEXT NOT NULL,
		text TEXT,
		PRIMARY KEY (ref_key, position)
	);

	CREATE TABLE IF NOT EXISTS corpus_metadata (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := d.db.Exec(schema)
	return err
}

// SaveBooks replaces the stored corpus with books and stamps a new build id.
// Verse ids restart at 1 and follow book, chapter and verse order.
func (d *CorpusDB) SaveBooks(books []corpus.Book) (string, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	for _, table := range []string{"verses", "chapters", "books"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return "", fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	bookStmt, err := tx.Prepare(`
		INSERT INTO books (id, position, name, testament, abbreviation, chapter_count)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return "", err
	}
	defer bookStmt.Close()

	chapterStmt, err := tx.Prepare("INSERT INTO chapters (book_id, number, file) VALUES (?, ?, ?)")
	if err != nil {
		return "", err
	}
	defer chapterStmt.Close()

	verseStmt, err := tx.Prepare("INSERT INTO verses (id, book_id, chapter, number, text) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return "", err
	}
	defer verseStmt.Close()

	verseID := 0
	for i, book := range books {
		if _, err := bookStmt.Exec(book.ID, i, book.Name, string(book.Testament), book.Abbreviation, len(book.Chapters)); err != nil {
			return "", fmt.Errorf("failed to insert book %q: %w", book.ID, err)
		}
		for _, ch := range book.Chapters {
			if _, err := chapterStmt.Exec(book.ID, ch.Number, ch.File); err != nil {
				return "", fmt.Errorf("failed to insert chapter %s %d: %w", book.ID, ch.Number, err)
			}
			for _, v := range ch.Verses {
				verseID++
				if _, err := verseStmt.Exec(verseID, book.ID, ch.Number, v.Number, v.Text); err != nil {
					return "", fmt.Errorf("failed to insert verse %s %d:%d: %w", book.ID, ch.Number, v.Number, err)
				}
			}
		}
	}

	buildID := uuid.NewString()
	if _, err := tx.Exec("INSERT OR REPLACE INTO corpus_metadata (key, value) VALUES ('build_id', ?)", buildID); err != nil {
		return "", fmt.Errorf("failed to save build id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return buildID, nil
}

// SaveReferences replaces the stored reference map.
func (d *CorpusDB) SaveReferences(refs corpus.ReferenceMap) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM refs"); err != nil {
		return err
	}

	stmt, err := tx.Prepare("INSERT INTO refs (ref_key, position, href, text) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	keys := make([]string, 0, len(refs))
	for k := range refs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		for i, r := range refs[k] {
			if _, err := stmt.Exec(k, i, r.Href, r.Text); err != nil {
				return fmt.Errorf("failed to insert reference %q: %w", k, err)
			}
		}
	}
	return tx.Commit()
}

// GetReferences returns the links stored for a verse; file may use either
// naming convention.
func (d *CorpusDB) GetReferences(file string, verse int) ([]corpus.Reference, error) {
	key := corpus.ReferenceKey(corpus.NormalizeReferenceFile(file), verse)
	rows, err := d.db.Query("SELECT href, text FROM refs WHERE ref_key = ? ORDER BY position", key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []corpus.Reference
	for rows.Next() {
		var r corpus.Reference
		var text sql.NullString
		if err := rows.Scan(&r.Href, &text); err != nil {
			return nil, err
		}
		r.Text = text.String
		refs = append(refs, r)
	}
	return refs, rows.Err()
}

func (d *CorpusDB) BuildID() (string, error) {
	var id string
	err := d.db.QueryRow("SELECT value FROM corpus_metadata WHERE key = 'build_id'").Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return id, err
}

func (d *CorpusDB) GetBookCount() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM books").Scan(&count)
	return count, err
}

func (d *CorpusDB) GetVerseCount() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM verses").Scan(&count)
	return count, err
}

func (d *CorpusDB) Close() error {
	return d.db.Close()
}

// placeholders returns "?, ?, ..." for n parameters.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
