package storage

import (
	"database/sql"
	"fmt"
	"math"

	_ "github.com/mattn/go-sqlite3"
)

type IndexDB struct {
	db *sql.DB
}

// IndexedVerse is one verse as stored next to its postings.
type IndexedVerse struct {
	DocID    int
	BookID   string
	BookName string
	Chapter  int
	Verse    int
	Text     string
}

// Hit is a ranked search result.
type Hit struct {
	IndexedVerse
	Score float64
}

func NewIndexDB(dbPath string) (*IndexDB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open index database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	indexDB := &IndexDB{
		db: db,
	}

	if err := indexDB.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return indexDB, nil
}

func (idb *IndexDB) initSchema() error {
	_, err := idb.db.Exec(Schema)
	return err
}

func (idb *IndexDB) IsVerseIndexed(docID int) (bool, error) {
	var exists bool
	err := idb.db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM indexed_verses WHERE doc_id = ?)",
		docID,
	).Scan(&exists)
	return exists, err
}

func (idb *IndexDB) GetLastIndexedVerseID() (int, error) {
	var lastID int
	err := idb.db.QueryRow(
		"SELECT COALESCE(MAX(doc_id), 0) FROM indexed_verses",
	).Scan(&lastID)
	return lastID, err
}

func (idb *IndexDB) GetIndexedVerseCount() (int, error) {
	var count int
	err := idb.db.QueryRow("SELECT COUNT(*) FROM indexed_verses").Scan(&count)
	return count, err
}

func (idb *IndexDB) BeginTransaction() (*sql.Tx, error) {
	return idb.db.Begin()
}

func (idb *IndexDB) SetMetadata(key, value string) error {
	_, err := idb.db.Exec(
		"INSERT OR REPLACE INTO index_metadata (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)",
		key, value,
	)
	return err
}

func (idb *IndexDB) GetMetadata(key string) (string, error) {
	var value string
	err := idb.db.QueryRow(
		"SELECT value FROM index_metadata WHERE key = ?",
		key,
	).Scan(&value)
	return value, err
}

// Reset drops every indexed verse, term and posting. Metadata is reset to its
// initial values.
func (idb *IndexDB) Reset() error {
	tx, err := idb.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"postings", "doc_stats", "terms", "indexed_verses", "index_metadata"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	if _, err := tx.Exec(Schema); err != nil {
		return fmt.Errorf("failed to reinitialize schema: %w", err)
	}
	return tx.Commit()
}

func (idb *IndexDB) Close() error {
	return idb.db.Close()
}

func (idb *IndexDB) RecalculateTFIDF() error {
	totalDocs, err := idb.GetIndexedVerseCount()
	if err != nil {
		return fmt.Errorf("failed to get total document count: %w", err)
	}

	rows, err := idb.db.Query("SELECT term_id, document_frequency FROM terms WHERE document_frequency > 0")
	if err != nil {
		return fmt.Errorf("failed to query terms: %w", err)
	}
	defer rows.Close()

	type termInfo struct {
		termID int64
		idf    float64
	}
	var terms []termInfo

	for rows.Next() {
		var termID int64
		var docFreq int
		if err := rows.Scan(&termID, &docFreq); err != nil {
			return fmt.Errorf("failed to scan term: %w", err)
		}

		// Smoothed so a term present in every verse still ranks above zero.
		idf := math.Log(1 + float64(totalDocs)/float64(docFreq))
		terms = append(terms, termInfo{termID: termID, idf: idf})
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating terms: %w", err)
	}

	tx, err := idb.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	updateTermStmt, err := tx.Prepare("UPDATE terms SET idf = ? WHERE term_id = ?")
	if err != nil {
		return err
	}
	defer updateTermStmt.Close()

	for _, term := range terms {
		if _, err := updateTermStmt.Exec(term.idf, term.termID); err != nil {
			return fmt.Errorf("failed to update IDF for term %d: %w", term.termID, err)
		}
	}

	updatePostingStmt, err := tx.Prepare(`
		UPDATE postings
		SET tf = CAST(term_frequency AS REAL) / (SELECT doc_length FROM doc_stats WHERE doc_stats.doc_id = postings.doc_id),
		    tfidf = (CAST(term_frequency AS REAL) / (SELECT doc_length FROM doc_stats WHERE doc_stats.doc_id = postings.doc_id)) * (SELECT idf FROM terms WHERE terms.term_id = postings.term_id)
		WHERE term_id = ?
	`)
	if err != nil {
		return err
	}
	defer updatePostingStmt.Close()

	for _, term := range terms {
		if _, err := updatePostingStmt.Exec(term.termID); err != nil {
			return fmt.Errorf("failed to update postings for term %d: %w", term.termID, err)
		}
	}

	if _, err := tx.Exec("UPDATE index_metadata SET value = ? WHERE key = 'total_documents'", totalDocs); err != nil {
		return fmt.Errorf("failed to update total documents: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// SaveVerseInTransaction records a verse, its stats and its postings. Verses
// with no terms are still marked indexed so resumption skips them.
func (idb *IndexDB) SaveVerseInTransaction(tx *sql.Tx, verse IndexedVerse, termFreqs map[string]int, docLength int) error {
	_, err := tx.Exec(
		"INSERT OR IGNORE INTO indexed_verses (doc_id, book_id, book_name, chapter, verse, text) VALUES (?, ?, ?, ?, ?, ?)",
		verse.DocID, verse.BookID, verse.BookName, verse.Chapter, verse.Verse, verse.Text,
	)
	if err != nil {
		return fmt.Errorf("failed to mark verse as indexed: %w", err)
	}

	if docLength == 0 {
		return nil
	}

	_, err = tx.Exec(
		"INSERT OR REPLACE INTO doc_stats (doc_id, doc_length, unique_terms) VALUES (?, ?, ?)",
		verse.DocID, docLength, len(termFreqs),
	)
	if err != nil {
		return fmt.Errorf("failed to save doc stats: %w", err)
	}

	getTermStmt, err := tx.Prepare("SELECT term_id FROM terms WHERE term = ?")
	if err != nil {
		return err
	}
	defer getTermStmt.Close()

	insertTermStmt, err := tx.Prepare("INSERT INTO terms (term, document_frequency) VALUES (?, 1)")
	if err != nil {
		return err
	}
	defer insertTermStmt.Close()

	updateDFStmt, err := tx.Prepare("UPDATE terms SET document_frequency = document_frequency + 1 WHERE term_id = ?")
	if err != nil {
		return err
	}
	defer updateDFStmt.Close()

	insertPostingStmt, err := tx.Prepare("INSERT INTO postings (term_id, doc_id, term_frequency) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer insertPostingStmt.Close()

	for term, freq := range termFreqs {
		var termID int64

		err := getTermStmt.QueryRow(term).Scan(&termID)
		if err == sql.ErrNoRows {
			result, err := insertTermStmt.Exec(term)
			if err != nil {
				return fmt.Errorf("failed to insert term %q: %w", term, err)
			}
			termID, err = result.LastInsertId()
			if err != nil {
				return err
			}
		} else if err != nil {
			return fmt.Errorf("failed to query term %q: %w", term, err)
		} else {
			_, err = updateDFStmt.Exec(termID)
			if err != nil {
				return fmt.Errorf("failed to update document frequency for term %q: %w", term, err)
			}
		}

		_, err = insertPostingStmt.Exec(termID, verse.DocID, freq)
		if err != nil {
			return fmt.Errorf("failed to insert posting for term %q: %w", term, err)
		}
	}

	return nil
}

// Search ranks verses containing any of terms by summed TF-IDF, best first,
// and returns the requested page plus the total number of matching verses.
func (idb *IndexDB) Search(terms []string, limit, offset int) ([]Hit, int, error) {
	if len(terms) == 0 {
		return nil, 0, nil
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	args := make([]any, 0, len(terms)+2)
	for _, t := range terms {
		args = append(args, t)
	}
	in := placeholders(len(terms))

	var total int
	err := idb.db.QueryRow(`
		SELECT COUNT(DISTINCT p.doc_id)
		FROM postings p
		JOIN terms t ON t.term_id = p.term_id
		WHERE t.term IN (`+in+`)
	`, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count matches: %w", err)
	}
	if total == 0 {
		return nil, 0, nil
	}

	rows, err := idb.db.Query(`
		SELECT v.doc_id, v.book_id, v.book_name, v.chapter, v.verse, v.text, SUM(p.tfidf) AS score
		FROM postings p
		JOIN terms t ON t.term_id = p.term_id
		JOIN indexed_verses v ON v.doc_id = p.doc_id
		WHERE t.term IN (`+in+`)
		GROUP BY v.doc_id
		ORDER BY score DESC, v.doc_id ASC
		LIMIT ? OFFSET ?
	`, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search: %w", err)
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var h Hit
		if err := rows.Scan(&h.DocID, &h.BookID, &h.BookName, &h.Chapter, &h.Verse, &h.Text, &h.Score); err != nil {
			return nil, 0, fmt.Errorf("failed to scan hit: %w", err)
		}
		hits = append(hits, h)
	}
	return hits, total, rows.Err()
}
