package storage

const Schema = `
-- Terms dictionary: stemmed terms from all verses
CREATE TABLE IF NOT EXISTS terms (
    term_id INTEGER PRIMARY KEY AUTOINCREMENT,
    term TEXT UNIQUE NOT NULL,
    document_frequency INTEGER DEFAULT 0,
    idf REAL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_terms_term ON terms(term);

-- Postings list: inverted index mapping terms to verses
CREATE TABLE IF NOT EXISTS postings (
    term_id INTEGER NOT NULL,
    doc_id INTEGER NOT NULL,
    term_frequency INTEGER NOT NULL,
    tf REAL DEFAULT 0,
    tfidf REAL DEFAULT 0,
    PRIMARY KEY (term_id, doc_id),
    FOREIGN KEY (term_id) REFERENCES terms(term_id),
    FOREIGN KEY (doc_id) REFERENCES indexed_verses(doc_id)
);
CREATE INDEX IF NOT EXISTS idx_postings_term ON postings(term_id);
CREATE INDEX IF NOT EXISTS idx_postings_doc ON postings(doc_id);
CREATE INDEX IF NOT EXISTS idx_postings_term_tfidf ON postings(term_id, tfidf DESC, doc_id);

-- Document statistics: metadata for TF-IDF normalization
CREATE TABLE IF NOT EXISTS doc_stats (
    doc_id INTEGER PRIMARY KEY,
    doc_length INTEGER NOT NULL,      -- total number of terms in the verse
    unique_terms INTEGER NOT NULL,
    indexed_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (doc_id) REFERENCES indexed_verses(doc_id)
);

-- Verses already indexed, with enough of the verse to render a hit.
-- doc_id is verses.id from the corpus DB, so indexing can resume.
CREATE TABLE IF NOT EXISTS indexed_verses (
    doc_id INTEGER PRIMARY KEY,
    book_id TEXT NOT NULL,
    book_name TEXT NOT NULL,
    chapter INTEGER NOT NULL,
    verse INTEGER NOT NULL,
    text TEXT NOT NULL,
    indexed_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_indexed_verses_book ON indexed_verses(book_id, chapter);

-- Index metadata: track global indexing state
CREATE TABLE IF NOT EXISTS index_metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

INSERT OR IGNORE INTO index_metadata (key, value) VALUES
    ('total_documents', '0'),
    ('last_indexed_verse_id', '0'),
    ('corpus_build_id', ''),
    ('index_version', '1'),
    ('indexing_complete', 'false');
`
