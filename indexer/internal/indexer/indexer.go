// Package indexer builds the stemmed TF-IDF index of the corpus verses. Runs
// are resumable: verses are read in id order and each batch is committed with
// the last indexed id.
package indexer

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/javijec/new-biblia/indexer/internal/reader"
	"github.com/javijec/new-biblia/internal/logging"
	"github.com/javijec/new-biblia/internal/storage"
	"github.com/javijec/new-biblia/internal/textprocessor"
)

const defaultBatchSize = 1000

// Stats summarises one IndexAll run.
type Stats struct {
	Indexed  int
	Skipped  int
	Total    int
	Reset    bool
	Duration time.Duration
}

type Indexer struct {
	corpus    *reader.CorpusReader
	indexDB   *storage.IndexDB
	processor *textprocessor.TextProcessor
	batchSize int
}

func NewIndexer(corpusDBPath, indexDBPath string, batchSize int) (*Indexer, error) {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	corpus, err := reader.NewCorpusReader(corpusDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus DB: %w", err)
	}

	indexDB, err := storage.NewIndexDB(indexDBPath)
	if err != nil {
		corpus.Close()
		return nil, fmt.Errorf("failed to open index DB: %w", err)
	}

	return &Indexer{
		corpus:    corpus,
		indexDB:   indexDB,
		processor: textprocessor.NewTextProcessor(),
		batchSize: batchSize,
	}, nil
}

func (idx *Indexer) Close() error {
	idx.corpus.Close()
	return idx.indexDB.Close()
}

// IndexAll indexes every verse not yet in the index, then recomputes TF-IDF.
// An index built from a different corpus build is discarded first.
func (idx *Indexer) IndexAll(ctx context.Context) (Stats, error) {
	start := time.Now()
	var stats Stats

	reset, err := idx.syncBuildID()
	if err != nil {
		return stats, err
	}
	stats.Reset = reset

	total, err := idx.corpus.GetTotalVerseCount()
	if err != nil {
		return stats, fmt.Errorf("failed to count verses: %w", err)
	}
	stats.Total = total

	lastID, err := idx.indexDB.GetLastIndexedVerseID()
	if err != nil {
		return stats, fmt.Errorf("failed to read resume point: %w", err)
	}
	already, err := idx.indexDB.GetIndexedVerseCount()
	if err != nil {
		return stats, err
	}
	logging.Info("indexing corpus", "verses", total, "already_indexed", already, "resume_after", lastID)

	if err := idx.indexDB.SetMetadata("indexing_complete", "false"); err != nil {
		return stats, err
	}

	for {
		if err := ctx.Err(); err != nil {
			logging.Warn("indexing interrupted", "indexed", stats.Indexed, "last_id", lastID)
			return stats, err
		}

		verses, err := idx.corpus.GetVersesAfterID(lastID, idx.batchSize)
		if err != nil {
			return stats, fmt.Errorf("failed to read verses after %d: %w", lastID, err)
		}
		if len(verses) == 0 {
			break
		}

		indexed, skipped, err := idx.indexBatch(verses)
		if err != nil {
			return stats, err
		}
		stats.Indexed += indexed
		stats.Skipped += skipped
		lastID = verses[len(verses)-1].ID

		logging.Info("batch indexed",
			"indexed", already+stats.Indexed+stats.Skipped,
			"of", total,
			"last_id", lastID,
		)
	}

	logging.Info("recalculating TF-IDF scores")
	if err := idx.indexDB.RecalculateTFIDF(); err != nil {
		return stats, fmt.Errorf("failed to recalculate TF-IDF: %w", err)
	}

	count, err := idx.indexDB.GetIndexedVerseCount()
	if err != nil {
		return stats, err
	}
	if err := idx.indexDB.SetMetadata("total_documents", strconv.Itoa(count)); err != nil {
		return stats, err
	}
	if err := idx.indexDB.SetMetadata("indexing_complete", "true"); err != nil {
		return stats, err
	}

	stats.Duration = time.Since(start)
	logging.Info("indexing complete",
		"indexed", stats.Indexed,
		"empty", stats.Skipped,
		"total_documents", count,
		"duration", stats.Duration.Round(time.Millisecond),
	)
	return stats, nil
}

// syncBuildID resets the index when it was built from another corpus build and
// records the current build id.
func (idx *Indexer) syncBuildID() (bool, error) {
	current, err := idx.corpus.BuildID()
	if err != nil {
		return false, fmt.Errorf("failed to read corpus build id: %w", err)
	}
	indexed, err := idx.indexDB.GetMetadata("corpus_build_id")
	if err != nil {
		return false, fmt.Errorf("failed to read index build id: %w", err)
	}
	if indexed == current {
		return false, nil
	}

	reset := false
	if count, err := idx.indexDB.GetIndexedVerseCount(); err != nil {
		return false, err
	} else if count > 0 {
		logging.Warn("corpus was rebuilt, discarding index", "previous_build", indexed, "current_build", current)
		if err := idx.indexDB.Reset(); err != nil {
			return false, fmt.Errorf("failed to reset index: %w", err)
		}
		reset = true
	}
	return reset, idx.indexDB.SetMetadata("corpus_build_id", current)
}

// indexBatch stores one batch of verses in a single transaction along with the
// new resume point.
func (idx *Indexer) indexBatch(verses []*reader.Verse) (indexed, skipped int, err error) {
	tx, err := idx.indexDB.BeginTransaction()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, v := range verses {
		processed := idx.processor.ProcessVerse(v.Text)
		doc := storage.IndexedVerse{
			DocID:    v.ID,
			BookID:   v.BookID,
			BookName: v.BookName,
			Chapter:  v.Chapter,
			Verse:    v.Number,
			Text:     v.Text,
		}
		if err := idx.indexDB.SaveVerseInTransaction(tx, doc, processed.TermFrequencies, processed.TotalTerms); err != nil {
			return 0, 0, fmt.Errorf("failed to index verse %d: %w", v.ID, err)
		}
		if processed.TotalTerms == 0 {
			skipped++
		} else {
			indexed++
		}
	}

	last := verses[len(verses)-1].ID
	if _, err := tx.Exec(
		"INSERT OR REPLACE INTO index_metadata (key, value, updated_at) VALUES ('last_indexed_verse_id', ?, CURRENT_TIMESTAMP)",
		strconv.Itoa(last),
	); err != nil {
		return 0, 0, fmt.Errorf("failed to save resume point: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("failed to commit batch: %w", err)
	}
	return indexed, skipped, nil
}
