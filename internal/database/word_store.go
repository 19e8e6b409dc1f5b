package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/miickii/HSKTrainer-sub000/pkg/models"
)

const wordColumns = `id, simplified, traditional, pinyin, meanings, level, examples,
	srs_level, next_review, correct_count, incorrect_count, last_practiced, is_favorite`

// WordStore handles storage operations for vocabulary entries.
type WordStore struct {
	db  *sqlx.DB
	log *zap.Logger
}

// NewWordStore creates a new word store.
func NewWordStore(db *sqlx.DB, log *zap.Logger) *WordStore {
	return &WordStore{db: db, log: log}
}

// GetAll returns every stored word. Rows that fail to decode are
// logged and skipped rather than failing the whole read.
func (s *WordStore) GetAll(ctx context.Context) ([]models.Word, error) {
	var rows []wordRow
	err := s.db.SelectContext(ctx, &rows, `SELECT `+wordColumns+` FROM words ORDER BY simplified`)
	if err != nil {
		return nil, fmt.Errorf("failed to get words: %w", err)
	}

	words := make([]models.Word, 0, len(rows))
	for i := range rows {
		w, err := rows[i].toModel()
		if err != nil {
			s.log.Warn("skipping undecodable word row", zap.String("id", rows[i].ID), zap.Error(err))
			continue
		}
		words = append(words, *w)
	}
	return words, nil
}

// Get returns the word with the given id, or nil if it does not exist.
func (s *WordStore) Get(ctx context.Context, id string) (*models.Word, error) {
	var row wordRow
	query := s.db.Rebind(`SELECT ` + wordColumns + ` FROM words WHERE id = ?`)
	err := s.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word %s: %w", id, err)
	}
	return row.toModel()
}

// Put inserts or replaces the word keyed by its id. Idempotent.
func (s *WordStore) Put(ctx context.Context, w *models.Word) error {
	row, err := rowFromModel(w)
	if err != nil {
		return err
	}
	query := s.db.Rebind(`
		INSERT INTO words (` + wordColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			simplified = excluded.simplified,
			traditional = excluded.traditional,
			pinyin = excluded.pinyin,
			meanings = excluded.meanings,
			level = excluded.level,
			examples = excluded.examples,
			srs_level = excluded.srs_level,
			next_review = excluded.next_review,
			correct_count = excluded.correct_count,
			incorrect_count = excluded.incorrect_count,
			last_practiced = excluded.last_practiced,
			is_favorite = excluded.is_favorite
	`)
	_, err = s.db.ExecContext(ctx, query,
		row.ID,
		row.Simplified,
		row.Traditional,
		row.Pinyin,
		row.Meanings,
		row.Level,
		row.Examples,
		row.SRSLevel,
		row.NextReview,
		row.CorrectCount,
		row.IncorrectCount,
		row.LastPracticed,
		row.IsFavorite,
	)
	if err != nil {
		return fmt.Errorf("failed to put word %s: %w", w.ID, err)
	}
	return nil
}

// ScanDueBefore returns an iterator over words whose next_review is on
// or before date, ordered by next_review ascending. The caller must
// Close it. Undecodable rows are logged and skipped.
func (s *WordStore) ScanDueBefore(ctx context.Context, date string) (*WordIterator, error) {
	query := s.db.Rebind(`
		SELECT ` + wordColumns + ` FROM words
		WHERE next_review <= ?
		ORDER BY next_review ASC
	`)
	rows, err := s.db.QueryxContext(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to scan due words: %w", err)
	}
	return &WordIterator{rows: rows, log: s.log}, nil
}

// Clear removes every word. Used only as the first step of a full
// reimport; its failure aborts the reimport.
func (s *WordStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM words`); err != nil {
		return fmt.Errorf("failed to clear words: %w", err)
	}
	return nil
}

// Count returns the number of stored words.
func (s *WordStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM words`); err != nil {
		return 0, fmt.Errorf("failed to count words: %w", err)
	}
	return n, nil
}

// WordIterator walks a result set lazily so due-word queries do not
// load the whole table.
type WordIterator struct {
	rows *sqlx.Rows
	log  *zap.Logger
	cur  *models.Word
	err  error
}

// Next advances to the next decodable word. It returns false when the
// result set is exhausted or a storage error occurred.
func (it *WordIterator) Next() bool {
	for it.rows.Next() {
		var row wordRow
		if err := it.rows.StructScan(&row); err != nil {
			it.log.Warn("skipping unscannable word row", zap.Error(err))
			continue
		}
		w, err := row.toModel()
		if err != nil {
			it.log.Warn("skipping undecodable word row", zap.String("id", row.ID), zap.Error(err))
			continue
		}
		it.cur = w
		return true
	}
	it.err = it.rows.Err()
	return false
}

// Word returns the word positioned by the last successful Next.
func (it *WordIterator) Word() *models.Word { return it.cur }

// Err returns the storage error that terminated iteration, if any.
func (it *WordIterator) Err() error { return it.err }

// Close releases the underlying result set.
func (it *WordIterator) Close() error { return it.rows.Close() }
