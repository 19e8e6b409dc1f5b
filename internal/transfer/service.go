// Package transfer implements the bulk boundary of the trainer:
// full-replace vocabulary import from a feed, and export/import of the
// learning-progress snapshot that lets a user survive a reimport.
package transfer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/miickii/HSKTrainer-sub000/internal/database"
	"github.com/miickii/HSKTrainer-sub000/internal/srs"
	"github.com/miickii/HSKTrainer-sub000/pkg/models"
)

var (
	// ErrEmptyFeed rejects an import with no records before anything
	// is touched.
	ErrEmptyFeed = errors.New("vocabulary feed is empty")
	// ErrInvalidFormat rejects a malformed progress snapshot before
	// anything is touched.
	ErrInvalidFormat = errors.New("invalid progress snapshot format")
)

// Service performs bulk import and export against the store.
type Service struct {
	store     *database.WordStore
	log       *zap.Logger
	now       func() time.Time
	batchSize int
}

// New creates a transfer service with the default batch size.
func New(store *database.WordStore, log *zap.Logger) *Service {
	return &Service{
		store:     store,
		log:       log,
		now:       time.Now,
		batchSize: 100,
	}
}

// ImportFromRemote replaces the whole vocabulary corpus with the feed
// records: existing entries (including learning progress) are cleared,
// then the normalized records are written in batches. Records that
// fail to persist are logged and skipped; the returned count is what
// was actually written. Export progress first if it matters.
func (s *Service) ImportFromRemote(ctx context.Context, records []models.FeedRecord) (int, error) {
	if len(records) == 0 {
		return 0, ErrEmptyFeed
	}
	today := srs.Today(s.now())

	words := make([]models.Word, 0, len(records))
	for i, rec := range records {
		if rec.ID == "" || rec.Simplified == "" {
			s.log.Warn("skipping feed record without id or simplified form", zap.Int("index", i))
			continue
		}
		words = append(words, normalize(rec, today))
	}
	// A feed with nothing usable must not wipe the corpus.
	if len(words) == 0 {
		return 0, ErrEmptyFeed
	}

	if err := s.store.Clear(ctx); err != nil {
		return 0, fmt.Errorf("import aborted: %w", err)
	}

	imported := 0
	for start := 0; start < len(words); start += s.batchSize {
		end := start + s.batchSize
		if end > len(words) {
			end = len(words)
		}
		for i := start; i < end; i++ {
			if err := s.store.Put(ctx, &words[i]); err != nil {
				s.log.Warn("import skipped word", zap.String("id", words[i].ID), zap.Error(err))
				continue
			}
			imported++
		}
	}
	s.log.Info("vocabulary import finished",
		zap.Int("imported", imported),
		zap.Int("received", len(records)))
	return imported, nil
}

// normalize turns a raw feed record into a stored word with progress
// fields at their defaults.
func normalize(rec models.FeedRecord, today string) models.Word {
	traditional := rec.Traditional
	if traditional == "" {
		traditional = rec.Simplified
	}
	return models.Word{
		ID:          rec.ID,
		Simplified:  rec.Simplified,
		Traditional: traditional,
		Pinyin:      rec.Pinyin,
		Meanings:    rec.Meanings,
		Level:       rec.Level,
		Examples:    rec.Examples,
		SRSLevel:    0,
		NextReview:  today,
	}
}

// ExportProgress maps the whole store to a progress snapshot stamped
// with the current time. Pure read.
func (s *Service) ExportProgress(ctx context.Context) (*models.ProgressSnapshot, error) {
	all, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := &models.ProgressSnapshot{
		ExportDate:   s.now(),
		ProgressData: make([]models.WordProgress, 0, len(all)),
	}
	for _, w := range all {
		snapshot.ProgressData = append(snapshot.ProgressData, models.WordProgress{
			ID:             w.ID,
			Simplified:     w.Simplified,
			SRSLevel:       w.SRSLevel,
			NextReview:     w.NextReview,
			CorrectCount:   w.CorrectCount,
			IncorrectCount: w.IncorrectCount,
			LastPracticed:  w.LastPracticed,
			IsFavorite:     w.IsFavorite,
		})
	}
	return snapshot, nil
}

// ImportProgress merges a snapshot into the current corpus: for every
// row whose id still exists, the progress fields are overwritten; rows
// for ids no longer in the corpus are silently skipped, since the
// vocabulary corpus is authoritative for which ids exist. Returns the
// number of words actually merged.
func (s *Service) ImportProgress(ctx context.Context, snapshot *models.ProgressSnapshot) (int, error) {
	if err := validateSnapshot(snapshot); err != nil {
		return 0, err
	}

	merged := 0
	rows := snapshot.ProgressData
	for start := 0; start < len(rows); start += s.batchSize {
		end := start + s.batchSize
		if end > len(rows) {
			end = len(rows)
		}
		for i := start; i < end; i++ {
			p := rows[i]
			w, err := s.store.Get(ctx, p.ID)
			if err != nil {
				s.log.Warn("progress merge skipped word", zap.String("id", p.ID), zap.Error(err))
				continue
			}
			if w == nil {
				continue
			}
			w.SRSLevel = p.SRSLevel
			w.NextReview = p.NextReview
			w.CorrectCount = p.CorrectCount
			w.IncorrectCount = p.IncorrectCount
			w.LastPracticed = p.LastPracticed
			w.IsFavorite = p.IsFavorite
			if err := s.store.Put(ctx, w); err != nil {
				s.log.Warn("progress merge skipped word", zap.String("id", p.ID), zap.Error(err))
				continue
			}
			merged++
		}
	}
	s.log.Info("progress import finished",
		zap.Int("merged", merged),
		zap.Int("rows", len(rows)))
	return merged, nil
}

func validateSnapshot(snapshot *models.ProgressSnapshot) error {
	if snapshot == nil || snapshot.ProgressData == nil {
		return ErrInvalidFormat
	}
	for i, p := range snapshot.ProgressData {
		if p.ID == "" {
			return fmt.Errorf("%w: row %d has no id", ErrInvalidFormat, i)
		}
		if p.NextReview != "" {
			if _, err := time.Parse(srs.DateLayout, p.NextReview); err != nil {
				return fmt.Errorf("%w: row %d has bad next review date %q", ErrInvalidFormat, i, p.NextReview)
			}
		}
		if p.SRSLevel < 0 || p.SRSLevel > srs.MaxLevel {
			return fmt.Errorf("%w: row %d has srs level %d out of range", ErrInvalidFormat, i, p.SRSLevel)
		}
	}
	return nil
}

// ReadSnapshot decodes a progress snapshot from r, typically a file
// the user previously exported.
func ReadSnapshot(r io.Reader) (*models.ProgressSnapshot, error) {
	var snapshot models.ProgressSnapshot
	dec := json.NewDecoder(r)
	if err := dec.Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return &snapshot, nil
}

// WriteSnapshot encodes a progress snapshot to w as indented JSON.
func WriteSnapshot(w io.Writer, snapshot *models.ProgressSnapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snapshot)
}
