// Package vocab exposes the query and mutation operations practice
// flows are built on: picking due and random words, recording
// outcomes, favorites, search and progress reset.
package vocab

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/miickii/HSKTrainer-sub000/internal/database"
	"github.com/miickii/HSKTrainer-sub000/internal/srs"
	"github.com/miickii/HSKTrainer-sub000/pkg/models"
)

// ErrNotFound is returned by mutations referencing an id that is not
// in the store.
var ErrNotFound = errors.New("word not found")

// DefaultBatchSize bounds how many records a bulk mutation touches per
// chunk.
const DefaultBatchSize = 100

// FilterType narrows SearchAndFilter results by learning state.
type FilterType string

const (
	FilterAll      FilterType = "all"
	FilterMastered FilterType = "mastered" // answered correctly at least once
	FilterLearning FilterType = "learning" // never answered correctly
	FilterFavorite FilterType = "favorite"
)

// Config is the explicit configuration the surrounding app builds from
// its settings table and passes in at construction time.
type Config struct {
	ActiveLevels  []int
	PreferOffline bool
	BatchSize     int
}

// Repository implements vocabulary queries and mutations over the
// persistent store.
type Repository struct {
	store *database.WordStore
	cfg   Config
	log   *zap.Logger
	now   func() time.Time
	rnd   *rand.Rand
}

// New creates a repository. BatchSize defaults to DefaultBatchSize.
func New(store *database.WordStore, cfg Config, log *zap.Logger) *Repository {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	return &Repository{
		store: store,
		cfg:   cfg,
		log:   log,
		now:   time.Now,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// GetDueForReview returns up to count practice candidates, due words
// first (ordered by next_review), padded with random words when fewer
// than count are due so a session is never short just because little
// is due. level narrows to one HSK level when non-nil. No duplicate
// ids.
func (r *Repository) GetDueForReview(ctx context.Context, count int, level *int) ([]models.Word, error) {
	if count <= 0 {
		return nil, nil
	}
	today := srs.Today(r.now())

	it, err := r.store.ScanDueBefore(ctx, today)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	words := make([]models.Word, 0, count)
	seen := make([]string, 0, count)
	for len(words) < count && it.Next() {
		w := it.Word()
		if !w.HasExamples() {
			continue
		}
		if level != nil && w.Level != *level {
			continue
		}
		words = append(words, *w)
		seen = append(seen, w.ID)
	}
	if err := it.Err(); err != nil {
		return nil, err
	}

	if len(words) < count {
		extra, err := r.GetRandomWords(ctx, count-len(words), level, seen)
		if err != nil {
			return nil, err
		}
		words = append(words, extra...)
	}
	return words, nil
}

// GetRandomWords returns up to count uniformly random words that have
// examples, match level when non-nil, and are not in excludeIDs. A
// short corpus returns fewer words, never an error.
func (r *Repository) GetRandomWords(ctx context.Context, count int, level *int, excludeIDs []string) ([]models.Word, error) {
	if count <= 0 {
		return nil, nil
	}
	all, err := r.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	excluded := make(map[string]bool, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = true
	}

	pool := make([]models.Word, 0, len(all))
	for _, w := range all {
		if !w.HasExamples() || excluded[w.ID] {
			continue
		}
		if level != nil && w.Level != *level {
			continue
		}
		pool = append(pool, w)
	}

	r.rnd.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if len(pool) > count {
		pool = pool[:count]
	}
	return pool, nil
}

// SelectPracticeWord picks one word for a practice round. With
// onlyNeverCorrect it samples words still at SRS level zero; otherwise
// due words take priority and anything practicable is the fallback, so
// practice is never blocked just because nothing is due. Returns nil
// when no word qualifies.
func (r *Repository) SelectPracticeWord(ctx context.Context, levels []int, onlyNeverCorrect bool) (*models.Word, error) {
	all, err := r.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	active := make(map[int]bool, len(levels))
	for _, l := range levels {
		active[l] = true
	}

	candidates := make([]models.Word, 0, len(all))
	for _, w := range all {
		if w.HasExamples() && active[w.Level] {
			candidates = append(candidates, w)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	if onlyNeverCorrect {
		var fresh []models.Word
		for _, w := range candidates {
			if w.SRSLevel == 0 {
				fresh = append(fresh, w)
			}
		}
		return r.pickRandom(fresh), nil
	}

	today := srs.Today(r.now())
	var due []models.Word
	for _, w := range candidates {
		if w.NextReview <= today {
			due = append(due, w)
		}
	}
	if len(due) > 0 {
		return r.pickRandom(due), nil
	}
	return r.pickRandom(candidates), nil
}

func (r *Repository) pickRandom(words []models.Word) *models.Word {
	if len(words) == 0 {
		return nil
	}
	w := words[r.rnd.Intn(len(words))]
	return &w
}

// RecordPracticeOutcome applies one practice result to a word: the
// scheduler moves srs_level and next_review, the matching counter is
// bumped and last_practiced set, all persisted together. This is the
// only writer of those fields.
func (r *Repository) RecordPracticeOutcome(ctx context.Context, id string, wasCorrect bool) (*models.Word, error) {
	w, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, fmt.Errorf("record outcome for %s: %w", id, ErrNotFound)
	}

	now := r.now()
	w.SRSLevel, w.NextReview = srs.ComputeNextReview(w.SRSLevel, wasCorrect, now)
	if wasCorrect {
		w.CorrectCount++
	} else {
		w.IncorrectCount++
	}
	w.LastPracticed = &now

	if err := r.store.Put(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// ToggleFavorite flips the favorite flag and returns the new state.
func (r *Repository) ToggleFavorite(ctx context.Context, id string) (*models.Word, error) {
	w, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, fmt.Errorf("toggle favorite for %s: %w", id, ErrNotFound)
	}

	w.IsFavorite = !w.IsFavorite
	if err := r.store.Put(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// ResetAllProgress puts every word back to SRS level zero with a
// review due today and zeroed counters, leaving favorites alone.
// Processed in batches; records that fail to persist are logged and
// skipped, and the returned count is what actually completed.
func (r *Repository) ResetAllProgress(ctx context.Context) (int, error) {
	all, err := r.store.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	today := srs.Today(r.now())

	reset := 0
	for start := 0; start < len(all); start += r.cfg.BatchSize {
		end := start + r.cfg.BatchSize
		if end > len(all) {
			end = len(all)
		}
		for i := start; i < end; i++ {
			w := all[i]
			w.SRSLevel = 0
			w.NextReview = today
			w.CorrectCount = 0
			w.IncorrectCount = 0
			w.LastPracticed = nil
			if err := r.store.Put(ctx, &w); err != nil {
				r.log.Warn("reset skipped word", zap.String("id", w.ID), zap.Error(err))
				continue
			}
			reset++
		}
	}
	return reset, nil
}

// SearchAndFilter returns every word matching the search term
// (case-insensitive substring over simplified, pinyin and meanings),
// the level when non-nil, and the learning-state filter. The corpus is
// small enough that no pagination is needed.
func (r *Repository) SearchAndFilter(ctx context.Context, searchTerm string, level *int, filter FilterType) ([]models.Word, error) {
	all, err := r.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(strings.TrimSpace(searchTerm))
	matched := make([]models.Word, 0, len(all))
	for _, w := range all {
		if level != nil && w.Level != *level {
			continue
		}
		switch filter {
		case FilterMastered:
			if w.CorrectCount == 0 {
				continue
			}
		case FilterLearning:
			if w.CorrectCount > 0 {
				continue
			}
		case FilterFavorite:
			if !w.IsFavorite {
				continue
			}
		}
		if term != "" && !matchesTerm(&w, term) {
			continue
		}
		matched = append(matched, w)
	}
	return matched, nil
}

func matchesTerm(w *models.Word, term string) bool {
	if strings.Contains(strings.ToLower(w.Simplified), term) {
		return true
	}
	if strings.Contains(strings.ToLower(w.Pinyin), term) {
		return true
	}
	for _, m := range w.Meanings {
		if strings.Contains(strings.ToLower(m), term) {
			return true
		}
	}
	return false
}
