package vocab

import (
	"context"

	"github.com/miickii/HSKTrainer-sub000/internal/srs"
)

// Stats summarizes the corpus and learning state.
type Stats struct {
	TotalWords int
	DueToday   int
	Mastered   int
	Favorites  int
	ByLevel    map[int]int
}

// Stats aggregates counts over the whole store: total, due today,
// mastered (at least one correct answer), favorites, and a per-level
// breakdown.
func (r *Repository) Stats(ctx context.Context) (*Stats, error) {
	all, err := r.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	today := srs.Today(r.now())
	stats := &Stats{ByLevel: make(map[int]int)}
	for _, w := range all {
		stats.TotalWords++
		stats.ByLevel[w.Level]++
		if w.NextReview <= today && w.HasExamples() {
			stats.DueToday++
		}
		if w.CorrectCount > 0 {
			stats.Mastered++
		}
		if w.IsFavorite {
			stats.Favorites++
		}
	}
	return stats, nil
}
