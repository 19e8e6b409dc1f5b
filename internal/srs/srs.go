// Package srs implements the review scheduling used by the trainer: a
// fixed ladder of intervals indexed by a per-word level that climbs one
// step on a correct answer and drops two on a miss.
package srs

import "time"

// DateLayout is the canonical calendar-date form stored in next_review.
const DateLayout = "2006-01-02"

// ReviewIntervals is the fixed interval ladder in days. A word at
// level n answered correctly is next seen ReviewIntervals[n+1] days
// later.
var ReviewIntervals = []int{1, 3, 7, 14, 30, 60, 120, 240}

// MaxLevel is the highest reachable SRS level.
var MaxLevel = len(ReviewIntervals) - 1

// ClampLevel forces a level into the valid index range of the ladder.
func ClampLevel(level int) int {
	if level < 0 {
		return 0
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}

// ComputeNextReview returns the new SRS level and next review date for
// a word at currentLevel given the practice outcome. A miss demotes by
// two steps rather than resetting to zero, so a single bad day does
// not wipe out months of history. Deterministic given today.
func ComputeNextReview(currentLevel int, wasCorrect bool, today time.Time) (int, string) {
	level := ClampLevel(currentLevel)
	if wasCorrect {
		level = ClampLevel(level + 1)
	} else {
		level = ClampLevel(level - 2)
	}
	next := today.AddDate(0, 0, ReviewIntervals[level]).Format(DateLayout)
	return level, next
}

// Today formats now as a canonical calendar date in local time.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}
