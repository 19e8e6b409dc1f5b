package models

import "time"

// WordProgress is the per-word slice of learning state that survives a
// vocabulary reimport via export/import.
type WordProgress struct {
	ID             string     `json:"id"`
	Simplified     string     `json:"simplified"`
	SRSLevel       int        `json:"srsLevel"`
	NextReview     string     `json:"nextReview"`
	CorrectCount   int        `json:"correctCount"`
	IncorrectCount int        `json:"incorrectCount"`
	LastPracticed  *time.Time `json:"lastPracticed"`
	IsFavorite     bool       `json:"isFavorite"`
}

// ProgressSnapshot is the backup artifact a user downloads before a
// reimport and restores afterwards. It is never the source of truth
// while the app runs.
type ProgressSnapshot struct {
	ExportDate   time.Time      `json:"exportDate"`
	ProgressData []WordProgress `json:"progressData"`
}
