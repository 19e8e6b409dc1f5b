package models

import "time"

// HSK level range. LevelIdiom marks chengyu entries that sit outside
// the numbered tiers.
const (
	LevelMin   = 1
	LevelMax   = 6
	LevelIdiom = 7
)

// ExampleSentence is one usage example attached to a word.
type ExampleSentence struct {
	Simplified string `json:"simplified"`
	Pinyin     string `json:"pinyin"`
	English    string `json:"english"`
}

// Word represents one learnable vocabulary entry (word or idiom)
// together with its spaced-repetition state.
type Word struct {
	ID             string            `json:"id"`
	Simplified     string            `json:"simplified"`
	Traditional    string            `json:"traditional"`
	Pinyin         string            `json:"pinyin"`
	Meanings       []string          `json:"meanings"`
	Level          int               `json:"level"`
	Examples       []ExampleSentence `json:"examples"`
	SRSLevel       int               `json:"srsLevel"`
	NextReview     string            `json:"nextReview"` // YYYY-MM-DD
	CorrectCount   int               `json:"correctCount"`
	IncorrectCount int               `json:"incorrectCount"`
	LastPracticed  *time.Time        `json:"lastPracticed"`
	IsFavorite     bool              `json:"isFavorite"`
}

// HasExamples reports whether the word can appear in practice
// sessions. Words without example sentences are browse-only.
func (w *Word) HasExamples() bool {
	return len(w.Examples) > 0
}
