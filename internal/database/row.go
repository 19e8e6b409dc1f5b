package database

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/miickii/HSKTrainer-sub000/pkg/models"
)

// wordRow is the storage shape of a word. Meanings and examples live
// as JSON text in their columns; the encoding never leaves this
// package.
type wordRow struct {
	ID             string       `db:"id"`
	Simplified     string       `db:"simplified"`
	Traditional    string       `db:"traditional"`
	Pinyin         string       `db:"pinyin"`
	Meanings       string       `db:"meanings"`
	Level          int          `db:"level"`
	Examples       string       `db:"examples"`
	SRSLevel       int          `db:"srs_level"`
	NextReview     string       `db:"next_review"`
	CorrectCount   int          `db:"correct_count"`
	IncorrectCount int          `db:"incorrect_count"`
	LastPracticed  sql.NullTime `db:"last_practiced"`
	IsFavorite     bool         `db:"is_favorite"`
}

func (r *wordRow) toModel() (*models.Word, error) {
	w := &models.Word{
		ID:             r.ID,
		Simplified:     r.Simplified,
		Traditional:    r.Traditional,
		Pinyin:         r.Pinyin,
		Level:          r.Level,
		SRSLevel:       r.SRSLevel,
		NextReview:     r.NextReview,
		CorrectCount:   r.CorrectCount,
		IncorrectCount: r.IncorrectCount,
		IsFavorite:     r.IsFavorite,
	}
	if r.LastPracticed.Valid {
		t := r.LastPracticed.Time
		w.LastPracticed = &t
	}
	if r.Meanings != "" {
		if err := json.Unmarshal([]byte(r.Meanings), &w.Meanings); err != nil {
			return nil, fmt.Errorf("decode meanings for word %s: %v", r.ID, err)
		}
	}
	if r.Examples != "" {
		if err := json.Unmarshal([]byte(r.Examples), &w.Examples); err != nil {
			return nil, fmt.Errorf("decode examples for word %s: %v", r.ID, err)
		}
	}
	return w, nil
}

func rowFromModel(w *models.Word) (*wordRow, error) {
	meanings, err := json.Marshal(w.Meanings)
	if err != nil {
		return nil, fmt.Errorf("encode meanings for word %s: %v", w.ID, err)
	}
	examples, err := json.Marshal(w.Examples)
	if err != nil {
		return nil, fmt.Errorf("encode examples for word %s: %v", w.ID, err)
	}
	r := &wordRow{
		ID:             w.ID,
		Simplified:     w.Simplified,
		Traditional:    w.Traditional,
		Pinyin:         w.Pinyin,
		Meanings:       string(meanings),
		Level:          w.Level,
		Examples:       string(examples),
		SRSLevel:       w.SRSLevel,
		NextReview:     w.NextReview,
		CorrectCount:   w.CorrectCount,
		IncorrectCount: w.IncorrectCount,
		IsFavorite:     w.IsFavorite,
	}
	if w.LastPracticed != nil {
		r.LastPracticed = sql.NullTime{Time: *w.LastPracticed, Valid: true}
	}
	return r, nil
}
