// Package feed parses vocabulary word lists into raw feed records for
// import. HSK lists arrive as Excel workbooks, CSV exports of those
// workbooks, or JSON downloads.
package feed

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/miickii/HSKTrainer-sub000/pkg/models"
)

// Options defines the column layout of tabular word lists.
type Options struct {
	IDColumn          string
	SimplifiedColumn  string
	TraditionalColumn string
	PinyinColumn      string
	MeaningsColumn    string // glosses separated by ";"
	LevelColumn       string
	ExamplesColumn    string // JSON array, or "simp|pinyin|english" pairs joined by "||"
	SheetName         string
	StartRow          int // 1-based; rows before it are skipped
}

// DefaultOptions returns the layout the standard HSK lists use.
func DefaultOptions() Options {
	return Options{
		IDColumn:          "A",
		SimplifiedColumn:  "B",
		TraditionalColumn: "C",
		PinyinColumn:      "D",
		MeaningsColumn:    "E",
		LevelColumn:       "F",
		ExamplesColumn:    "G",
		SheetName:         "Sheet1",
		StartRow:          2, // skip the header row
	}
}

// Result holds the parsed records plus per-row problems. Problems do
// not abort a parse; the row is skipped and reported.
type Result struct {
	Records []models.FeedRecord
	Errors  []string
}

// ParseFile reads a word list, dispatching on the file extension.
func ParseFile(path string, opts Options) (*Result, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return parseJSON(path)
	case ".csv":
		return parseCSV(path, opts)
	default:
		return parseExcel(path, opts)
	}
}

func parseJSON(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open JSON feed: %v", err)
	}
	var records []models.FeedRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse JSON feed: %v", err)
	}
	return &Result{Records: records}, nil
}

func parseExcel(path string, opts Options) (*Result, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(opts.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}

	result := &Result{}
	for i, row := range rows {
		if i < opts.StartRow-1 {
			continue
		}
		rec, err := rowToRecord(row, opts)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		result.Records = append(result.Records, rec)
	}
	return result, nil
}

func parseCSV(path string, opts Options) (*Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	result := &Result{}
	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %v", err)
		}
		rowNum++
		if rowNum < opts.StartRow {
			continue
		}
		rec, err := rowToRecord(row, opts)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		result.Records = append(result.Records, rec)
	}
	return result, nil
}

func rowToRecord(row []string, opts Options) (models.FeedRecord, error) {
	cell := func(column string) string {
		if idx := columnToIndex(column); idx >= 0 && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	rec := models.FeedRecord{
		ID:          cell(opts.IDColumn),
		Simplified:  cell(opts.SimplifiedColumn),
		Traditional: cell(opts.TraditionalColumn),
		Pinyin:      cell(opts.PinyinColumn),
	}
	if rec.Simplified == "" {
		return rec, fmt.Errorf("missing simplified form")
	}
	if rec.ID == "" {
		rec.ID = rec.Simplified
	}

	if m := cell(opts.MeaningsColumn); m != "" {
		for _, gloss := range strings.Split(m, ";") {
			if gloss = strings.TrimSpace(gloss); gloss != "" {
				rec.Meanings = append(rec.Meanings, gloss)
			}
		}
	}

	if l := cell(opts.LevelColumn); l != "" {
		level, err := strconv.Atoi(l)
		if err != nil {
			return rec, fmt.Errorf("bad level %q", l)
		}
		if level < models.LevelMin || level > models.LevelIdiom {
			return rec, fmt.Errorf("level %d out of range", level)
		}
		rec.Level = level
	}

	examples, err := parseExamples(cell(opts.ExamplesColumn))
	if err != nil {
		return rec, err
	}
	rec.Examples = examples
	return rec, nil
}

// parseExamples accepts either a JSON array of example objects or the
// compact "simplified|pinyin|english" form with sentences joined by
// "||".
func parseExamples(cell string) ([]models.ExampleSentence, error) {
	if cell == "" {
		return nil, nil
	}
	if strings.HasPrefix(cell, "[") {
		var examples []models.ExampleSentence
		if err := json.Unmarshal([]byte(cell), &examples); err != nil {
			return nil, fmt.Errorf("bad examples JSON: %v", err)
		}
		return examples, nil
	}

	var examples []models.ExampleSentence
	for _, chunk := range strings.Split(cell, "||") {
		parts := strings.Split(chunk, "|")
		if len(parts) != 3 {
			return nil, fmt.Errorf("bad example %q", chunk)
		}
		examples = append(examples, models.ExampleSentence{
			Simplified: strings.TrimSpace(parts[0]),
			Pinyin:     strings.TrimSpace(parts[1]),
			English:    strings.TrimSpace(parts[2]),
		})
	}
	return examples, nil
}

// columnToIndex converts a spreadsheet column letter to a 0-based
// index ("A" -> 0, "AA" -> 26).
func columnToIndex(column string) int {
	if column == "" {
		return -1
	}
	index := 0
	for _, c := range strings.ToUpper(column) {
		if c < 'A' || c > 'Z' {
			return -1
		}
		index = index*26 + int(c-'A') + 1
	}
	return index - 1
}
