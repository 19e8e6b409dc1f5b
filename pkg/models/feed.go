package models

// FeedRecord is one raw row from a vocabulary feed (remote download or
// a local HSK word list file). Learning-progress fields are never part
// of a feed; import always resets them to defaults.
type FeedRecord struct {
	ID          string            `json:"id"`
	Simplified  string            `json:"simplified"`
	Traditional string            `json:"traditional"`
	Pinyin      string            `json:"pinyin"`
	Meanings    []string          `json:"meanings"`
	Level       int               `json:"level"`
	Examples    []ExampleSentence `json:"examples"`
}
