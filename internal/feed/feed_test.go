package feed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestColumnToIndex(t *testing.T) {
	assert.Equal(t, 0, columnToIndex("A"))
	assert.Equal(t, 6, columnToIndex("G"))
	assert.Equal(t, 26, columnToIndex("AA"))
	assert.Equal(t, -1, columnToIndex(""))
	assert.Equal(t, -1, columnToIndex("1"))
}

func TestParseExamples_CompactForm(t *testing.T) {
	examples, err := parseExamples("你好吗？|nǐ hǎo ma?|How are you?||我很好。|wǒ hěn hǎo.|I'm fine.")
	require.NoError(t, err)
	require.Len(t, examples, 2)
	assert.Equal(t, "你好吗？", examples[0].Simplified)
	assert.Equal(t, "I'm fine.", examples[1].English)
}

func TestParseExamples_JSONForm(t *testing.T) {
	examples, err := parseExamples(`[{"simplified":"你好","pinyin":"nǐ hǎo","english":"hello"}]`)
	require.NoError(t, err)
	require.Len(t, examples, 1)
	assert.Equal(t, "hello", examples[0].English)
}

func TestParseExamples_Malformed(t *testing.T) {
	_, err := parseExamples("only|two")
	assert.Error(t, err)
}

func TestParseFile_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hsk1.csv")
	content := "id,simplified,traditional,pinyin,meanings,level,examples\n" +
		"w1,你好,你好,nǐ hǎo,hello; hi,1,你好吗？|nǐ hǎo ma?|How are you?\n" +
		"w2,爱,愛,ài,to love,1,\n" +
		",,,,,,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	result, err := ParseFile(path, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, result.Records, 2)
	assert.Len(t, result.Errors, 1, "the empty row is reported, not fatal")

	w1 := result.Records[0]
	assert.Equal(t, "w1", w1.ID)
	assert.Equal(t, "你好", w1.Simplified)
	assert.Equal(t, []string{"hello", "hi"}, w1.Meanings)
	assert.Equal(t, 1, w1.Level)
	require.Len(t, w1.Examples, 1)
	assert.Equal(t, "How are you?", w1.Examples[0].English)

	w2 := result.Records[1]
	assert.Equal(t, "愛", w2.Traditional)
	assert.Empty(t, w2.Examples)
}

func TestParseFile_CSVMissingIDFallsBackToSimplified(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.csv")
	content := "id,simplified,traditional,pinyin,meanings,level,examples\n" +
		",好,好,hǎo,good,1,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	result, err := ParseFile(path, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "好", result.Records[0].ID)
}

func TestParseFile_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.json")
	content := `[
		{"id": "w1", "simplified": "你好", "pinyin": "nǐ hǎo", "meanings": ["hello"], "level": 1,
		 "examples": [{"simplified": "你好吗？", "pinyin": "nǐ hǎo ma?", "english": "How are you?"}]}
	]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	result, err := ParseFile(path, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "w1", result.Records[0].ID)
	require.Len(t, result.Records[0].Examples, 1)
}

func TestParseFile_Excel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hsk.xlsx")

	f := excelize.NewFile()
	header := []interface{}{"id", "simplified", "traditional", "pinyin", "meanings", "level", "examples"}
	row := []interface{}{"w1", "学习", "學習", "xuéxí", "to study", 2, ""}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &row))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	result, err := ParseFile(path, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, result.Records, 1)

	rec := result.Records[0]
	assert.Equal(t, "w1", rec.ID)
	assert.Equal(t, "学习", rec.Simplified)
	assert.Equal(t, "學習", rec.Traditional)
	assert.Equal(t, 2, rec.Level)
}

func TestParseFile_BadLevelReported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.csv")
	content := "id,simplified,traditional,pinyin,meanings,level,examples\n" +
		"w1,好,好,hǎo,good,abc,\n" +
		"w2,坏,壞,huài,bad,9,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	result, err := ParseFile(path, DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, result.Records, "non-numeric and out-of-range levels are both rejected")
	assert.Len(t, result.Errors, 2)
}
