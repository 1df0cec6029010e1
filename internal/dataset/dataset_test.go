package dataset

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"vanmitra-feedback/internal/aggregator"
	"vanmitra-feedback/internal/logger"
	"vanmitra-feedback/internal/types"
)

func writeSheet(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, r := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cellRef, &r))
	}
	path := filepath.Join(t.TempDir(), "input.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadReferences_HeaderDetection(t *testing.T) {
	path := writeSheet(t, [][]interface{}{
		{"Village", "Audio File", "Notes"},
		{"Kothur", "uploads/sample_tamil_water.wav", "dry wells"},
		{"Ramgarh", "", "blank row"},
		{"Bansi", "  uploads/sample_hindi_forest.wav  ", ""},
	})

	refs, err := LoadReferences(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"uploads/sample_tamil_water.wav", "uploads/sample_hindi_forest.wav"}, refs)
}

func TestLoadReferences_FallsBackToFirstColumn(t *testing.T) {
	path := writeSheet(t, [][]interface{}{
		{"Input"},
		{"a.wav"},
		{"b.wav"},
	})
	refs, err := LoadReferences(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.wav", "b.wav"}, refs)
}

func TestLoadReferences_Errors(t *testing.T) {
	_, err := LoadReferences(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)

	_, err = LoadReferences(writeSheet(t, [][]interface{}{{"audio"}}))
	assert.ErrorContains(t, err, "no data rows")

	_, err = LoadReferences(writeSheet(t, [][]interface{}{{"audio", "x"}, {"", "y"}}))
	assert.ErrorContains(t, err, "no audio references")
}

func TestLoadSamples(t *testing.T) {
	path := writeSheet(t, [][]interface{}{
		{"key", "language", "text", "translation", "audio_file"},
		{"odia_road", "Odia", "ରାସ୍ତା ଖରାପ", "The road is bad.", "odia_road.wav"},
		{"english_school", "English", "The school has no teacher.", "", ""},
		{"", "Hindi", "ignored without key", "", ""},
	})

	set, err := LoadSamples(path)
	require.NoError(t, err)
	require.Equal(t, 2, set.Len())

	first := set.At(0)
	assert.Equal(t, "odia_road", first.Key)
	assert.Equal(t, "Odia", first.Language)
	assert.Equal(t, "The road is bad.", first.Translation)
	assert.Equal(t, "odia_road.wav", first.AudioFile)

	eng := set.At(1)
	assert.Equal(t, eng.Text, eng.Translation)

	sm, ok := set.Match("inbox/odia_road.wav")
	require.True(t, ok)
	assert.Equal(t, "odia_road", sm.Key)
}

func TestLoadSamples_MissingColumns(t *testing.T) {
	_, err := LoadSamples(writeSheet(t, [][]interface{}{{"key", "text"}, {"a", "b"}}))
	assert.ErrorContains(t, err, "needs key, language and text")
}

func TestExport(t *testing.T) {
	ts := time.Date(2025, 12, 3, 10, 30, 0, 0, time.UTC)
	recs := []*types.FeedbackRecord{
		{
			ID:               "rec-1",
			Timestamp:        ts,
			AudioReference:   "sample_tamil_water.wav",
			ProcessingStatus: types.StatusCompleted,
			SourceLanguage:   "tamil",
			TranslatedText:   "There is water scarcity in our village.",
			Sentiment:        &types.Sentiment{Label: types.SentimentNegative, Scores: types.SentimentScores{Compound: -0.65}},
			Category:         &types.Category{Primary: types.CategoryWaterSupply},
			Priority:         &types.Priority{Level: types.PriorityHigh, Score: 5, Timeline: "Immediate action required (within 24-48 hours)"},
			Summary:          &types.Summary{Text: "Water scarcity.", Method: "extractive"},
			Insights:         &types.Insights{Department: "Water Resources & Rural Development", ImmediateActions: []string{"a", "b"}},
			DurationMs:       12,
		},
		{ID: "rec-2", Timestamp: ts, ProcessingStatus: types.StatusFailed, ErrorDetail: "transcription: empty audio reference"},
	}
	summary := aggregator.Aggregate(recs)
	path := filepath.Join(t.TempDir(), "out.xlsx")

	var logs bytes.Buffer
	log := logger.NewWithOptions(logger.Options{Environment: "test", Level: "info", Output: &logs})
	require.NoError(t, Export(path, recs, summary, log))
	assert.Contains(t, logs.String(), "results workbook written")
	assert.Contains(t, logs.String(), `"component":"dataset.export"`)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{RecordsSheet, SummarySheet}, f.GetSheetList())

	rows, err := f.GetRows(RecordsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "rec-1", rows[1][0])
	assert.Equal(t, "2025-12-03T10:30:00Z", rows[1][1])
	assert.Equal(t, "completed", rows[1][3])
	assert.Equal(t, types.CategoryWaterSupply, rows[1][9])
	assert.Equal(t, "a; b", rows[1][15])
	assert.Equal(t, "failed", rows[2][3])
	assert.Equal(t, "transcription: empty audio reference", rows[2][17])

	sum, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Total", "2"}, sum[1])
	assert.Equal(t, []string{"Completed", "1"}, sum[2])
	assert.Equal(t, []string{"Failed", "1"}, sum[3])
	assert.Contains(t, sum, []string{"Category: Water Supply", "1"})
	assert.Contains(t, sum, []string{"High Priority Records", "rec-1"})
}
