package dataset

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"vanmitra-feedback/internal/aggregator"
	"vanmitra-feedback/internal/logger"
	"vanmitra-feedback/internal/types"
)

const (
	RecordsSheet = "Records"
	SummarySheet = "Summary"
)

var recordHeader = []interface{}{
	"ID", "Timestamp", "Audio Reference", "Status", "Language", "Original Text", "English Text",
	"Sentiment", "Compound", "Category", "Priority", "Priority Score", "Summary", "Summary Method",
	"Department", "Immediate Actions", "Timeline", "Error", "Duration (ms)",
}

// Export writes one row per record to the Records sheet and the batch
// summary to the Summary sheet.
func Export(path string, records []*types.FeedbackRecord, summary aggregator.Summary, log *logger.Logger) error {
	if log == nil {
		log = logger.New()
	}
	exportLog := log.Component("dataset.export").WithField("path", path)
	exportLog.WithField("records", len(records)).Info("exporting results workbook")

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", RecordsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(RecordsSheet, "A1", &recordHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	row := 2
	for _, r := range records {
		if r == nil {
			continue
		}
		cellRef, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		values := recordRow(r)
		if err := f.SetSheetRow(RecordsSheet, cellRef, &values); err != nil {
			return fmt.Errorf("write record %s: %w", r.ID, err)
		}
		row++
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("add summary sheet: %w", err)
	}
	for i, line := range summaryRows(summary) {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SummarySheet, cellRef, &line); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		exportLog.WithError(err).Error("save failed")
		return fmt.Errorf("save: %w", err)
	}
	exportLog.WithField("rows", row-2).Info("results workbook written")
	return nil
}

func recordRow(r *types.FeedbackRecord) []interface{} {
	var sentiment, category, level, sum, method, dept, actions, timeline string
	var compound float64
	var score int
	if r.Sentiment != nil {
		sentiment, compound = r.Sentiment.Label, r.Sentiment.Scores.Compound
	}
	if r.Category != nil {
		category = r.Category.Primary
	}
	if r.Priority != nil {
		level, score, timeline = r.Priority.Level, r.Priority.Score, r.Priority.Timeline
	}
	if r.Summary != nil {
		sum, method = r.Summary.Text, r.Summary.Method
	}
	if r.Insights != nil {
		dept = r.Insights.Department
		actions = strings.Join(r.Insights.ImmediateActions, "; ")
	}
	return []interface{}{
		r.ID, r.Timestamp.UTC().Format(time.RFC3339), r.AudioReference, string(r.ProcessingStatus),
		r.SourceLanguage, r.OriginalText, r.TranslatedText,
		sentiment, compound, category, level, score, sum, method,
		dept, actions, timeline, r.ErrorDetail, r.DurationMs,
	}
}

func summaryRows(s aggregator.Summary) [][]interface{} {
	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Total", s.Total},
		{"Completed", s.Completed},
		{"Failed", s.Failed},
		{"Average Duration (ms)", s.AverageDurationMs},
		{"High Priority Records", strings.Join(s.HighPriorityIDs, ", ")},
	}
	for _, dist := range []struct {
		label  string
		counts map[string]int
	}{
		{"Sentiment", s.BySentiment},
		{"Category", s.ByCategory},
		{"Priority", s.ByPriority},
		{"Department", s.ByDepartment},
		{"Language", s.ByLanguage},
	} {
		keys := make([]string, 0, len(dist.counts))
		for k := range dist.counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			rows = append(rows, []interface{}{dist.label + ": " + k, dist.counts[k]})
		}
	}
	return rows
}
