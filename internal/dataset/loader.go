// Package dataset reads batch inputs from spreadsheets and writes batch
// results back out.
package dataset

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"vanmitra-feedback/internal/samples"
)

// LoadReferences reads audio references from the first sheet. The column is
// detected by header heuristics and falls back to the first column.
func LoadReferences(path string) ([]string, error) {
	header, rows, err := readFirstSheet(path)
	if err != nil {
		return nil, err
	}

	refIdx := -1
	for i, h := range header {
		l := strings.ToLower(strings.TrimSpace(h))
		if strings.Contains(l, "audio") || strings.Contains(l, "file") || strings.Contains(l, "path") ||
			strings.Contains(l, "url") || strings.Contains(l, "reference") || strings.Contains(l, "recording") {
			refIdx = i
			break
		}
	}
	if refIdx == -1 {
		refIdx = 0
	}

	var out []string
	for _, r := range rows {
		if refIdx >= len(r) {
			continue
		}
		ref := strings.TrimSpace(r[refIdx])
		if ref == "" {
			// skip blank rows quietly
			continue
		}
		out = append(out, ref)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no audio references in %s", path)
	}
	return out, nil
}

// LoadSamples reads a replacement demo sample set. Required columns are key,
// language and text; translation and audio_file are optional.
func LoadSamples(path string) (*samples.Set, error) {
	header, rows, err := readFirstSheet(path)
	if err != nil {
		return nil, err
	}

	keyIdx, langIdx, textIdx, trIdx, audioIdx := -1, -1, -1, -1, -1
	for i, h := range header {
		l := strings.ToLower(strings.TrimSpace(h))
		switch {
		case strings.Contains(l, "translation") || strings.Contains(l, "english"):
			if trIdx == -1 {
				trIdx = i
			}
		case strings.Contains(l, "audio") || strings.Contains(l, "file"):
			if audioIdx == -1 {
				audioIdx = i
			}
		case strings.Contains(l, "key") || l == "id" || l == "name":
			if keyIdx == -1 {
				keyIdx = i
			}
		case strings.Contains(l, "lang"):
			if langIdx == -1 {
				langIdx = i
			}
		case strings.Contains(l, "text") || strings.Contains(l, "transcript"):
			if textIdx == -1 {
				textIdx = i
			}
		}
	}
	if keyIdx == -1 || langIdx == -1 || textIdx == -1 {
		return nil, fmt.Errorf("samples sheet needs key, language and text columns (got %v)", header)
	}

	var items []samples.Sample
	for _, r := range rows {
		s := samples.Sample{
			Key:         cell(r, keyIdx),
			Language:    cell(r, langIdx),
			Text:        cell(r, textIdx),
			Translation: cell(r, trIdx),
			AudioFile:   cell(r, audioIdx),
		}
		if s.Key == "" || s.Text == "" {
			continue
		}
		if s.Language == "" {
			s.Language = "unknown"
		}
		if strings.EqualFold(s.Language, "english") && s.Translation == "" {
			s.Translation = s.Text
		}
		items = append(items, s)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no samples in %s", path)
	}
	return samples.NewSet(items), nil
}

func readFirstSheet(path string) ([]string, [][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) <= 1 {
		return nil, nil, fmt.Errorf("no data rows")
	}
	return rows[0], rows[1:], nil
}

func cell(r []string, idx int) string {
	if idx < 0 || idx >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[idx])
}
