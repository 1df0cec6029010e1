// Package aggregator summarizes a batch of processed feedback records.
package aggregator

import "vanmitra-feedback/internal/types"

type Summary struct {
	Total             int            `json:"total"`
	Completed         int            `json:"completed"`
	Failed            int            `json:"failed"`
	BySentiment       map[string]int `json:"by_sentiment"`
	ByCategory        map[string]int `json:"by_category"`
	ByPriority        map[string]int `json:"by_priority"`
	ByDepartment      map[string]int `json:"by_department"`
	ByLanguage        map[string]int `json:"by_language"`
	HighPriorityIDs   []string       `json:"high_priority_ids"`
	AverageDurationMs float64        `json:"average_duration_ms"`
}

// Aggregate counts outcomes. Distributions cover completed records only;
// nil records are skipped.
func Aggregate(records []*types.FeedbackRecord) Summary {
	s := Summary{
		BySentiment:     map[string]int{},
		ByCategory:      map[string]int{},
		ByPriority:      map[string]int{},
		ByDepartment:    map[string]int{},
		ByLanguage:      map[string]int{},
		HighPriorityIDs: []string{},
	}
	var totalMs int64
	for _, r := range records {
		if r == nil {
			continue
		}
		s.Total++
		totalMs += r.DurationMs

		switch r.ProcessingStatus {
		case types.StatusFailed:
			s.Failed++
			continue
		case types.StatusCompleted:
			s.Completed++
		default:
			continue
		}

		if r.SourceLanguage != "" {
			s.ByLanguage[r.SourceLanguage]++
		}
		if r.Sentiment != nil {
			s.BySentiment[r.Sentiment.Label]++
		}
		if r.Category != nil {
			s.ByCategory[r.Category.Primary]++
		}
		if r.Priority != nil {
			s.ByPriority[r.Priority.Level]++
			if r.Priority.Level == types.PriorityHigh {
				s.HighPriorityIDs = append(s.HighPriorityIDs, r.ID)
			}
		}
		if r.Insights != nil {
			s.ByDepartment[r.Insights.Department]++
		}
	}
	if s.Total > 0 {
		s.AverageDurationMs = float64(totalMs) / float64(s.Total)
	}
	return s
}
