// Package priority scores how urgently a piece of feedback needs attention.
package priority

import (
	"fmt"
	"strings"

	"vanmitra-feedback/internal/types"
)

const (
	highThreshold   = 4
	mediumThreshold = 2
)

// UrgencyWords are counted as substrings of the joined keyword list.
var UrgencyWords = []string{"urgent", "emergency", "immediate", "crisis", "danger", "critical"}

var highPriorityCategories = map[string]bool{
	types.CategoryForestRights: true,
	types.CategoryHealthcare:   true,
	types.CategoryWaterSupply:  true,
}

var timelines = map[string]string{
	types.PriorityHigh:   "Immediate action required (within 24-48 hours)",
	types.PriorityMedium: "Action needed within 1-2 weeks",
	types.PriorityLow:    "Address within 1 month",
}

// Assess combines sentiment, category and urgency keywords into a score.
func Assess(sent types.Sentiment, cat types.Category, keywords []string) types.Priority {
	score := 0
	factors := []string{}

	if sent.Label == types.SentimentNegative {
		c := sent.Scores.Compound
		switch {
		case c < -0.6:
			score += 3
			factors = append(factors, "High negative sentiment")
		case c < -0.3:
			score += 2
			factors = append(factors, "Moderate negative sentiment")
		default:
			score++
			factors = append(factors, "Mild negative sentiment")
		}
	}

	if highPriorityCategories[cat.Primary] {
		score += 2
		factors = append(factors, "High-priority category: "+cat.Primary)
	}

	joined := strings.ToLower(strings.Join(keywords, " "))
	urgent := 0
	for _, w := range UrgencyWords {
		if strings.Contains(joined, w) {
			urgent++
		}
	}
	if urgent > 0 {
		score += urgent
		factors = append(factors, fmt.Sprintf("Urgency indicators found: %d", urgent))
	}

	level := Level(score)
	return types.Priority{Level: level, Score: score, Factors: factors, Timeline: Timeline(level)}
}

func Level(score int) string {
	switch {
	case score >= highThreshold:
		return types.PriorityHigh
	case score >= mediumThreshold:
		return types.PriorityMedium
	default:
		return types.PriorityLow
	}
}

// Timeline returns the response window for a priority level.
func Timeline(level string) string {
	if t, ok := timelines[level]; ok {
		return t
	}
	return timelines[types.PriorityLow]
}
