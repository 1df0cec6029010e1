package priority

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vanmitra-feedback/internal/sentiment"
	"vanmitra-feedback/internal/types"
)

func sentimentOf(compound float64) types.Sentiment {
	return types.Sentiment{
		Label:  sentiment.Label(compound),
		Scores: types.SentimentScores{Compound: compound},
	}
}

var water = types.Category{Primary: types.CategoryWaterSupply}

func TestAssess_WaterScarcity(t *testing.T) {
	got := Assess(sentimentOf(-0.6486), water, []string{"water", "scarcity", "village", "wells"})

	assert.Equal(t, types.PriorityHigh, got.Level)
	assert.Equal(t, 5, got.Score)
	assert.Equal(t, []string{"High negative sentiment", "High-priority category: Water Supply"}, got.Factors)
	assert.Equal(t, "Immediate action required (within 24-48 hours)", got.Timeline)
}

func TestAssess_PositiveGeneralIsLow(t *testing.T) {
	got := Assess(sentimentOf(0.75), types.Category{Primary: types.CategoryGeneralCommunityIssue}, []string{"government", "schemes"})

	assert.Equal(t, types.PriorityLow, got.Level)
	assert.Zero(t, got.Score)
	assert.Empty(t, got.Factors)
	assert.Equal(t, "Address within 1 month", got.Timeline)
}

func TestAssess_SentimentBands(t *testing.T) {
	edu := types.Category{Primary: types.CategoryEducation}
	tests := []struct {
		compound float64
		score    int
		factor   string
	}{
		{-0.61, 3, "High negative sentiment"},
		{-0.6, 2, "Moderate negative sentiment"},
		{-0.31, 2, "Moderate negative sentiment"},
		{-0.3, 1, "Mild negative sentiment"},
		{-0.05, 1, "Mild negative sentiment"},
	}
	for _, tt := range tests {
		got := Assess(sentimentOf(tt.compound), edu, nil)
		assert.Equal(t, tt.score, got.Score, "compound %v", tt.compound)
		assert.Equal(t, []string{tt.factor}, got.Factors)
	}
}

func TestAssess_UrgencyKeywords(t *testing.T) {
	got := Assess(sentimentOf(0), types.Category{Primary: types.CategoryInfrastructure},
		[]string{"bridge", "emergency", "critical", "immediately", "urgent"})

	assert.Equal(t, 4, got.Score)
	assert.Equal(t, types.PriorityHigh, got.Level)
	assert.Equal(t, []string{"Urgency indicators found: 4"}, got.Factors)
}

func TestAssess_EachUrgencyWordCountsOnce(t *testing.T) {
	got := Assess(sentimentOf(0), types.Category{}, []string{"crisis", "crisis", "crisis"})
	assert.Equal(t, 1, got.Score)
	assert.Equal(t, types.PriorityLow, got.Level)
}

func TestAssess_MonotonicInCompound(t *testing.T) {
	cats := []types.Category{water, {Primary: types.CategoryEmployment}, {Primary: types.CategoryGeneralCommunityIssue}}
	kw := []string{"danger", "road"}
	for _, cat := range cats {
		prev := -1
		for c := 1.0; c >= -1.0; c -= 0.01 {
			got := Assess(sentimentOf(c), cat, kw)
			assert.GreaterOrEqual(t, got.Score, prev, "category %s compound %.2f", cat.Primary, c)
			prev = got.Score
		}
	}
}

func TestLevel(t *testing.T) {
	assert.Equal(t, types.PriorityLow, Level(0))
	assert.Equal(t, types.PriorityLow, Level(1))
	assert.Equal(t, types.PriorityMedium, Level(2))
	assert.Equal(t, types.PriorityMedium, Level(3))
	assert.Equal(t, types.PriorityHigh, Level(4))
	assert.Equal(t, types.PriorityHigh, Level(9))
}

func TestTimeline(t *testing.T) {
	assert.Equal(t, "Action needed within 1-2 weeks", Timeline(types.PriorityMedium))
	assert.Equal(t, "Address within 1 month", Timeline("Unknown"))
}
