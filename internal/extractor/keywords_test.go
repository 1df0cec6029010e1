package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waterText = "There is water scarcity in our village. Wells have dried up. People are struggling a lot for drinking water."

func TestExtract_WaterFeedback(t *testing.T) {
	got := Extract(waterText, 10)

	assert.Equal(t, []string{
		"water", "scarcity", "village", "wells", "dried", "people", "struggling", "lot", "drinking",
	}, got.Keywords)
	assert.Equal(t, []string{
		"water scarcity", "scarcity village", "village wells", "wells dried", "dried people",
	}, got.KeyPhrases)
	assert.Equal(t, 2, got.Frequencies["water"])
	assert.Equal(t, 1, got.Frequencies["lot"])
	assert.Len(t, got.Frequencies, len(got.Keywords))
}

func TestExtract_TopN(t *testing.T) {
	got := Extract(waterText, 3)
	assert.Equal(t, []string{"water", "scarcity", "village"}, got.Keywords)
	assert.Len(t, got.Frequencies, 3)
	assert.Len(t, got.KeyPhrases, 5)
}

func TestExtract_DefaultTopN(t *testing.T) {
	text := "alpha bravo charlie delta echo foxtrot golf hotel india juliet kilo lima"
	got := Extract(text, 0)
	assert.Len(t, got.Keywords, DefaultTopN)
	assert.Equal(t, "alpha", got.Keywords[0])
}

func TestExtract_FrequencyThenFirstOccurrence(t *testing.T) {
	got := Extract("road bridge road school bridge road", 10)
	assert.Equal(t, []string{"road", "bridge", "school"}, got.Keywords)
	assert.Equal(t, map[string]int{"road": 3, "bridge": 2, "school": 1}, got.Frequencies)
	assert.Equal(t, []string{"bridge road", "road bridge", "road school", "school bridge"}, got.KeyPhrases)
}

func TestExtract_BigramsSkipStopwords(t *testing.T) {
	got := Extract("The hospital is far from the village", 10)
	assert.Equal(t, []string{"hospital far", "far village"}, got.KeyPhrases)
}

func TestExtract_Empty(t *testing.T) {
	got := Extract("", 10)
	assert.Empty(t, got.Keywords)
	assert.Empty(t, got.KeyPhrases)
	assert.Empty(t, got.Frequencies)
}

func TestExtract_Idempotent(t *testing.T) {
	assert.Equal(t, Extract(waterText, 10), Extract(waterText, 10))
}

func TestExtract_HyphenatedWordsDoNotFormPhrases(t *testing.T) {
	got := Extract("self-help group meeting", 10)
	assert.Equal(t, []string{"group", "meeting"}, got.Keywords)
	assert.Equal(t, []string{"group meeting"}, got.KeyPhrases)
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"stopwords and short words", "We are on the way to a big fair", []string{"way", "big", "fair"}},
		{"digits split tokens", "50 kilometers away", []string{"kilometers", "away"}},
		{"contractions", "We don't have wages", []string{"wages"}},
		{"case folded", "FOREST Rights", []string{"forest", "rights"}},
		{"non latin letters", "ನಮ್ಮ school", []string{"school"}},
		{"hyphenated words dropped whole", "self-help groups need well-built roads", []string{"groups", "need", "roads"}},
		{"edge hyphens trimmed", "-- forest -- rights", []string{"forest", "rights"}},
		{"curly apostrophe", "We don’t get wages", []string{"get", "wages"}},
		{"alphanumerics dropped", "road no5 village", []string{"road", "village"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.in)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}
