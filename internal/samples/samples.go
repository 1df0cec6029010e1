// Package samples holds the demo voice notes used whenever a real
// speech-to-text or translation backend is unavailable.
package samples

import (
	"path/filepath"
	"strings"
)

type Sample struct {
	Key         string `json:"key"`
	Language    string `json:"language"`
	Text        string `json:"text"`
	Translation string `json:"translation"`
	AudioFile   string `json:"audio_file"`
}

// Set is an ordered, read-only collection of samples.
type Set struct {
	items []Sample
}

func NewSet(items []Sample) *Set {
	cp := make([]Sample, len(items))
	copy(cp, items)
	return &Set{items: cp}
}

// Default returns the built-in demo set.
func Default() *Set {
	return NewSet(defaultSamples)
}

func (s *Set) Len() int { return len(s.items) }

// All returns a copy of the samples in declaration order.
func (s *Set) All() []Sample {
	out := make([]Sample, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Set) At(i int) Sample { return s.items[i] }

// Match finds the first sample tied to ref. A sample matches when the file
// stem of ref is part of the sample's audio file stem, or when ref's stem
// contains the sample key or audio file stem. Matching is case-insensitive.
func (s *Set) Match(ref string) (Sample, bool) {
	stem := strings.ToLower(fileStem(ref))
	if stem == "" {
		return Sample{}, false
	}
	for _, sm := range s.items {
		key := strings.ToLower(sm.Key)
		audio := strings.ToLower(fileStem(sm.AudioFile))
		switch {
		case audio != "" && strings.Contains(audio, stem),
			audio != "" && strings.Contains(stem, audio),
			key != "" && strings.Contains(stem, key):
			return sm, true
		}
	}
	return Sample{}, false
}

// Translation looks up the English translation of an exact sample text.
func (s *Set) Translation(text string) (string, bool) {
	for _, sm := range s.items {
		if sm.Text == text && sm.Translation != "" {
			return sm.Translation, true
		}
	}
	return "", false
}

func fileStem(p string) string {
	base := filepath.Base(strings.TrimSpace(p))
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

var defaultSamples = []Sample{
	{
		Key:         "hindi_forest_rights",
		Language:    "Hindi",
		Text:        "हमारे जंगल में अवैध कटाई हो रही है। वन विभाग को इसकी जानकारी देनी चाहिए। हमारे समुदाय के अधिकार संरक्षित होने चाहिए।",
		Translation: "Illegal cutting is happening in our forest. Forest department should be informed about this. Our community rights should be protected.",
		AudioFile:   "sample_hindi_forest.wav",
	},
	{
		Key:         "bengali_healthcare",
		Language:    "Bengali",
		Text:        "আমাদের গ্রামে স্বাস্থ্য কেন্দ্র নেই। নিকটতম হাসপাতাল ৫০ কিলোমিটার দূরে। গর্ভবতী মহিলা এবং শিশুদের জন্য এটি খুবই সমস্যা।",
		Translation: "There is no health center in our village. The nearest hospital is 50 kilometers away. This is a big problem for pregnant women and children.",
		AudioFile:   "sample_bengali_health.wav",
	},
	{
		Key:         "kannada_education",
		Language:    "Kannada",
		Text:        "ನಮ್ಮ ಮಕ್ಕಳಿಗೆ ಉತ್ತಮ ಶಿಕ್ಷಣ ಸೌಲಭ್ಯ ಬೇಕು। ಶಾಲೆಯಲ್ಲಿ ಪುಸ್ತಕಗಳು ಮತ್ತು ಶಿಕ್ಷಕರ ಕೊರತೆ ಇದೆ। ಸರ್ಕಾರ ಈ ಸಮಸ್ಯೆಗೆ ಗಮನ ಕೊಡಬೇಕು।",
		Translation: "Our children need better educational facilities. There is a shortage of books and teachers in school. Government should pay attention to this problem.",
		AudioFile:   "sample_kannada_education.wav",
	},
	{
		Key:         "tamil_water",
		Language:    "Tamil",
		Text:        "எங்கள் கிராமத்தில் தண்ணீர் பஞ்சம் உள்ளது। கிணறுகள் வறண்டு போயுள்ளன। குடிநீருக்காக மக்கள் மிகவும் சிரமப்படுகிறார்கள்।",
		Translation: "There is water scarcity in our village. Wells have dried up. People are struggling a lot for drinking water.",
		AudioFile:   "sample_tamil_water.wav",
	},
	{
		Key:         "english_positive",
		Language:    "English",
		Text:        "The new government schemes are helping our community a lot. The forest rights process has become more transparent. We are happy with the digital initiatives.",
		Translation: "The new government schemes are helping our community a lot. The forest rights process has become more transparent. We are happy with the digital initiatives.",
		AudioFile:   "sample_english_positive.wav",
	},
}
