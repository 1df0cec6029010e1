package types

import "time"

type ProcessingStatus string

const (
	StatusPending   ProcessingStatus = "pending"
	StatusCompleted ProcessingStatus = "completed"
	StatusFailed    ProcessingStatus = "failed"
)

// Terminal reports whether no further stage may touch the record.
func (s ProcessingStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Sentiment labels
const (
	SentimentPositive = "Positive"
	SentimentNegative = "Negative"
	SentimentNeutral  = "Neutral"
)

// Priority levels
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// Issue categories, in the fixed enumeration order used for tie-breaks.
const (
	CategoryForestRights          = "Forest Rights"
	CategoryHealthcare            = "Healthcare"
	CategoryEducation             = "Education"
	CategoryWaterSupply           = "Water Supply"
	CategoryEmployment            = "Employment"
	CategoryInfrastructure        = "Infrastructure"
	CategoryCulturalPreservation  = "Cultural Preservation"
	CategoryGeneralCommunityIssue = "General Community Issue"
)

// Transcription sources
const (
	SourceBackend      = "backend"
	SourceSample       = "sample"
	SourceRandomSample = "random_sample"
)

type Transcription struct {
	Text       string  `json:"text"`
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
}

type Translation struct {
	TranslatedText string  `json:"translated_text"`
	Confidence     float64 `json:"confidence"`
	Method         string  `json:"method"`
}

type SentimentScores struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
	Compound float64 `json:"compound"`
}

// SecondarySentiment is supplementary output of a heavier classifier.
// It never overrides the lexicon label.
type SecondarySentiment struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type Sentiment struct {
	Label      string              `json:"label"`
	Scores     SentimentScores     `json:"scores"`
	Confidence float64             `json:"confidence"`
	Secondary  *SecondarySentiment `json:"secondary,omitempty"`
}

type Keywords struct {
	Keywords    []string       `json:"keywords"`
	KeyPhrases  []string       `json:"key_phrases"`
	Frequencies map[string]int `json:"frequencies"`
}

type Category struct {
	Primary    string         `json:"primary"`
	AllNonZero []string       `json:"all_non_zero"`
	Weights    map[string]int `json:"weights"`
	Confidence float64        `json:"confidence"`
}

type Summary struct {
	Text   string `json:"text"`
	Method string `json:"method"`
}

type Priority struct {
	Level    string   `json:"level"`
	Score    int      `json:"score"`
	Factors  []string `json:"factors"`
	Timeline string   `json:"timeline"`
}

type Insights struct {
	Department       string   `json:"department"`
	ImmediateActions []string `json:"immediate_actions"`
	FollowUpActions  []string `json:"follow_up_actions"`
	EscalationPath   []string `json:"escalation_path"`
	SuccessMetrics   []string `json:"success_metrics"`
	Timeline         string   `json:"timeline"`
}

// FinalAnalysis is a denormalized view of a completed record for display.
type FinalAnalysis struct {
	OriginalText          string   `json:"original_text"`
	OriginalLanguage      string   `json:"original_language"`
	EnglishText           string   `json:"english_text"`
	Sentiment             string   `json:"sentiment"`
	SentimentConfidence   float64  `json:"sentiment_confidence"`
	Keywords              []string `json:"keywords"`
	KeyPhrases            []string `json:"key_phrases"`
	IssueCategory         string   `json:"issue_category"`
	PriorityLevel         string   `json:"priority_level"`
	Summary               string   `json:"summary"`
	ResponsibleDepartment string   `json:"responsible_department"`
	ImmediateActions      []string `json:"immediate_actions"`
	Timeline              string   `json:"timeline"`
}

// FeedbackRecord is the unit of work flowing through the pipeline.
type FeedbackRecord struct {
	ID               string           `json:"id"`
	AudioReference   string           `json:"audio_reference"`
	Timestamp        time.Time        `json:"timestamp"`
	SourceLanguage   string           `json:"source_language,omitempty"`
	OriginalText     string           `json:"original_text,omitempty"`
	TranslatedText   string           `json:"translated_text,omitempty"`
	Transcription    *Transcription   `json:"transcription,omitempty"`
	Translation      *Translation     `json:"translation,omitempty"`
	Sentiment        *Sentiment       `json:"sentiment,omitempty"`
	Keywords         *Keywords        `json:"keywords,omitempty"`
	Category         *Category        `json:"category,omitempty"`
	Summary          *Summary         `json:"summary,omitempty"`
	Priority         *Priority        `json:"priority,omitempty"`
	Insights         *Insights        `json:"insights,omitempty"`
	FinalAnalysis    *FinalAnalysis   `json:"final_analysis,omitempty"`
	ProcessingStatus ProcessingStatus `json:"processing_status"`
	ErrorDetail      string           `json:"error_detail,omitempty"`
	DurationMs       int64            `json:"duration_ms"`
}
