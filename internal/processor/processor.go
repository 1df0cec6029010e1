// Package processor runs the eight analysis stages over one audio reference
// and produces a terminal FeedbackRecord.
package processor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"vanmitra-feedback/internal/actionable"
	"vanmitra-feedback/internal/categorizer"
	"vanmitra-feedback/internal/extractor"
	"vanmitra-feedback/internal/logger"
	"vanmitra-feedback/internal/priority"
	"vanmitra-feedback/internal/store"
	"vanmitra-feedback/internal/types"
)

// Stage names, in execution order.
const (
	StageTranscription = "transcription"
	StageTranslation   = "translation"
	StageSentiment     = "sentiment"
	StageKeywords      = "keywords"
	StageCategory      = "categorization"
	StageSummary       = "summarization"
	StagePriority      = "priority"
	StageInsights      = "insights"

	finalKeywords = 5
	finalPhrases  = 3
)

var (
	ErrEmptyReference  = errors.New("empty audio reference")
	ErrEmptyTranscript = errors.New("empty transcript")
)

// StageError records which stage stopped a run.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string { return e.Stage + ": " + e.Err.Error() }
func (e *StageError) Unwrap() error { return e.Err }

type Transcriber interface {
	Transcribe(ctx context.Context, audioRef string) types.Transcription
}

type Translator interface {
	Translate(ctx context.Context, text, sourceLanguage string) types.Translation
}

type SentimentAnalyzer interface {
	Analyze(ctx context.Context, text string) types.Sentiment
}

type Summarizer interface {
	Summarize(ctx context.Context, text string) types.Summary
}

// Stages holds the model-backed stages. They are built once and shared
// read-only between runs.
type Stages struct {
	Transcriber Transcriber
	Translator  Translator
	Sentiment   SentimentAnalyzer
	Summarizer  Summarizer
}

type Processor struct {
	stages      Stages
	store       store.Store
	topKeywords int
	now         func() time.Time
	log         *logger.Logger
}

type Option func(*Processor)

// WithStore appends every terminal record to st.
func WithStore(st store.Store) Option {
	return func(p *Processor) { p.store = st }
}

func WithTopKeywords(n int) Option {
	return func(p *Processor) { p.topKeywords = n }
}

func WithClock(now func() time.Time) Option {
	return func(p *Processor) { p.now = now }
}

func WithLogger(l *logger.Logger) Option {
	return func(p *Processor) { p.log = l }
}

func New(stages Stages, opts ...Option) (*Processor, error) {
	switch {
	case stages.Transcriber == nil:
		return nil, errors.New("processor: transcriber is required")
	case stages.Translator == nil:
		return nil, errors.New("processor: translator is required")
	case stages.Sentiment == nil:
		return nil, errors.New("processor: sentiment analyzer is required")
	case stages.Summarizer == nil:
		return nil, errors.New("processor: summarizer is required")
	}
	p := &Processor{
		stages:      stages,
		topKeywords: extractor.DefaultTopN,
		now:         time.Now,
	}
	for _, o := range opts {
		o(p)
	}
	if p.log == nil {
		p.log = logger.New()
	}
	p.log = p.log.Component("processor")
	if p.topKeywords <= 0 {
		p.topKeywords = extractor.DefaultTopN
	}
	return p, nil
}

// Process runs every stage over audioRef. It never panics and never returns
// an error: failures end in a record with status failed and ErrorDetail set.
func (p *Processor) Process(ctx context.Context, audioRef string) *types.FeedbackRecord {
	start := time.Now()
	rec := &types.FeedbackRecord{
		ID:               uuid.NewString(),
		AudioReference:   audioRef,
		Timestamp:        p.now().UTC(),
		ProcessingStatus: types.StatusPending,
	}
	log := p.log.WithFields(logrus.Fields{
		"record_id":       rec.ID,
		"audio_reference": audioRef,
	})
	log.Info("starting voice feedback processing")

	err := p.run(ctx, rec, log)
	rec.DurationMs = time.Since(start).Milliseconds()
	if err != nil {
		rec.ErrorDetail = err.Error()
		rec.ProcessingStatus = types.StatusFailed
		log.WithField("error", err.Error()).WithField("duration_ms", rec.DurationMs).Error("voice feedback processing failed")
	} else {
		rec.FinalAnalysis = finalAnalysis(rec)
		rec.ProcessingStatus = types.StatusCompleted
		log.WithField("duration_ms", rec.DurationMs).Info("voice feedback processing completed")
	}

	p.persist(ctx, rec, log)
	return rec
}

func (p *Processor) run(ctx context.Context, rec *types.FeedbackRecord, log *logrus.Entry) (err error) {
	stage := ""
	defer func() {
		if r := recover(); r != nil {
			err = &StageError{Stage: stage, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	enter := func(name string) error {
		stage = name
		if cerr := ctx.Err(); cerr != nil {
			return &StageError{Stage: name, Err: cerr}
		}
		log.WithField("stage", name).Info("running stage")
		return nil
	}

	// 1. transcription
	if err := enter(StageTranscription); err != nil {
		return err
	}
	if strings.TrimSpace(rec.AudioReference) == "" {
		return &StageError{Stage: stage, Err: ErrEmptyReference}
	}
	tr := p.stages.Transcriber.Transcribe(ctx, rec.AudioReference)
	rec.Transcription = &tr
	rec.OriginalText = tr.Text
	rec.SourceLanguage = strings.ToLower(strings.TrimSpace(tr.Language))
	if strings.TrimSpace(tr.Text) == "" {
		return &StageError{Stage: stage, Err: ErrEmptyTranscript}
	}

	// 2. translation
	if err := enter(StageTranslation); err != nil {
		return err
	}
	tl := p.stages.Translator.Translate(ctx, rec.OriginalText, rec.SourceLanguage)
	rec.Translation = &tl
	rec.TranslatedText = tl.TranslatedText
	english := tl.TranslatedText

	// 3. sentiment
	if err := enter(StageSentiment); err != nil {
		return err
	}
	sent := p.stages.Sentiment.Analyze(ctx, english)
	rec.Sentiment = &sent

	// 4. keywords
	if err := enter(StageKeywords); err != nil {
		return err
	}
	kw := extractor.Extract(english, p.topKeywords)
	rec.Keywords = &kw

	// 5. categorization
	if err := enter(StageCategory); err != nil {
		return err
	}
	cat := categorizer.Categorize(english)
	rec.Category = &cat

	// 6. summarization
	if err := enter(StageSummary); err != nil {
		return err
	}
	sum := p.stages.Summarizer.Summarize(ctx, english)
	rec.Summary = &sum

	// 7. priority
	if err := enter(StagePriority); err != nil {
		return err
	}
	pri := priority.Assess(sent, cat, kw.Keywords)
	rec.Priority = &pri

	// 8. insights
	if err := enter(StageInsights); err != nil {
		return err
	}
	ins := actionable.Generate(cat, sent, pri)
	rec.Insights = &ins

	return nil
}

func (p *Processor) persist(ctx context.Context, rec *types.FeedbackRecord, log *logrus.Entry) {
	if p.store == nil {
		return
	}
	// A cancelled request still gets its terminal snapshot written.
	if err := p.store.Append(context.WithoutCancel(ctx), rec); err != nil {
		log.WithField("error", err.Error()).Error("failed to persist record")
	}
}

func finalAnalysis(rec *types.FeedbackRecord) *types.FinalAnalysis {
	return &types.FinalAnalysis{
		OriginalText:          rec.OriginalText,
		OriginalLanguage:      rec.SourceLanguage,
		EnglishText:           rec.TranslatedText,
		Sentiment:             rec.Sentiment.Label,
		SentimentConfidence:   rec.Sentiment.Confidence,
		Keywords:              head(rec.Keywords.Keywords, finalKeywords),
		KeyPhrases:            head(rec.Keywords.KeyPhrases, finalPhrases),
		IssueCategory:         rec.Category.Primary,
		PriorityLevel:         rec.Priority.Level,
		Summary:               rec.Summary.Text,
		ResponsibleDepartment: rec.Insights.Department,
		ImmediateActions:      head(rec.Insights.ImmediateActions, len(rec.Insights.ImmediateActions)),
		Timeline:              rec.Insights.Timeline,
	}
}

func head(s []string, n int) []string {
	n = min(n, len(s))
	out := make([]string, n)
	copy(out, s[:n])
	return out
}
