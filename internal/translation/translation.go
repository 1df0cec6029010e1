package translation

import (
	"context"
	"strings"
	"time"

	"vanmitra-feedback/internal/logger"
	"vanmitra-feedback/internal/samples"
	"vanmitra-feedback/internal/types"
)

const (
	MethodIdentity    = "identity"
	MethodBackend     = "backend"
	MethodDictionary  = "dictionary"
	MethodPassthrough = "passthrough"

	defaultBackendConfidence = 0.80
	dictionaryConfidence     = 0.85
	passthroughConfidence    = 0.50
)

// Result is what a Backend returns. Score is nil when the backend does not
// report one.
type Result struct {
	Text  string
	Score *float64
}

type Backend interface {
	Translate(ctx context.Context, text, srcLang, tgtLang string) (Result, error)
}

// Adapter translates transcribed text to English. The backend, when set, is
// chosen once at construction.
type Adapter struct {
	backend Backend
	table   *samples.Set
	timeout time.Duration
	log     *logger.Logger
}

func New(table *samples.Set, backend Backend, timeout time.Duration, log *logger.Logger) *Adapter {
	if table == nil {
		table = samples.Default()
	}
	if log == nil {
		log = logger.New()
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Adapter{backend: backend, table: table, timeout: timeout, log: log.Component("translation")}
}

func (a *Adapter) HasBackend() bool { return a.backend != nil }

// Translate never fails; a confidence of 0.50 signals an untranslated passthrough.
func (a *Adapter) Translate(ctx context.Context, text, sourceLanguage string) types.Translation {
	if strings.EqualFold(strings.TrimSpace(sourceLanguage), "english") {
		return types.Translation{TranslatedText: text, Confidence: 1.0, Method: MethodIdentity}
	}
	log := a.log.WithField("source_language", sourceLanguage)
	log.Info("translating text to English")

	if a.backend != nil {
		if src, ok := LanguageCode(sourceLanguage); ok {
			if tr, ok := a.callBackend(ctx, text, src); ok {
				return tr
			}
		} else {
			log.Warn("no language code for source language, skipping backend")
		}
	}

	if tr, ok := a.table.Translation(text); ok {
		return types.Translation{TranslatedText: tr, Confidence: dictionaryConfidence, Method: MethodDictionary}
	}

	log.Warn("translation failed, using original text")
	return types.Translation{TranslatedText: text, Confidence: passthroughConfidence, Method: MethodPassthrough}
}

func (a *Adapter) callBackend(ctx context.Context, text, src string) (types.Translation, bool) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	res, err := a.backend.Translate(ctx, text, src, "en")
	if err != nil {
		a.log.WithError(err).Error("backend translation failed")
		return types.Translation{}, false
	}
	if strings.TrimSpace(res.Text) == "" {
		a.log.Warn("backend returned empty translation")
		return types.Translation{}, false
	}
	conf := defaultBackendConfidence
	if res.Score != nil {
		conf = *res.Score
	}
	return types.Translation{TranslatedText: res.Text, Confidence: conf, Method: MethodBackend}, true
}
