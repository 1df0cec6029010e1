// Package app wires configuration into a ready-to-use processor. Every
// backend is decided here, once, and handed to the stages as a dependency.
package app

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"vanmitra-feedback/internal/config"
	"vanmitra-feedback/internal/dataset"
	"vanmitra-feedback/internal/llm"
	"vanmitra-feedback/internal/logger"
	"vanmitra-feedback/internal/processor"
	"vanmitra-feedback/internal/samples"
	"vanmitra-feedback/internal/sentiment"
	"vanmitra-feedback/internal/store"
	"vanmitra-feedback/internal/summarizer"
	"vanmitra-feedback/internal/transcription"
	"vanmitra-feedback/internal/translation"
)

// Backends reports which optional model backends are live.
type Backends struct {
	Transcription bool `json:"transcription"`
	Translation   bool `json:"translation"`
	Classifier    bool `json:"classifier"`
	Summarizer    bool `json:"summarizer"`
}

type App struct {
	Config    *config.Config
	Log       *logger.Logger
	Samples   *samples.Set
	Store     store.Store
	Processor *processor.Processor
	Backends  Backends
}

func Build(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	if cfg == nil {
		return nil, errors.New("app: nil config")
	}
	if log == nil {
		log = logger.New()
	}
	log = log.Component("app")
	timeout := cfg.Pipeline.BackendTimeout

	set := samples.Default()
	if cfg.Pipeline.SamplesPath != "" {
		loaded, err := dataset.LoadSamples(cfg.Pipeline.SamplesPath)
		if err != nil {
			return nil, err
		}
		set = loaded
		log.WithField("samples", set.Len()).WithField("path", cfg.Pipeline.SamplesPath).Info("loaded custom demo samples")
	}

	tOpts := []transcription.Option{
		transcription.WithTimeout(timeout),
		transcription.WithLogger(log),
	}
	if cfg.Pipeline.SampleSeed != 0 {
		tOpts = append(tOpts, transcription.WithSeed(uint64(cfg.Pipeline.SampleSeed)))
	} else {
		seed := uint64(time.Now().UnixNano())
		tOpts = append(tOpts, transcription.WithRand(rand.New(rand.NewPCG(seed, seed>>1))))
	}

	var (
		backends   Backends
		trBackend  translation.Backend
		classifier sentiment.Classifier
		abstract   summarizer.Abstractive
	)
	if cfg.Pipeline.EnableBackends {
		if cfg.Transcription.URL != "" {
			tOpts = append(tOpts, transcription.WithBackend(
				transcription.NewHTTPBackend(cfg.Transcription.URL, cfg.Transcription.PollInterval, cfg.Transcription.MaxPolls, log)))
			backends.Transcription = true
		}
		if cfg.Translation.URL != "" {
			trBackend = translation.NewHTTPBackend(cfg.Translation.URL, cfg.Translation.APIKey)
			backends.Translation = true
		}
		gw, err := llm.NewGateway(llm.GatewayConfig{
			URL:           cfg.Classifier.GatewayURL,
			APIKey:        cfg.Classifier.APIKey,
			Model:         cfg.Classifier.Model,
			RatePerSecond: cfg.Classifier.RatePerSecond,
			HTTPTimeout:   timeout,
			MaxRetryTime:  timeout,
		}, log)
		switch {
		case err == nil:
			classifier = sentiment.NewGatewayClassifier(gw)
			backends.Classifier = true
		case !errors.Is(err, llm.ErrNotConfigured):
			return nil, err
		}
		if cfg.Summarizer.AnthropicAPIKey != "" {
			abstract = summarizer.NewClaudeBackend(cfg.Summarizer.AnthropicAPIKey, cfg.Summarizer.Model, cfg.Summarizer.MaxTokens)
			backends.Summarizer = true
		}
	}
	log.WithField("backends", backends).Info("model backends initialised")

	st, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.Path)
	if err != nil {
		return nil, err
	}

	proc, err := processor.New(processor.Stages{
		Transcriber: transcription.New(set, tOpts...),
		Translator:  translation.New(set, trBackend, timeout, log),
		Sentiment:   sentiment.New(classifier, timeout, log),
		Summarizer:  summarizer.New(abstract, cfg.Summarizer.MinChars, timeout, log),
	},
		processor.WithStore(st),
		processor.WithTopKeywords(cfg.Pipeline.TopKeywords),
		processor.WithLogger(log),
	)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	return &App{
		Config:    cfg,
		Log:       log,
		Samples:   set,
		Store:     st,
		Processor: proc,
		Backends:  backends,
	}, nil
}

func (a *App) Close() error {
	return a.Store.Close()
}
