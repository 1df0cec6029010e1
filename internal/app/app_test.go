package app

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vanmitra-feedback/internal/config"
	"vanmitra-feedback/internal/logger"
	"vanmitra-feedback/internal/pipeline"
	"vanmitra-feedback/internal/store"
	"vanmitra-feedback/internal/types"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Environment:   "test",
		Transcription: config.TranscriptionConfig{PollInterval: time.Millisecond, MaxPolls: 1},
		Summarizer:    config.SummarizerConfig{MinChars: 100, MaxTokens: 100},
		Pipeline: config.PipelineConfig{
			EnableBackends:   true,
			BackendTimeout:   time.Second,
			TopKeywords:      10,
			SampleSeed:       7,
			BatchConcurrency: 2,
		},
		Store: config.StoreConfig{Driver: store.DriverFile, Path: t.TempDir()},
	}
}

func TestBuild_NoBackendsConfigured(t *testing.T) {
	a, err := Build(context.Background(), testConfig(t), logger.Discard())
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, Backends{}, a.Backends)
	assert.Equal(t, 5, a.Samples.Len())

	rec := a.Processor.Process(context.Background(), "uploads/sample_tamil_water.wav")
	require.Equal(t, types.StatusCompleted, rec.ProcessingStatus, rec.ErrorDetail)
	assert.Equal(t, types.CategoryWaterSupply, rec.Category.Primary)

	got, err := a.Store.Get(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
}

func TestBuild_OfflineIgnoresBackendSettings(t *testing.T) {
	cfg := testConfig(t)
	cfg.Pipeline.EnableBackends = false
	cfg.Transcription.URL = "http://127.0.0.1:1"
	cfg.Translation.URL = "http://127.0.0.1:1"
	cfg.Classifier.GatewayURL = "http://127.0.0.1:1"
	cfg.Classifier.APIKey = "k"
	cfg.Summarizer.AnthropicAPIKey = "k"

	a, err := Build(context.Background(), cfg, logger.Discard())
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, Backends{}, a.Backends)
}

func TestBuild_BackendsEnabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Transcription.URL = "http://127.0.0.1:1"
	cfg.Translation.URL = "http://127.0.0.1:1"
	cfg.Classifier.GatewayURL = "http://127.0.0.1:1"
	cfg.Classifier.APIKey = "k"
	cfg.Classifier.Model = "m"
	cfg.Classifier.RatePerSecond = 1
	cfg.Summarizer.AnthropicAPIKey = "k"
	cfg.Summarizer.Model = "claude-haiku-4-5"
	cfg.Store.Driver = store.DriverNone

	a, err := Build(context.Background(), cfg, logger.Discard())
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, Backends{Transcription: true, Translation: true, Classifier: true, Summarizer: true}, a.Backends)
}

func TestBuild_SeededBatchIsReproducible(t *testing.T) {
	refs := make([]string, 40)
	for i := range refs {
		refs[i] = fmt.Sprintf("inbox/note_%02d.ogg", i)
	}

	run := func() []string {
		cfg := testConfig(t)
		cfg.Pipeline.SampleSeed = 42
		cfg.Store.Driver = store.DriverNone
		a, err := Build(context.Background(), cfg, logger.Discard())
		require.NoError(t, err)
		defer a.Close()

		out := pipeline.RunBatch(context.Background(), a.Processor, refs, 4, logger.Discard())
		texts := make([]string, len(out))
		for i, rec := range out {
			require.Equal(t, types.StatusCompleted, rec.ProcessingStatus, rec.ErrorDetail)
			assert.Equal(t, types.SourceRandomSample, rec.Transcription.Source)
			texts[i] = rec.OriginalText
		}
		return texts
	}

	first := run()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, run())
	}
}

func TestBuild_Errors(t *testing.T) {
	_, err := Build(context.Background(), nil, logger.Discard())
	assert.Error(t, err)

	cfg := testConfig(t)
	cfg.Pipeline.SamplesPath = filepath.Join(t.TempDir(), "missing.xlsx")
	_, err = Build(context.Background(), cfg, logger.Discard())
	assert.Error(t, err)

	cfg = testConfig(t)
	cfg.Store.Driver = "mongo"
	_, err = Build(context.Background(), cfg, logger.Discard())
	assert.ErrorContains(t, err, "unknown driver")
}
