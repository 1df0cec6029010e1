package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no .env here

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "uploads", cfg.Server.UploadsDir)
	assert.True(t, cfg.Pipeline.EnableBackends)
	assert.Equal(t, 20*time.Second, cfg.Pipeline.BackendTimeout)
	assert.Equal(t, 10, cfg.Pipeline.TopKeywords)
	assert.Equal(t, 1, cfg.Pipeline.BatchConcurrency)
	assert.Equal(t, "file", cfg.Store.Driver)
	assert.Equal(t, "voice_analysis_results", cfg.Store.Path)
	assert.Equal(t, 1500*time.Millisecond, cfg.Transcription.PollInterval)
	assert.Empty(t, cfg.Transcription.URL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ENABLE_BACKENDS", "false")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("BACKEND_TIMEOUT", "3s")
	t.Setenv("SAMPLE_SEED", "42")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.Pipeline.EnableBackends)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, 3*time.Second, cfg.Pipeline.BackendTimeout)
	assert.Equal(t, int64(42), cfg.Pipeline.SampleSeed)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORE_DRIVER", "mongo")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown store driver")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Transcription: TranscriptionConfig{MaxPolls: 1},
			Summarizer:    SummarizerConfig{MaxTokens: 100},
			Pipeline:      PipelineConfig{BackendTimeout: time.Second, TopKeywords: 10, BatchConcurrency: 1},
			Store:         StoreConfig{Driver: "none"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero timeout", func(c *Config) { c.Pipeline.BackendTimeout = 0 }},
		{"zero keywords", func(c *Config) { c.Pipeline.TopKeywords = 0 }},
		{"zero concurrency", func(c *Config) { c.Pipeline.BatchConcurrency = 0 }},
		{"zero polls", func(c *Config) { c.Transcription.MaxPolls = 0 }},
		{"tiny summary", func(c *Config) { c.Summarizer.MaxTokens = 5 }},
	}

	base := valid()
	require.NoError(t, base.Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
