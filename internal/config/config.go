package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is the root application configuration.
type Config struct {
	Environment   string              `env:"ENVIRONMENT" env-default:"local"`
	Log           LogConfig
	Server        ServerConfig
	Transcription TranscriptionConfig
	Translation   TranslationConfig
	Classifier    ClassifierConfig
	Summarizer    SummarizerConfig
	Pipeline      PipelineConfig
	Store         StoreConfig
}

type LogConfig struct {
	Level string `env:"LOG_LEVEL" env-default:"info"`
}

type ServerConfig struct {
	Port         string        `env:"PORT"                 env-default:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT"  env-default:"15s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" env-default:"60s"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT"  env-default:"120s"`

	// UploadsDir is the only tree /process may read audio from.
	UploadsDir string `env:"UPLOADS_DIR" env-default:"uploads"`
}

// TranscriptionConfig points at the speech-to-text service. An empty URL
// means transcription always uses the demo samples.
type TranscriptionConfig struct {
	URL          string        `env:"TRANSCRIBE_URL"`
	PollInterval time.Duration `env:"TRANSCRIBE_POLL_INTERVAL" env-default:"1500ms"`
	MaxPolls     int           `env:"TRANSCRIBE_MAX_POLLS"     env-default:"40"`
}

type TranslationConfig struct {
	URL    string `env:"TRANSLATE_URL"`
	APIKey string `env:"TRANSLATE_API_KEY"`
}

// ClassifierConfig configures the LLM gateway used for the secondary
// sentiment classifier.
type ClassifierConfig struct {
	GatewayURL    string  `env:"LLM_GATEWAY_URL"`
	APIKey        string  `env:"LLM_API_KEY"`
	Model         string  `env:"LLM_MODEL"        env-default:"gpt-4o-mini"`
	RatePerSecond float64 `env:"LLM_RATE_PER_SEC" env-default:"2"`
}

type SummarizerConfig struct {
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`
	Model           string `env:"SUMMARY_MODEL"      env-default:"claude-haiku-4-5-20251001"`
	MinChars        int    `env:"SUMMARY_MIN_CHARS"  env-default:"100"`
	MaxTokens       int64  `env:"SUMMARY_MAX_TOKENS" env-default:"100"`
}

type PipelineConfig struct {
	// EnableBackends=false forces every stage onto its static fallback.
	EnableBackends   bool          `env:"ENABLE_BACKENDS"   env-default:"true"`
	BackendTimeout   time.Duration `env:"BACKEND_TIMEOUT"   env-default:"20s"`
	TopKeywords      int           `env:"TOP_KEYWORDS"      env-default:"10"`
	SampleSeed       int64         `env:"SAMPLE_SEED"       env-default:"0"`
	SamplesPath      string        `env:"SAMPLES_PATH"`
	BatchConcurrency int           `env:"BATCH_CONCURRENCY" env-default:"1"`
}

type StoreConfig struct {
	Driver string `env:"STORE_DRIVER" env-default:"file"`
	Path   string `env:"STORE_PATH"   env-default:"voice_analysis_results"`
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load() // loads .env

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate performs range checks on the loaded configuration.
func (c *Config) Validate() error {
	if c.Pipeline.BackendTimeout <= 0 {
		return fmt.Errorf("backend_timeout must be > 0 (got %s)", c.Pipeline.BackendTimeout)
	}
	if c.Pipeline.TopKeywords <= 0 {
		return fmt.Errorf("top_keywords must be > 0 (got %d)", c.Pipeline.TopKeywords)
	}
	if c.Pipeline.BatchConcurrency <= 0 {
		return fmt.Errorf("batch_concurrency must be > 0 (got %d)", c.Pipeline.BatchConcurrency)
	}
	if c.Transcription.MaxPolls <= 0 {
		return fmt.Errorf("transcribe_max_polls must be > 0 (got %d)", c.Transcription.MaxPolls)
	}
	if c.Summarizer.MaxTokens < 20 {
		return fmt.Errorf("summary_max_tokens must be >= 20 (got %d)", c.Summarizer.MaxTokens)
	}
	switch c.Store.Driver {
	case "file", "sqlite", "none":
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	return nil
}
