package transcription

import (
	"context"
	"errors"
	"hash/fnv"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"vanmitra-feedback/internal/logger"
	"vanmitra-feedback/internal/samples"
	"vanmitra-feedback/internal/types"
)

const (
	defaultBackendConfidence = 0.95
	matchedSampleConfidence  = 0.90
	randomSampleConfidence   = 0.85
)

var (
	ErrInputNotFound      = errors.New("audio file not found")
	ErrBackendUnavailable = errors.New("transcription backend unavailable")
)

// Backend is a real speech-to-text service.
type Backend interface {
	Transcribe(ctx context.Context, audioPath string) (types.Transcription, error)
}

// Adapter picks between a configured Backend and the static sample set.
// The choice is fixed at construction; a failing backend call degrades to
// the samples for that call only.
type Adapter struct {
	backend Backend
	samples *samples.Set
	timeout time.Duration
	log     *logger.Logger

	mu  sync.Mutex
	rng *rand.Rand

	seed   uint64
	seeded bool
}

type Option func(*Adapter)

// WithBackend enables the real backend. A nil backend is ignored.
func WithBackend(b Backend) Option {
	return func(a *Adapter) { a.backend = b }
}

// WithRand injects the random source used when no sample matches.
func WithRand(r *rand.Rand) Option {
	return func(a *Adapter) { a.rng = r }
}

// WithSeed makes the fallback pick a function of seed and the reference, so
// a seeded run assigns the same sample to a reference whatever the order or
// concurrency of the calls. It takes precedence over WithRand.
func WithSeed(seed uint64) Option {
	return func(a *Adapter) { a.seed, a.seeded = seed, true }
}

func WithTimeout(d time.Duration) Option {
	return func(a *Adapter) { a.timeout = d }
}

func WithLogger(l *logger.Logger) Option {
	return func(a *Adapter) { a.log = l }
}

func New(set *samples.Set, opts ...Option) *Adapter {
	a := &Adapter{
		samples: set,
		timeout: 20 * time.Second,
		rng:     rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
	}
	for _, o := range opts {
		o(a)
	}
	if a.log == nil {
		a.log = logger.New()
	}
	a.log = a.log.Component("transcription")
	if a.samples == nil {
		a.samples = samples.Default()
	}
	return a
}

// HasBackend reports whether a real backend was configured.
func (a *Adapter) HasBackend() bool { return a.backend != nil }

// Transcribe never fails: backend problems fall back to sample data.
func (a *Adapter) Transcribe(ctx context.Context, audioRef string) types.Transcription {
	log := a.log.WithField("audio_ref", audioRef)

	if a.backend != nil {
		tr, err := a.callBackend(ctx, audioRef)
		if err == nil {
			return tr
		}
		log.WithField("error", err.Error()).Warn("backend transcription failed, using sample data")
	}

	if sm, ok := a.samples.Match(audioRef); ok {
		log.WithField("sample", sm.Key).Info("matched demo sample")
		return types.Transcription{
			Text:       sm.Text,
			Language:   strings.ToLower(sm.Language),
			Confidence: matchedSampleConfidence,
			Source:     types.SourceSample,
		}
	}

	if a.samples.Len() == 0 {
		return types.Transcription{Language: "unknown", Source: types.SourceRandomSample}
	}
	sm := a.pick(audioRef)
	log.WithField("language", sm.Language).Info("using sample data for demonstration")
	return types.Transcription{
		Text:       sm.Text,
		Language:   strings.ToLower(sm.Language),
		Confidence: randomSampleConfidence,
		Source:     types.SourceRandomSample,
	}
}

func (a *Adapter) callBackend(ctx context.Context, audioRef string) (types.Transcription, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	tr, err := a.backend.Transcribe(ctx, audioRef)
	if err != nil {
		return types.Transcription{}, err
	}
	if strings.TrimSpace(tr.Text) == "" {
		return types.Transcription{}, ErrBackendUnavailable
	}
	if tr.Language == "" {
		tr.Language = "unknown"
	}
	tr.Language = strings.ToLower(tr.Language)
	if tr.Confidence <= 0 {
		tr.Confidence = defaultBackendConfidence
	}
	tr.Source = types.SourceBackend
	return tr, nil
}

func (a *Adapter) pick(audioRef string) samples.Sample {
	n := a.samples.Len()
	if a.seeded {
		h := fnv.New64a()
		_, _ = h.Write([]byte(strings.TrimSpace(audioRef)))
		return a.samples.At(rand.New(rand.NewPCG(a.seed, h.Sum64())).IntN(n))
	}
	a.mu.Lock()
	i := a.rng.IntN(n)
	a.mu.Unlock()
	return a.samples.At(i)
}
