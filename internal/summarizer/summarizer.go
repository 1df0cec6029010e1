// Package summarizer shortens feedback text, preferring an abstractive model
// and falling back to the leading sentences.
package summarizer

import (
	"context"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"vanmitra-feedback/internal/logger"
	"vanmitra-feedback/internal/types"
)

const (
	MethodOriginal    = "original"
	MethodExtractive  = "extractive"
	MethodTransformer = "transformer"

	DefaultMinChars  = 100
	extractiveLength = 2
)

// Abstractive generates a free-form summary of text.
type Abstractive interface {
	Summarize(ctx context.Context, text string) (string, error)
}

type Summarizer struct {
	backend  Abstractive
	minChars int
	timeout  time.Duration
	log      *logger.Logger
}

// New returns a Summarizer. backend may be nil, in which case every summary
// is extractive.
func New(backend Abstractive, minChars int, timeout time.Duration, log *logger.Logger) *Summarizer {
	if minChars <= 0 {
		minChars = DefaultMinChars
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	if log == nil {
		log = logger.New()
	}
	return &Summarizer{backend: backend, minChars: minChars, timeout: timeout, log: log.Component("summarizer")}
}

func (s *Summarizer) HasBackend() bool { return s.backend != nil }

func (s *Summarizer) Summarize(ctx context.Context, text string) types.Summary {
	sentences := SplitSentences(text)
	if len(sentences) <= extractiveLength {
		return types.Summary{Text: text, Method: MethodOriginal}
	}

	if s.backend != nil && utf8.RuneCountInString(text) > s.minChars {
		if out, ok := s.abstractive(ctx, text); ok {
			return types.Summary{Text: out, Method: MethodTransformer}
		}
	}

	return types.Summary{
		Text:   strings.Join(sentences[:extractiveLength], " "),
		Method: MethodExtractive,
	}
}

func (s *Summarizer) abstractive(ctx context.Context, text string) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	out, err := s.backend.Summarize(ctx, text)
	if err != nil {
		s.log.WithError(err).Warn("abstractive summary failed, using extractive")
		return "", false
	}
	out = strings.TrimSpace(out)
	if out == "" {
		s.log.Warn("abstractive summary was empty, using extractive")
		return "", false
	}
	return out, true
}

// SplitSentences splits text after runs of '.', '!', '?' or the danda '।'
// that are followed by whitespace or the end of text. Terminators stay with
// their sentence.
func SplitSentences(text string) []string {
	var (
		out   []string
		start int
	)
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		if !isTerminator(runes[i]) {
			continue
		}
		j := i
		for j+1 < len(runes) && isTerminator(runes[j+1]) {
			j++
		}
		if j+1 < len(runes) && !unicode.IsSpace(runes[j+1]) {
			i = j
			continue
		}
		if sent := strings.TrimSpace(string(runes[start : j+1])); sent != "" {
			out = append(out, sent)
		}
		start = j + 1
		i = j
	}
	if tail := strings.TrimSpace(string(runes[start:])); tail != "" {
		out = append(out, tail)
	}
	return out
}

func isTerminator(r rune) bool {
	switch r {
	case '.', '!', '?', '।':
		return true
	}
	return false
}
