// Package sentiment scores English feedback text for polarity with a
// valence lexicon, optionally attaching a second opinion from a classifier.
package sentiment

import (
	"context"
	"math"
	"strings"
	"time"
	"unicode"

	"vanmitra-feedback/internal/logger"
	"vanmitra-feedback/internal/types"
)

const (
	boostIncr = 0.293
	boostDecr = -0.293
	capsIncr  = 0.733
	negScalar = -0.74

	exclaimIncr  = 0.292
	maxExclaims  = 4
	questionIncr = 0.18
	maxQuestion  = 0.96

	butBefore = 0.5
	butAfter  = 1.5

	// normalizeAlpha approximates the maximum expected sum.
	normalizeAlpha = 15.0

	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// Classifier is an optional heavier model whose output is kept alongside the
// lexicon result.
type Classifier interface {
	Classify(ctx context.Context, text string) (types.SecondarySentiment, error)
}

type Analyzer struct {
	classifier Classifier
	timeout    time.Duration
	log        *logger.Logger
}

// New returns an Analyzer. classifier may be nil.
func New(classifier Classifier, timeout time.Duration, log *logger.Logger) *Analyzer {
	if log == nil {
		log = logger.New()
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Analyzer{classifier: classifier, timeout: timeout, log: log.Component("sentiment")}
}

func (a *Analyzer) HasClassifier() bool { return a.classifier != nil }

// Analyze scores text. The label always comes from the lexicon; a classifier
// failure only drops the secondary result.
func (a *Analyzer) Analyze(ctx context.Context, text string) types.Sentiment {
	scores := Scores(text)
	out := types.Sentiment{
		Label:      Label(scores.Compound),
		Scores:     scores,
		Confidence: Confidence(scores.Compound),
	}
	if a.classifier == nil {
		return out
	}

	cctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	sec, err := a.classifier.Classify(cctx, text)
	if err != nil {
		a.log.WithError(err).Warn("secondary sentiment classifier failed")
		return out
	}
	out.Secondary = &sec
	return out
}

// Label buckets a compound score.
func Label(compound float64) string {
	switch {
	case compound >= positiveThreshold:
		return types.SentimentPositive
	case compound <= negativeThreshold:
		return types.SentimentNegative
	default:
		return types.SentimentNeutral
	}
}

func Confidence(compound float64) float64 {
	if compound == 0 {
		return 0.5
	}
	return math.Abs(compound)
}

type token struct {
	raw   string
	lower string
}

// Scores computes positive/negative/neutral ratios and the normalized
// compound score of text.
func Scores(text string) types.SentimentScores {
	toks := tokenize(text)
	if len(toks) == 0 {
		return types.SentimentScores{Neutral: 1}
	}
	capDiff := mixedCaps(toks)

	vals := make([]float64, len(toks))
	for i, tk := range toks {
		if _, ok := boosters[tk.lower]; ok {
			continue
		}
		v, ok := valence[tk.lower]
		if !ok || v == 0 {
			continue
		}
		if capDiff && isAllCaps(tk.raw) {
			v += sign(v) * capsIncr
		}
		for j := 1; j <= 3 && i-j >= 0; j++ {
			prev := toks[i-j]
			b, ok := boosters[prev.lower]
			if !ok {
				continue
			}
			if capDiff && isAllCaps(prev.raw) {
				b += sign(b) * capsIncr
			}
			switch j {
			case 2:
				b *= 0.95
			case 3:
				b *= 0.9
			}
			v += sign(v) * b
		}
		for j := 1; j <= 3 && i-j >= 0; j++ {
			if negations[toks[i-j].lower] {
				v *= negScalar
				break
			}
		}
		vals[i] = v
	}

	for i, tk := range toks {
		if tk.lower != "but" {
			continue
		}
		for j := range vals {
			switch {
			case j < i:
				vals[j] *= butBefore
			case j > i:
				vals[j] *= butAfter
			}
		}
		break
	}

	emph := punctuationEmphasis(text)
	var sum, pos, neg, neu float64
	for _, v := range vals {
		sum += v
		switch {
		case v > 0:
			pos += v + 1
		case v < 0:
			neg += v - 1
		default:
			neu++
		}
	}

	switch {
	case sum > 0:
		sum += emph
	case sum < 0:
		sum -= emph
	}
	switch {
	case pos > -neg:
		pos += emph
	case pos < -neg:
		neg -= emph
	}

	total := pos - neg + neu
	return types.SentimentScores{
		Positive: pos / total,
		Negative: -neg / total,
		Neutral:  neu / total,
		Compound: normalize(sum),
	}
}

func normalize(s float64) float64 {
	n := s / math.Sqrt(s*s+normalizeAlpha)
	return math.Max(-1, math.Min(1, n))
}

func punctuationEmphasis(text string) float64 {
	ex := strings.Count(text, "!")
	if ex > maxExclaims {
		ex = maxExclaims
	}
	emph := float64(ex) * exclaimIncr

	if qm := strings.Count(text, "?"); qm > 1 {
		if qm <= 3 {
			emph += float64(qm) * questionIncr
		} else {
			emph += maxQuestion
		}
	}
	return emph
}

func tokenize(text string) []token {
	fields := strings.Fields(text)
	out := make([]token, 0, len(fields))
	for _, f := range fields {
		w := strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
		})
		w = strings.Trim(w, "'")
		if w == "" {
			continue
		}
		out = append(out, token{raw: w, lower: strings.ToLower(w)})
	}
	return out
}

// mixedCaps reports whether some, but not all, tokens are upper case.
func mixedCaps(toks []token) bool {
	caps := 0
	for _, tk := range toks {
		if isAllCaps(tk.raw) {
			caps++
		}
	}
	return caps > 0 && caps < len(toks)
}

func isAllCaps(w string) bool {
	letters := 0
	for _, r := range w {
		if unicode.IsLetter(r) {
			if !unicode.IsUpper(r) {
				return false
			}
			letters++
		}
	}
	return letters > 1
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
