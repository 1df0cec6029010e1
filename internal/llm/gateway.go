// Package llm is a small client for an OpenAI-compatible chat gateway.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"
	"vanmitra-feedback/internal/logger"
)

var ErrNotConfigured = errors.New("llm gateway not configured")

type Gateway struct {
	url          string
	apiKey       string
	model        string
	httpClient   *http.Client
	limiter      *rate.Limiter
	maxRetryTime time.Duration
	log          *logger.Logger
}

type GatewayConfig struct {
	URL           string
	APIKey        string
	Model         string
	RatePerSecond float64
	HTTPTimeout   time.Duration
	MaxRetryTime  time.Duration
}

func NewGateway(cfg GatewayConfig, log *logger.Logger) (*Gateway, error) {
	if cfg.URL == "" || cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 25 * time.Second
	}
	if cfg.MaxRetryTime <= 0 {
		cfg.MaxRetryTime = 45 * time.Second
	}
	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	if log == nil {
		log = logger.New()
	}
	return &Gateway{
		url:          cfg.URL,
		apiKey:       cfg.APIKey,
		model:        cfg.Model,
		httpClient:   &http.Client{Timeout: cfg.HTTPTimeout},
		limiter:      rate.NewLimiter(limit, 1),
		maxRetryTime: cfg.MaxRetryTime,
		log:          log.Component("llm-gateway"),
	}, nil
}

// CompleteJSON sends prompt as a single user message and decodes the first
// JSON object found in the reply into out.
func (g *Gateway) CompleteJSON(ctx context.Context, prompt string, out any) error {
	reqBody := map[string]any{
		"model": g.model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"temperature": 0.0,
	}
	data, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("llm: marshal request: %w", err)
	}

	var lastErr error
	op := func() error {
		if err := g.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(data))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
		req.Header.Set("Content-Type", "application/json")

		resp, err := g.httpClient.Do(req)
		if err != nil {
			lastErr = err
			g.log.WithError(err).Warn("llm request failed")
			return err
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		g.log.WithField("http_status", resp.StatusCode).Debug("llm raw:\n" + string(body))

		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("llm server error: %s", string(body))
			return lastErr
		}

		// Try choices[0].message.content (OpenAI-like)
		if inner := ContentFromChoices(body); inner != "" {
			if err := json.Unmarshal([]byte(inner), out); err == nil {
				lastErr = nil
				return nil
			}
		}
		// Fallback: find first balanced JSON in response body
		if fallback := ExtractJSON(string(body)); fallback != "" {
			if err := json.Unmarshal([]byte(fallback), out); err == nil {
				lastErr = nil
				return nil
			}
		}

		lastErr = fmt.Errorf("no JSON found in LLM output")
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			// Permanent: don't retry on client errors
			return backoff.Permanent(fmt.Errorf("llm client error %d: %s", resp.StatusCode, string(body)))
		}
		return lastErr
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = g.maxRetryTime
	if err := backoff.Retry(op, backoff.WithContext(b, ctx)); err != nil {
		return fmt.Errorf("llm completion failed: %w", err)
	}
	return nil
}

// ContentFromChoices reads openai-style choices[0].message.content and
// returns the JSON object embedded in it.
func ContentFromChoices(body []byte) string {
	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil || len(parsed.Choices) == 0 {
		return ""
	}
	return ExtractJSON(parsed.Choices[0].Message.Content)
}

// ExtractJSON finds the first balanced JSON object in a string and returns it.
// It strips common markdown fences first.
func ExtractJSON(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	for _, r := range []string{"```json", "```", "`"} {
		s = strings.ReplaceAll(s, r, "")
	}

	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}
	depth := 0
	inString, escaped := false, false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return strings.TrimSpace(s[start : i+1])
			}
		}
	}
	return ""
}
