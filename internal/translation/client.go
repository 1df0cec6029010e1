package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// HTTPBackend calls a translation service that accepts
// {"text","src_lang","tgt_lang"} and answers [{"translation_text","score"}].
type HTTPBackend struct {
	url        string
	apiKey     string
	httpClient *http.Client
	retryFor   time.Duration
}

func NewHTTPBackend(url, apiKey string) *HTTPBackend {
	return &HTTPBackend{
		url:        url,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		retryFor:   10 * time.Second,
	}
}

type translateRequest struct {
	Text    string `json:"text"`
	SrcLang string `json:"src_lang"`
	TgtLang string `json:"tgt_lang"`
}

type translateResponse struct {
	TranslationText string   `json:"translation_text"`
	Score           *float64 `json:"score,omitempty"`
}

func (b *HTTPBackend) Translate(ctx context.Context, text, srcLang, tgtLang string) (Result, error) {
	data, err := json.Marshal(translateRequest{Text: text, SrcLang: srcLang, TgtLang: tgtLang})
	if err != nil {
		return Result{}, fmt.Errorf("translate: marshal: %w", err)
	}

	var out []translateResponse
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.url, bytes.NewReader(data))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		if b.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+b.apiKey)
		}
		resp, err := b.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= 500 {
			return fmt.Errorf("translate server error %d: %s", resp.StatusCode, string(body))
		}
		if resp.StatusCode >= 400 {
			return backoff.Permanent(fmt.Errorf("translate client error %d: %s", resp.StatusCode, string(body)))
		}
		if err := json.Unmarshal(body, &out); err != nil {
			return backoff.Permanent(fmt.Errorf("translate: decode: %w", err))
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = b.retryFor
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return Result{}, err
	}
	if len(out) == 0 {
		return Result{}, fmt.Errorf("translate: empty response")
	}
	return Result{Text: out[0].TranslationText, Score: out[0].Score}, nil
}
