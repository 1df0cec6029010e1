package transcription

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"vanmitra-feedback/internal/logger"
	"vanmitra-feedback/internal/types"
)

type PublishResponse struct {
	Code   int    `json:"Code"`
	Status string `json:"Status"`
	Data   struct {
		MediaId          string  `json:"MediaId"`
		Status           string  `json:"Status"`
		Language         string  `json:"Language"`
		Confidence       float64 `json:"Confidence"`
		TranscriptionURL string  `json:"TranscriptionURL"`
	} `json:"Data"`
	Reason string `json:"Reason,omitempty"`
}

type StatusResponse struct {
	Code   int    `json:"Code"`
	Status string `json:"Status"`
	Data   struct {
		Status               string  `json:"Status"` // Success, Queued, Processing, Failed
		Language             string  `json:"Language"`
		Confidence           float64 `json:"Confidence"`
		TranscriptionTextURL string  `json:"TranscriptionTextURL"`
	} `json:"Data"`
	Reason string `json:"Reason,omitempty"`
}

// HTTPBackend talks to a publish/poll/download speech-to-text service.
type HTTPBackend struct {
	host         string
	httpClient   *http.Client
	pollInterval time.Duration
	maxPolls     int
	retryFor     time.Duration
	log          *logger.Logger
}

func NewHTTPBackend(host string, pollInterval time.Duration, maxPolls int, log *logger.Logger) *HTTPBackend {
	if log == nil {
		log = logger.New()
	}
	return &HTTPBackend{
		host:         strings.TrimRight(host, "/"),
		httpClient:   &http.Client{Timeout: 12 * time.Second},
		pollInterval: pollInterval,
		maxPolls:     maxPolls,
		retryFor:     12 * time.Second,
		log:          log.Component("transcription-client"),
	}
}

// Transcribe uploads the audio file, waits for the job and downloads the text.
func (b *HTTPBackend) Transcribe(ctx context.Context, audioPath string) (types.Transcription, error) {
	if _, err := os.Stat(audioPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return types.Transcription{}, fmt.Errorf("%w: %s", ErrInputNotFound, audioPath)
		}
		return types.Transcription{}, fmt.Errorf("stat audio: %w", err)
	}
	log := b.log.WithField("audio_path", audioPath)
	log.Info("starting transcription")

	pub, err := b.publish(ctx, audioPath)
	if err != nil {
		return types.Transcription{}, err
	}

	lang, conf := pub.Data.Language, pub.Data.Confidence
	textURL := ""
	if pub.Data.TranscriptionURL != "" && strings.EqualFold(pub.Data.Status, "success") {
		textURL = pub.Data.TranscriptionURL
	} else {
		st, err := b.poll(ctx, pub.Data.MediaId)
		if err != nil {
			return types.Transcription{}, err
		}
		textURL = st.Data.TranscriptionTextURL
		if st.Data.Language != "" {
			lang = st.Data.Language
		}
		if st.Data.Confidence > 0 {
			conf = st.Data.Confidence
		}
	}

	log.WithField("text_url", textURL).Info("download final transcript")
	text, err := b.download(ctx, textURL)
	if err != nil {
		return types.Transcription{}, err
	}
	return types.Transcription{
		Text:       strings.TrimSpace(text),
		Language:   lang,
		Confidence: conf,
	}, nil
}

func (b *HTTPBackend) publish(ctx context.Context, audioPath string) (PublishResponse, error) {
	audio, err := os.ReadFile(audioPath)
	if err != nil {
		return PublishResponse{}, fmt.Errorf("read audio: %w", err)
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("audio", filepath.Base(audioPath))
	if err != nil {
		return PublishResponse{}, fmt.Errorf("multipart: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return PublishResponse{}, fmt.Errorf("multipart: %w", err)
	}
	_ = w.Close()
	payload := body.Bytes()
	contentType := w.FormDataContentType()

	var resp PublishResponse
	err = b.doJSON(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.host+"/transcribe", bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", contentType)
		return req, nil
	}, &resp)
	if err != nil {
		return PublishResponse{}, err
	}
	if resp.Code != http.StatusOK {
		return PublishResponse{}, fmt.Errorf("transcribe publish error: code=%d reason=%s", resp.Code, resp.Reason)
	}
	return resp, nil
}

func (b *HTTPBackend) poll(ctx context.Context, mediaID string) (StatusResponse, error) {
	u, err := url.Parse(b.host + "/getstatus")
	if err != nil {
		return StatusResponse{}, err
	}
	q := u.Query()
	q.Set("mediaId", mediaID)
	u.RawQuery = q.Encode()

	ticker := time.NewTicker(b.pollInterval)
	defer ticker.Stop()

	for i := 0; i < b.maxPolls; i++ {
		select {
		case <-ctx.Done():
			return StatusResponse{}, ctx.Err()
		case <-ticker.C:
		}

		var s StatusResponse
		err := b.doJSON(ctx, func() (*http.Request, error) {
			return http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		}, &s)
		if err != nil {
			b.log.WithError(err).Warn("polling failed")
			continue
		}
		b.log.WithField("media_id", mediaID).WithField("status", s.Data.Status).Debug("polling transcription")

		switch s.Data.Status {
		case "Success":
			return s, nil
		case "Queued", "Processing":
			continue
		case "Failed":
			return StatusResponse{}, fmt.Errorf("transcription failed: %s", s.Reason)
		}
	}
	return StatusResponse{}, fmt.Errorf("transcription timeout after %d polls", b.maxPolls)
}

func (b *HTTPBackend) download(ctx context.Context, textURL string) (string, error) {
	if textURL == "" {
		return "", errors.New("empty transcription url")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, textURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("download failed: %s", string(data))
	}
	return string(data), nil
}

// doJSON retries 5xx and transport errors; newReq is called per attempt so
// request bodies can be replayed.
func (b *HTTPBackend) doJSON(ctx context.Context, newReq func() (*http.Request, error), target any) error {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = b.retryFor
	var lastErr error
	op := func() error {
		req, err := newReq()
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := b.httpClient.Do(req)
		if err != nil {
			lastErr = err
			return err
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("server error: %s", string(body))
			return lastErr
		}
		if resp.StatusCode >= 400 {
			lastErr = fmt.Errorf("client error %d: %s", resp.StatusCode, string(body))
			return backoff.Permanent(lastErr)
		}
		if len(body) == 0 {
			lastErr = fmt.Errorf("empty body")
			return lastErr
		}
		if err := json.Unmarshal(body, target); err != nil {
			lastErr = fmt.Errorf("json decode error: %v body=%s", err, string(body))
			return backoff.Permanent(lastErr)
		}
		return nil
	}
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		if lastErr != nil {
			return lastErr
		}
		return err
	}
	return nil
}
