package summarizer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vanmitra-feedback/internal/logger"
)

const (
	waterText = "There is water scarcity in our village. Wells have dried up. People are struggling a lot for drinking water."
	shortText = "Road is broken. Please fix it."
)

type fakeBackend struct {
	out   string
	err   error
	calls int
}

func (f *fakeBackend) Summarize(ctx context.Context, text string) (string, error) {
	f.calls++
	return f.out, f.err
}

func TestSummarize_ShortTextIsOriginal(t *testing.T) {
	fb := &fakeBackend{out: "should not be used"}
	got := New(fb, 10, time.Second, logger.Discard()).Summarize(context.Background(), shortText)

	assert.Equal(t, shortText, got.Text)
	assert.Equal(t, MethodOriginal, got.Method)
	assert.Zero(t, fb.calls)
}

func TestSummarize_Extractive(t *testing.T) {
	s := New(nil, 0, 0, logger.Discard())
	assert.False(t, s.HasBackend())

	got := s.Summarize(context.Background(), waterText)

	assert.Equal(t, "There is water scarcity in our village. Wells have dried up.", got.Text)
	assert.Equal(t, MethodExtractive, got.Method)
	assert.Equal(t, got, s.Summarize(context.Background(), waterText))
}

func TestSummarize_Transformer(t *testing.T) {
	fb := &fakeBackend{out: "  Village wells are dry and residents lack drinking water.  "}
	got := New(fb, 100, time.Second, logger.Discard()).Summarize(context.Background(), waterText)

	assert.Equal(t, "Village wells are dry and residents lack drinking water.", got.Text)
	assert.Equal(t, MethodTransformer, got.Method)
}

func TestSummarize_BelowMinCharsSkipsBackend(t *testing.T) {
	fb := &fakeBackend{out: "nope"}
	got := New(fb, 500, time.Second, logger.Discard()).Summarize(context.Background(), waterText)
	assert.Zero(t, fb.calls)
	assert.Equal(t, MethodExtractive, got.Method)
}

func TestSummarize_BackendFailureFallsThrough(t *testing.T) {
	for _, fb := range []*fakeBackend{{err: errors.New("overloaded")}, {out: "   "}} {
		got := New(fb, 10, time.Second, logger.Discard()).Summarize(context.Background(), waterText)
		assert.Equal(t, 1, fb.calls)
		assert.Equal(t, MethodExtractive, got.Method)
	}
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"english", waterText, []string{
			"There is water scarcity in our village.",
			"Wells have dried up.",
			"People are struggling a lot for drinking water.",
		}},
		{"mixed terminators", "No doctor! Why? Help us.", []string{"No doctor!", "Why?", "Help us."}},
		{"danda", "हमारे जंगल में अवैध कटाई हो रही है। वन विभाग को जानकारी देनी चाहिए।", []string{
			"हमारे जंगल में अवैध कटाई हो रही है।",
			"वन विभाग को जानकारी देनी चाहिए।",
		}},
		{"decimal stays", "The fee is 2.5 rupees. It rose.", []string{"The fee is 2.5 rupees.", "It rose."}},
		{"ellipsis run", "We waited... nobody came", []string{"We waited...", "nobody came"}},
		{"no terminator", "just one clause", []string{"just one clause"}},
		{"empty", "   ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitSentences(tt.in))
		})
	}
}

func TestClaudeBackend_Summarize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "/messages")

		var req map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "claude-haiku-4-5-20251001", req["model"])
		assert.EqualValues(t, 100, req["max_tokens"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":   "msg_sum_001",
			"type": "message",
			"role": "assistant",
			"content": []map[string]any{
				{"type": "text", "text": "Wells in the village have dried up and people lack drinking water."},
			},
			"model":       "claude-haiku-4-5-20251001",
			"stop_reason": "end_turn",
			"usage":       map[string]any{"input_tokens": 40, "output_tokens": 14},
		})
	}))
	defer srv.Close()

	b := NewClaudeBackend("test-key", "claude-haiku-4-5-20251001", 100, option.WithBaseURL(srv.URL))
	out, err := b.Summarize(context.Background(), waterText)
	require.NoError(t, err)
	assert.Equal(t, "Wells in the village have dried up and people lack drinking water.", out)
}

func TestClaudeBackend_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"type":  "error",
			"error": map[string]any{"type": "invalid_request_error", "message": "bad model"},
		})
	}))
	defer srv.Close()

	b := NewClaudeBackend("test-key", "nope", 100, option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	_, err := b.Summarize(context.Background(), waterText)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic: summarize")

	got := New(b, 10, time.Second, logger.Discard()).Summarize(context.Background(), waterText)
	assert.Equal(t, MethodExtractive, got.Method)
}
