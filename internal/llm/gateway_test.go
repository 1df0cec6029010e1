package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vanmitra-feedback/internal/logger"
)

type verdict struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

func newGateway(t *testing.T, url string) *Gateway {
	t.Helper()
	g, err := NewGateway(GatewayConfig{
		URL:          url,
		APIKey:       "k",
		Model:        "m",
		MaxRetryTime: 2 * time.Second,
	}, logger.Discard())
	require.NoError(t, err)
	return g
}

func TestNewGateway_NotConfigured(t *testing.T) {
	_, err := NewGateway(GatewayConfig{URL: "http://x"}, logger.Discard())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestCompleteJSON_ChoicesContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer k", r.Header.Get("Authorization"))
		var req map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "m", req["model"])
		fmt.Fprint(w, `{"choices":[{"message":{"content":"`+"```json\\n{\\\"label\\\":\\\"negative\\\",\\\"score\\\":0.91}\\n```"+`"}}]}`)
	}))
	defer srv.Close()

	var out verdict
	require.NoError(t, newGateway(t, srv.URL).CompleteJSON(context.Background(), "classify", &out))
	assert.Equal(t, "negative", out.Label)
	assert.InDelta(t, 0.91, out.Score, 1e-9)
}

func TestCompleteJSON_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"label":"positive","score":0.6}`)
	}))
	defer srv.Close()

	var out verdict
	require.NoError(t, newGateway(t, srv.URL).CompleteJSON(context.Background(), "p", &out))
	assert.Equal(t, "positive", out.Label)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCompleteJSON_ClientErrorIsPermanent(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	var out verdict
	err := newGateway(t, srv.URL).CompleteJSON(context.Background(), "p", &out)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"prose around", "Sure! {\"a\":{\"b\":2}} hope that helps", `{"a":{"b":2}}`},
		{"brace in string", `{"a":"}"}`, `{"a":"}"}`},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"none", "no json here", ""},
		{"unbalanced", `{"a":1`, ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJSON(tt.in))
		})
	}
}
