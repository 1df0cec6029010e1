// Package api exposes the feedback pipeline over JSON/HTTP.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"vanmitra-feedback/internal/aggregator"
	"vanmitra-feedback/internal/app"
	"vanmitra-feedback/internal/logger"
	"vanmitra-feedback/internal/pipeline"
	"vanmitra-feedback/internal/samples"
	"vanmitra-feedback/internal/store"
	"vanmitra-feedback/internal/types"
)

const (
	defaultListLimit  = 50
	defaultUploadsDir = "uploads"
)

var errOutsideUploads = errors.New("audio_ref must name a file under the uploads directory")

type Server struct {
	proc        pipeline.Processor
	store       store.Store
	samples     *samples.Set
	backends    app.Backends
	concurrency int
	uploadsDir  string
	log         *logger.Logger
}

func New(a *app.App) *Server {
	uploads := a.Config.Server.UploadsDir
	if uploads == "" {
		uploads = defaultUploadsDir
	}
	return &Server{
		proc:        a.Processor,
		store:       a.Store,
		samples:     a.Samples,
		backends:    a.Backends,
		concurrency: a.Config.Pipeline.BatchConcurrency,
		uploadsDir:  filepath.Clean(uploads),
		log:         a.Log.Component("api"),
	}
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)
	r.Get("/process", s.process)
	r.Post("/process", s.process)
	r.Get("/demo", s.demo)
	r.Get("/results", s.listResults)
	r.Get("/results/{id}", s.getResult)
	r.Get("/summary", s.summary)
	return r
}

// requestID makes sure every request carries an X-Request-ID so the
// request logger and the response agree on it.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
			r.Header.Set("X-Request-ID", id)
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

type healthResponse struct {
	Status    string       `json:"status"`
	Backends  app.Backends `json:"backends"`
	Samples   int          `json:"samples"`
	Timestamp time.Time    `json:"timestamp"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	reqLog := s.log.WithRequest(r)
	reqLog.Info("health check")
	s.writeJSON(w, r, http.StatusOK, healthResponse{
		Status:    "ok",
		Backends:  s.backends,
		Samples:   s.samples.Len(),
		Timestamp: time.Now().UTC(),
	})
}

func (s *Server) process(w http.ResponseWriter, r *http.Request) {
	reqLog := s.log.WithRequest(r).WithField("handler", "process")
	reqLog.Info("process request received")

	raw := r.FormValue("audio_ref")
	if raw == "" {
		reqLog.Warn("missing audio_ref")
		http.Error(w, "missing audio_ref", http.StatusBadRequest)
		return
	}
	ref, err := resolveUpload(s.uploadsDir, raw)
	if err != nil {
		reqLog.WithField("audio_ref", raw).Warn("rejected audio_ref outside uploads")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	reqLog = reqLog.WithField("audio_ref", ref)

	rec := s.proc.Process(r.Context(), ref)
	reqLog = reqLog.WithField("record_id", rec.ID).WithField("duration_ms", rec.DurationMs)

	status := http.StatusOK
	if rec.ProcessingStatus == types.StatusFailed {
		reqLog.WithField("error", rec.ErrorDetail).Warn("processor returned failed record")
		status = http.StatusInternalServerError
	} else {
		reqLog.Info("processor finished")
	}
	s.writeJSON(w, r, status, rec)
}

// demo runs every demo sample through the pipeline.
func (s *Server) demo(w http.ResponseWriter, r *http.Request) {
	reqLog := s.log.WithRequest(r).WithField("handler", "demo")

	all := s.samples.All()
	refs := make([]string, 0, len(all))
	for _, sm := range all {
		ref := sm.AudioFile
		if ref == "" {
			ref = sm.Key + ".wav"
		}
		refs = append(refs, filepath.Join(s.uploadsDir, ref))
	}
	reqLog.WithField("samples", len(refs)).Info("demo invoked")

	out := pipeline.RunBatch(r.Context(), s.proc, refs, s.concurrency, s.log)
	s.writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) listResults(w http.ResponseWriter, r *http.Request) {
	reqLog := s.log.WithRequest(r).WithField("handler", "results")

	limit := defaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	recs, err := s.store.List(r.Context(), limit)
	if err != nil {
		reqLog.WithField("error", err.Error()).Error("list results failed")
		http.Error(w, "results unavailable", http.StatusInternalServerError)
		return
	}
	if recs == nil {
		recs = []*types.FeedbackRecord{}
	}
	s.writeJSON(w, r, http.StatusOK, recs)
}

func (s *Server) getResult(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	reqLog := s.log.WithRequest(r).WithField("handler", "result").WithField("record_id", id)

	rec, err := s.store.Get(r.Context(), id)
	switch {
	case eris.Is(err, store.ErrNotFound):
		http.Error(w, "record not found", http.StatusNotFound)
		return
	case err != nil:
		reqLog.WithField("error", err.Error()).Error("get result failed")
		http.Error(w, "results unavailable", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, r, http.StatusOK, rec)
}

func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
	reqLog := s.log.WithRequest(r).WithField("handler", "summary")

	recs, err := s.store.List(r.Context(), 0)
	if err != nil {
		reqLog.WithField("error", err.Error()).Error("list results failed")
		http.Error(w, "results unavailable", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, r, http.StatusOK, aggregator.Aggregate(recs))
}

// resolveUpload cleans ref and accepts it only when it names a path inside
// root. The cleaned path is what gets processed.
func resolveUpload(root, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", errOutsideUploads
	}
	rel, err := filepath.Rel(root, filepath.Clean(ref))
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errOutsideUploads
	}
	return filepath.Join(root, rel), nil
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		s.log.WithRequest(r).WithField("error", err.Error()).Error("failed to write response")
	}
}
