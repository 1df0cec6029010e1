package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rotisserie/eris"

	"vanmitra-feedback/internal/types"
)

const (
	filePrefix = "voice_analysis_"
	fileSuffix = ".json"
	fileTime   = "20060102_150405"
)

// FileStore writes one JSON document per record into a directory, named
// voice_analysis_<YYYYMMDD_HHMMSS>_<id8>.json.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, eris.New("store: empty directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "store: create %s", dir)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) Append(_ context.Context, rec *types.FeedbackRecord) error {
	if err := validate(rec); err != nil {
		return err
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return eris.Wrap(err, "store: marshal record")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, _, err := s.find(rec.ID); err == nil {
		return eris.Wrapf(ErrDuplicate, "store: append %s", rec.ID)
	} else if !eris.Is(err, ErrNotFound) {
		return err
	}

	name := filePrefix + rec.Timestamp.UTC().Format(fileTime) + "_" + shortID(rec.ID) + fileSuffix
	path := filepath.Join(s.dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return eris.Wrapf(ErrDuplicate, "store: %s exists", name)
		}
		return eris.Wrapf(err, "store: create %s", name)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return eris.Wrapf(err, "store: write %s", name)
	}
	return eris.Wrapf(f.Close(), "store: close %s", name)
}

func (s *FileStore) Get(_ context.Context, id string) (*types.FeedbackRecord, error) {
	rec, _, err := s.find(id)
	return rec, err
}

func (s *FileStore) List(_ context.Context, limit int) ([]*types.FeedbackRecord, error) {
	names, err := s.names("*")
	if err != nil {
		return nil, err
	}
	// Names embed the timestamp, so reverse lexical order is newest first.
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}

	out := make([]*types.FeedbackRecord, 0, len(names))
	for _, name := range names {
		rec, err := readRecord(name)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) find(id string) (*types.FeedbackRecord, string, error) {
	short := shortID(id)
	if id == "" || short == "" {
		return nil, "", eris.Wrapf(ErrNotFound, "store: get %q", id)
	}
	names, err := s.names("*_" + short)
	if err != nil {
		return nil, "", err
	}
	for _, name := range names {
		rec, err := readRecord(name)
		if err != nil {
			return nil, "", err
		}
		if rec.ID == id {
			return rec, name, nil
		}
	}
	return nil, "", eris.Wrapf(ErrNotFound, "store: get %s", id)
}

func (s *FileStore) names(middle string) ([]string, error) {
	names, err := filepath.Glob(filepath.Join(s.dir, filePrefix+middle+fileSuffix))
	if err != nil {
		return nil, eris.Wrap(err, "store: glob")
	}
	return names, nil
}

func readRecord(path string) (*types.FeedbackRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "store: read %s", filepath.Base(path))
	}
	var rec types.FeedbackRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, eris.Wrapf(err, "store: decode %s", filepath.Base(path))
	}
	return &rec, nil
}

// shortID keeps the first eight filename-safe characters of id.
func shortID(id string) string {
	var b strings.Builder
	for _, r := range id {
		if b.Len() == 8 {
			break
		}
		if r == '-' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
