// Package store persists terminal feedback records as immutable snapshots.
// Stores are append-only: there is no update and no delete.
package store

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"vanmitra-feedback/internal/types"
)

var (
	ErrNotFound    = eris.New("record not found")
	ErrDuplicate   = eris.New("record already stored")
	ErrNotTerminal = eris.New("record is not in a terminal state")
)

type Store interface {
	// Append stores a snapshot of rec. rec must be terminal and carry an ID
	// that was never stored before.
	Append(ctx context.Context, rec *types.FeedbackRecord) error
	Get(ctx context.Context, id string) (*types.FeedbackRecord, error)
	// List returns up to limit records, newest first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]*types.FeedbackRecord, error)
	Close() error
}

const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverNone   = "none"

	sqliteFileName = "feedback.db"
)

// Open builds the store selected by driver. For sqlite, a path without an
// extension is treated as a directory holding feedback.db.
func Open(ctx context.Context, driver, path string) (Store, error) {
	switch driver {
	case DriverFile, "":
		return NewFileStore(path)
	case DriverSQLite:
		dsn := path
		if filepath.Ext(path) == "" {
			if err := os.MkdirAll(path, 0o755); err != nil {
				return nil, eris.Wrapf(err, "store: create %s", path)
			}
			dsn = filepath.Join(path, sqliteFileName)
		}
		st, err := NewSQLite(dsn)
		if err != nil {
			return nil, err
		}
		if err := st.Migrate(ctx); err != nil {
			_ = st.Close()
			return nil, err
		}
		return st, nil
	case DriverNone:
		return Nop{}, nil
	default:
		return nil, eris.Errorf("store: unknown driver %q", driver)
	}
}

func validate(rec *types.FeedbackRecord) error {
	if rec == nil || rec.ID == "" {
		return eris.New("store: record without id")
	}
	if !rec.ProcessingStatus.Terminal() {
		return eris.Wrapf(ErrNotTerminal, "store: append %s (%s)", rec.ID, rec.ProcessingStatus)
	}
	return nil
}

// Nop discards every record.
type Nop struct{}

func (Nop) Append(context.Context, *types.FeedbackRecord) error { return nil }

func (Nop) Get(_ context.Context, id string) (*types.FeedbackRecord, error) {
	return nil, eris.Wrapf(ErrNotFound, "store: get %s", id)
}

func (Nop) List(context.Context, int) ([]*types.FeedbackRecord, error) { return nil, nil }

func (Nop) Close() error { return nil }
