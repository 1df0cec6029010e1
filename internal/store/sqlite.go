package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"vanmitra-feedback/internal/types"
)

// SQLiteStore implements Store using modernc.org/sqlite. Rows are inserted
// once and never updated.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS feedback_records (
	id              TEXT PRIMARY KEY,
	audio_reference TEXT NOT NULL,
	status          TEXT NOT NULL,
	category        TEXT,
	priority        TEXT,
	created_at      INTEGER NOT NULL,
	payload         TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_feedback_records_created_at ON feedback_records(created_at);
CREATE INDEX IF NOT EXISTS idx_feedback_records_status ON feedback_records(status);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Append(ctx context.Context, rec *types.FeedbackRecord) error {
	if err := validate(rec); err != nil {
		return err
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal record")
	}

	var category, priority sql.NullString
	if rec.Category != nil {
		category = sql.NullString{String: rec.Category.Primary, Valid: true}
	}
	if rec.Priority != nil {
		priority = sql.NullString{String: rec.Priority.Level, Valid: true}
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO feedback_records (id, audio_reference, status, category, priority, created_at, payload)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO NOTHING`,
		rec.ID, rec.AudioReference, string(rec.ProcessingStatus), category, priority,
		rec.Timestamp.UTC().UnixNano(), string(payload),
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: insert record %s", rec.ID)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Wrapf(ErrDuplicate, "sqlite: append %s", rec.ID)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*types.FeedbackRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT payload FROM feedback_records WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, eris.Wrapf(ErrNotFound, "sqlite: get %s", id)
	}
	return rec, err
}

func (s *SQLiteStore) List(ctx context.Context, limit int) ([]*types.FeedbackRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM feedback_records ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list records")
	}
	defer rows.Close()

	var out []*types.FeedbackRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate records")
}

type scannable interface {
	Scan(dest ...any) error
}

func scanRecord(row scannable) (*types.FeedbackRecord, error) {
	var payload string
	if err := row.Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, eris.Wrap(err, "sqlite: scan record")
	}
	var rec types.FeedbackRecord
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal record")
	}
	return &rec, nil
}
