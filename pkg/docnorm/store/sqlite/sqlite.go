package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/docnorm/pkg/docnorm/internalerr"
	"github.com/cognicore/docnorm/pkg/docnorm/javadoc"
	"github.com/cognicore/docnorm/pkg/docnorm/store"
)

// timeLayout is fixed width so created_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	total INTEGER NOT NULL,
	kept INTEGER NOT NULL,
	dropped INTEGER NOT NULL,
	failed INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS run_fields (
	run_id TEXT NOT NULL,
	record_index INTEGER NOT NULL,
	ordinal INTEGER NOT NULL,
	name TEXT NOT NULL,
	text TEXT NOT NULL,
	PRIMARY KEY(run_id, record_index, ordinal),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveRun writes a run and its flattened records, replacing an earlier run
// with the same ID.
func (s *sqliteStore) SaveRun(ctx context.Context, run store.Run) error {
	if run.ID == "" {
		return fmt.Errorf("run id is required: %w", internalerr.ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id=?`, run.ID); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, created_at, total, kept, dropped, failed)
		VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.CreatedAt.UTC().Format(timeLayout),
		run.Total,
		len(run.Records),
		run.Dropped,
		run.Failed,
	)
	if err != nil {
		return err
	}

	if err := insertFields(ctx, tx, run); err != nil {
		return err
	}

	return tx.Commit()
}

func insertFields(ctx context.Context, tx *sql.Tx, run store.Run) error {
	if len(run.Records) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO run_fields (run_id, record_index, ordinal, name, text)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, rec := range run.Records {
		for ord, f := range rec.Fields {
			if _, err := stmt.ExecContext(ctx, run.ID, rec.Index, ord, f.Name, f.Text); err != nil {
				return err
			}
		}
	}
	return nil
}

// GetRun retrieves a run and its records in input order
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, error) {
	var (
		run       store.Run
		createdAt string
		kept      int
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, total, kept, dropped, failed FROM runs WHERE id=?`, id,
	).Scan(&run.ID, &createdAt, &run.Total, &kept, &run.Dropped, &run.Failed)
	if err == sql.ErrNoRows {
		return store.Run{}, fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	if err != nil {
		return store.Run{}, err
	}
	if parsed, perr := time.Parse(timeLayout, createdAt); perr == nil {
		run.CreatedAt = parsed
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT record_index, name, text FROM run_fields
		WHERE run_id=? ORDER BY record_index, ordinal`, id)
	if err != nil {
		return store.Run{}, err
	}
	defer rows.Close()

	run.Records = make([]store.Record, 0, kept)
	for rows.Next() {
		var (
			index int
			field javadoc.Field
		)
		if err := rows.Scan(&index, &field.Name, &field.Text); err != nil {
			return store.Run{}, err
		}
		n := len(run.Records)
		if n == 0 || run.Records[n-1].Index != index {
			run.Records = append(run.Records, store.Record{Index: index})
			n++
		}
		run.Records[n-1].Fields = append(run.Records[n-1].Fields, field)
	}
	if err := rows.Err(); err != nil {
		return store.Run{}, err
	}
	return run, nil
}

// ListRuns returns run summaries, newest first. limit <= 0 returns all.
func (s *sqliteStore) ListRuns(ctx context.Context, limit int) ([]store.RunSummary, error) {
	query := `SELECT id, created_at, total, kept, dropped, failed FROM runs ORDER BY created_at DESC, id DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []store.RunSummary
	for rows.Next() {
		var (
			sum       store.RunSummary
			createdAt string
		)
		if err := rows.Scan(&sum.ID, &createdAt, &sum.Total, &sum.Kept, &sum.Dropped, &sum.Failed); err != nil {
			return nil, err
		}
		if parsed, perr := time.Parse(timeLayout, createdAt); perr == nil {
			sum.CreatedAt = parsed
		}
		runs = append(runs, sum)
	}
	return runs, rows.Err()
}
