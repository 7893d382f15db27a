package migrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Status represents the state of a migration record.
type Status string

const (
	StatusStarted  Status = "started"
	StatusFinished Status = "finished"
)

// ErrChecksumMismatch is returned when a finished migration was recorded
// with a different checksum than the registered one.
var ErrChecksumMismatch = errors.New("migrate: checksum mismatch for migration")

// Record models a row in schema_migrations.
type Record struct {
	ID         string
	Status     Status
	Checksum   string
	Attempts   int
	StartedAt  time.Time
	FinishedAt sql.NullTime
	LastError  sql.NullString
}

const createSchemaMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
    id TEXT PRIMARY KEY,
    status TEXT NOT NULL CHECK (status IN ('started', 'finished')),
    checksum TEXT NOT NULL,
    attempts INTEGER NOT NULL DEFAULT 0,
    started_at DATETIME NOT NULL,
    finished_at DATETIME,
    last_error TEXT
);
`

// Store reads and writes schema_migrations.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the metadata table if needed.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createSchemaMigrationsTable); err != nil {
		return fmt.Errorf("migrate: creating schema_migrations table: %w", err)
	}
	return nil
}

// MarkStarted inserts or updates the row for an in-progress migration and
// bumps its attempt counter.
func (s *Store) MarkStarted(ctx context.Context, tx *sql.Tx, id, checksum string, startedAt time.Time) (Record, error) {
	existing, err := getRecord(ctx, tx, id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx,
			`INSERT INTO schema_migrations (id, status, checksum, attempts, started_at, last_error)
             VALUES (?, ?, ?, 1, ?, NULL)`,
			id, StatusStarted, checksum, startedAt.UTC(),
		)
		if err != nil {
			return Record{}, fmt.Errorf("migrate: insert started: %w", err)
		}
	case err != nil:
		return Record{}, err
	default:
		if existing.Status == StatusFinished && existing.Checksum != checksum {
			return Record{}, fmt.Errorf("%w: stored=%s new=%s", ErrChecksumMismatch, existing.Checksum, checksum)
		}
		res, err := tx.ExecContext(ctx,
			`UPDATE schema_migrations
             SET status = ?, checksum = ?, attempts = attempts + 1, started_at = ?, last_error = NULL
             WHERE id = ?`,
			StatusStarted, checksum, startedAt.UTC(), id,
		)
		if err != nil {
			return Record{}, fmt.Errorf("migrate: update started: %w", err)
		}
		if err := ensureRowsAffected(res, "update started"); err != nil {
			return Record{}, err
		}
	}
	return getRecord(ctx, tx, id)
}

// MarkFinished marks a migration as finished and clears its last error.
func (s *Store) MarkFinished(ctx context.Context, tx *sql.Tx, id string, finishedAt time.Time) (Record, error) {
	res, err := tx.ExecContext(ctx,
		`UPDATE schema_migrations
         SET status = ?, finished_at = ?, last_error = NULL
         WHERE id = ?`,
		StatusFinished, finishedAt.UTC(), id,
	)
	if err != nil {
		return Record{}, fmt.Errorf("migrate: mark finished: %w", err)
	}
	if err := ensureRowsAffected(res, "mark finished"); err != nil {
		return Record{}, err
	}
	return getRecord(ctx, tx, id)
}

// SetError stores the last error message for a migration.
func (s *Store) SetError(ctx context.Context, id, lastError string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE schema_migrations SET last_error = ? WHERE id = ?`,
		lastError, id,
	)
	if err != nil {
		return fmt.Errorf("migrate: set error: %w", err)
	}
	return ensureRowsAffected(res, "set error")
}

// GetRecord fetches the metadata entry without requiring a transaction.
func (s *Store) GetRecord(ctx context.Context, id string) (Record, error) {
	return scanRecord(s.db.QueryRowContext(ctx, selectRecord, id))
}

const selectRecord = `SELECT id, status, checksum, attempts, started_at, finished_at, last_error
FROM schema_migrations
WHERE id = ?`

func getRecord(ctx context.Context, tx *sql.Tx, id string) (Record, error) {
	return scanRecord(tx.QueryRowContext(ctx, selectRecord, id))
}

func ensureRowsAffected(res sql.Result, op string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("migrate: %s rows affected: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("migrate: %s touched no rows", op)
	}
	return nil
}

func scanRecord(row *sql.Row) (Record, error) {
	var rec Record
	if err := row.Scan(
		&rec.ID,
		&rec.Status,
		&rec.Checksum,
		&rec.Attempts,
		&rec.StartedAt,
		&rec.FinishedAt,
		&rec.LastError,
	); err != nil {
		return Record{}, err
	}
	return rec, nil
}
