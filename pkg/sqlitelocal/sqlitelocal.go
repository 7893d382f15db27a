package sqlitelocal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/sqlc"

	_ "modernc.org/sqlite"
)

var (
	ErrDBNameNotFound = fmt.Errorf("db name not found")
	ErrDBPathNotFound = fmt.Errorf("db path not found")
)

const (
	writeParams = "_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_txlock=immediate"
	readParams  = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=query_only(1)"

	readPoolSize = 4
)

// LocalDB wraps the write and read pools of a file database.
type LocalDB struct {
	WriteDB *sql.DB
	ReadDB  *sql.DB
	Path    string
}

// Default returns the primary writable connection pool.
func (l *LocalDB) Default() *sql.DB {
	if l == nil {
		return nil
	}
	return l.WriteDB
}

func (l *LocalDB) Close() error {
	if l == nil {
		return nil
	}
	return errors.Join(l.ReadDB.Close(), l.WriteDB.Close())
}

// NewSQLiteLocal opens (creating if needed) <path>/<dbName>.db. Writes go
// through a single connection with BEGIN IMMEDIATE so concurrent patches
// serialize on the database instead of failing with SQLITE_BUSY.
func NewSQLiteLocal(ctx context.Context, dbName, path string) (*LocalDB, error) {
	if dbName == "" {
		return nil, ErrDBNameNotFound
	}
	if path == "" {
		return nil, ErrDBPathNotFound
	}

	if err := os.MkdirAll(path, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	dbFilePath := filepath.Join(path, dbName+".db")
	_, statErr := os.Stat(dbFilePath)
	firstTime := os.IsNotExist(statErr)

	writeDB, err := sql.Open("sqlite", dbFilePath+"?"+writeParams)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	writeDB.SetMaxOpenConns(1)
	if err := writeDB.PingContext(ctx); err != nil {
		_ = writeDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if firstTime {
		slog.Info("creating tables", "path", dbFilePath)
	}
	if err := sqlc.CreateLocalTables(ctx, writeDB); err != nil {
		_ = writeDB.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	readDB, err := sql.Open("sqlite", dbFilePath+"?"+readParams)
	if err != nil {
		_ = writeDB.Close()
		return nil, fmt.Errorf("failed to open read pool: %w", err)
	}
	readDB.SetMaxOpenConns(readPoolSize)

	return &LocalDB{WriteDB: writeDB, ReadDB: readDB, Path: dbFilePath}, nil
}
