package sqlitemem

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/sqlc"

	_ "modernc.org/sqlite"
)

// LocalDB is an in-memory database. Write and Read share one connection
// because every ":memory:" connection would otherwise be its own database.
type LocalDB struct {
	Write *sql.DB
	Read  *sql.DB
	Close func()
}

func NewSQLiteMem(ctx context.Context) (LocalDB, error) {
	var result LocalDB

	db, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(1)")
	if err != nil {
		return result, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	// The single connection must never be recycled or the data goes with it.
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := sqlc.CreateLocalTables(ctx, db); err != nil {
		_ = db.Close()
		return result, fmt.Errorf("failed to create tables: %w", err)
	}

	result = LocalDB{
		Write: db,
		Read:  db,
		Close: func() { _ = db.Close() },
	}
	return result, nil
}
