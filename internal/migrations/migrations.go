// Package migrations registers the docserver schema migrations with
// internal/migrate. Importing it is enough to register them.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/the-dev-tools/dev-tools/packages/docserver/internal/migrate"
)

// Run applies every registered migration to db.
func Run(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	runner, err := migrate.NewRunner(db, logger)
	if err != nil {
		return fmt.Errorf("create migration runner: %w", err)
	}
	if err := runner.ApplyAll(ctx); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
