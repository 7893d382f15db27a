package migrations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/the-dev-tools/dev-tools/packages/docserver/internal/migrate"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/contenthash"
)

// MigrationVersionContentHashID is the ULID for the version content hash migration.
const MigrationVersionContentHashID = "01KJ4Q8ZP3M6X2V9T5R7W1YHQD"

// MigrationVersionContentHashChecksum is a stable hash of this migration.
const MigrationVersionContentHashChecksum = "sha256:version-content-hash-v1"

func init() {
	if err := migrate.Register(migrate.Migration{
		ID:          MigrationVersionContentHashID,
		Checksum:    MigrationVersionContentHashChecksum,
		Description: "Add content_hash to document_versions and backfill it",
		Apply:       applyVersionContentHash,
		Validate:    validateVersionContentHash,
	}); err != nil {
		panic("failed to register version content_hash migration: " + err.Error())
	}
}

func applyVersionContentHash(ctx context.Context, tx *sql.Tx) error {
	var count int
	err := tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM pragma_table_info('document_versions')
		WHERE name = 'content_hash'
	`).Scan(&count)
	if err != nil {
		return fmt.Errorf("check content_hash column: %w", err)
	}
	if count == 0 {
		if _, err := tx.ExecContext(ctx, `
			ALTER TABLE document_versions ADD COLUMN content_hash TEXT NOT NULL DEFAULT ''
		`); err != nil {
			return fmt.Errorf("add content_hash column: %w", err)
		}
	}

	type pending struct {
		id             []byte
		title, content string
	}
	rows, err := tx.QueryContext(ctx, `
		SELECT id, title, content FROM document_versions WHERE content_hash = ''
	`)
	if err != nil {
		return fmt.Errorf("select unhashed versions: %w", err)
	}
	var todo []pending
	for rows.Next() {
		var p pending
		if err := rows.Scan(&p.id, &p.title, &p.content); err != nil {
			return errors.Join(fmt.Errorf("scan version: %w", err), rows.Close())
		}
		todo = append(todo, p)
	}
	if err := errors.Join(rows.Err(), rows.Close()); err != nil {
		return fmt.Errorf("read unhashed versions: %w", err)
	}

	hasher := contenthash.New()
	for _, p := range todo {
		if _, err := tx.ExecContext(ctx,
			`UPDATE document_versions SET content_hash = ? WHERE id = ?`,
			hasher.HashFields(p.title, p.content), p.id,
		); err != nil {
			return fmt.Errorf("backfill content_hash: %w", err)
		}
	}
	return nil
}

func validateVersionContentHash(ctx context.Context, db *sql.DB) error {
	var count int
	err := db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM pragma_table_info('document_versions')
		WHERE name = 'content_hash'
	`).Scan(&count)
	if err != nil {
		return fmt.Errorf("validate content_hash column: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("content_hash column not found on document_versions table")
	}

	err = db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM document_versions WHERE content_hash = ''
	`).Scan(&count)
	if err != nil {
		return fmt.Errorf("validate content_hash backfill: %w", err)
	}
	if count != 0 {
		return fmt.Errorf("%d document versions still lack a content_hash", count)
	}
	return nil
}
