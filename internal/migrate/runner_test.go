package migrate

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/logger/mocklogger"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/sqlitemem"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	local, err := sqlitemem.NewSQLiteMem(context.Background())
	require.NoError(t, err)
	t.Cleanup(local.Close)
	return local.Write
}

func TestRunnerApplyAll(t *testing.T) {
	ResetForTesting()
	t.Cleanup(ResetForTesting)
	ctx := context.Background()
	db := newTestDB(t)

	id := newID()
	calls := 0
	require.NoError(t, Register(testMigration(id, "apply-all", func(ctx context.Context, tx *sql.Tx) error {
		calls++
		_, err := tx.ExecContext(ctx, "CREATE TABLE IF NOT EXISTS migration_apply_all (id INTEGER PRIMARY KEY)")
		return err
	})))

	handler := mocklogger.NewMockHandler()
	runner, err := NewRunner(db, slog.New(handler))
	require.NoError(t, err)
	require.NoError(t, runner.ApplyAll(ctx))

	var name string
	require.NoError(t, db.QueryRowContext(ctx,
		"SELECT name FROM sqlite_master WHERE type='table' AND name='migration_apply_all'").Scan(&name))

	rec, err := NewStore(db).GetRecord(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, StatusFinished, rec.Status)
	assert.Equal(t, 1, rec.Attempts)
	assert.True(t, rec.FinishedAt.Valid)
	assert.False(t, rec.LastError.Valid)
	assert.Contains(t, handler.Messages(), "migration applied")

	// Finished migrations are skipped.
	require.NoError(t, runner.ApplyAll(ctx))
	assert.Equal(t, 1, calls)
}

func TestRunnerApplyFailureThenRetry(t *testing.T) {
	ResetForTesting()
	t.Cleanup(ResetForTesting)
	ctx := context.Background()
	db := newTestDB(t)

	id := newID()
	boom := errors.New("boom")
	require.NoError(t, Register(testMigration(id, "c1", func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "CREATE TABLE half_done (id INTEGER)"); err != nil {
			return err
		}
		return boom
	})))

	runner, err := NewRunner(db, nil)
	require.NoError(t, err)
	err = runner.ApplyAll(ctx)
	require.ErrorIs(t, err, boom)

	rec, err := NewStore(db).GetRecord(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, StatusStarted, rec.Status)
	assert.Equal(t, "boom", rec.LastError.String)

	var count int
	require.NoError(t, db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='half_done'").Scan(&count))
	assert.Zero(t, count, "failed apply must roll back")

	ResetForTesting()
	require.NoError(t, Register(testMigration(id, "c1", noopApply)))
	require.NoError(t, runner.ApplyAll(ctx))

	rec, err = NewStore(db).GetRecord(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, StatusFinished, rec.Status)
	assert.Equal(t, 2, rec.Attempts)
	assert.False(t, rec.LastError.Valid)
}

func TestRunnerValidateFailure(t *testing.T) {
	ResetForTesting()
	t.Cleanup(ResetForTesting)
	ctx := context.Background()
	db := newTestDB(t)

	id := newID()
	mig := testMigration(id, "validate", noopApply)
	mig.Validate = func(context.Context, *sql.DB) error { return errors.New("postcondition") }
	require.NoError(t, Register(mig))

	runner, err := NewRunner(db, nil)
	require.NoError(t, err)
	err = runner.ApplyAll(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validate")

	rec, err := NewStore(db).GetRecord(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, StatusStarted, rec.Status)
	assert.Equal(t, "postcondition", rec.LastError.String)
}

func TestRunnerChecksumMismatch(t *testing.T) {
	ResetForTesting()
	t.Cleanup(ResetForTesting)
	ctx := context.Background()
	db := newTestDB(t)

	id := newID()
	require.NoError(t, Register(testMigration(id, "v1", noopApply)))
	runner, err := NewRunner(db, nil)
	require.NoError(t, err)
	require.NoError(t, runner.ApplyAll(ctx))

	ResetForTesting()
	require.NoError(t, Register(testMigration(id, "v2", noopApply)))
	assert.ErrorIs(t, runner.ApplyAll(ctx), ErrChecksumMismatch)
}

func TestNewRunnerRequiresDB(t *testing.T) {
	_, err := NewRunner(nil, nil)
	assert.Error(t, err)
}
