package sqlitelocal

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSQLiteLocalArguments(t *testing.T) {
	ctx := context.Background()

	_, err := NewSQLiteLocal(ctx, "", t.TempDir())
	assert.ErrorIs(t, err, ErrDBNameNotFound)

	_, err = NewSQLiteLocal(ctx, "docs", "")
	assert.ErrorIs(t, err, ErrDBPathNotFound)
}

func TestNewSQLiteLocalReopen(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested")

	db, err := NewSQLiteLocal(ctx, "docs", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "docs.db"), db.Path)
	assert.Same(t, db.WriteDB, db.Default())

	_, err = db.WriteDB.ExecContext(ctx, `INSERT INTO documents (id, title, content) VALUES (x'01', 'T', 'C')`)
	require.NoError(t, err)

	// The read pool is query-only.
	_, err = db.ReadDB.ExecContext(ctx, `DELETE FROM documents`)
	assert.Error(t, err)
	require.NoError(t, db.Close())

	reopened, err := NewSQLiteLocal(ctx, "docs", dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	var title string
	require.NoError(t, reopened.ReadDB.QueryRowContext(ctx, `SELECT title FROM documents`).Scan(&title))
	assert.Equal(t, "T", title)
}

func TestNilLocalDB(t *testing.T) {
	var db *LocalDB
	assert.Nil(t, db.Default())
	assert.NoError(t, db.Close())
}
