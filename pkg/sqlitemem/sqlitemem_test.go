package sqlitemem

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSQLiteMemSharesOneDatabase(t *testing.T) {
	ctx := context.Background()
	db, err := NewSQLiteMem(ctx)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	_, err = db.Write.ExecContext(ctx, `INSERT INTO documents (id, title) VALUES (x'01', 'hello')`)
	require.NoError(t, err)

	var title string
	require.NoError(t, db.Read.QueryRowContext(ctx, `SELECT title FROM documents`).Scan(&title))
	assert.Equal(t, "hello", title)
}

func TestNewSQLiteMemIsolated(t *testing.T) {
	ctx := context.Background()
	a, err := NewSQLiteMem(ctx)
	require.NoError(t, err)
	t.Cleanup(a.Close)
	b, err := NewSQLiteMem(ctx)
	require.NoError(t, err)
	t.Cleanup(b.Close)

	_, err = a.Write.ExecContext(ctx, `INSERT INTO documents (id) VALUES (x'01')`)
	require.NoError(t, err)

	var count int
	require.NoError(t, b.Read.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&count))
	assert.Zero(t, count)
}
