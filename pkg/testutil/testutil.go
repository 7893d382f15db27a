package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/dbtime"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/idwrap"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/sqlc/gen"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/sqlitemem"
)

type BaseDBQueries struct {
	Queries *gen.Queries
	DB      *sql.DB
	t       *testing.T
	ctx     context.Context
	close   func()
}

// CreateBaseDB opens a fresh in-memory database with the full schema and
// closes it when the test ends.
func CreateBaseDB(ctx context.Context, t *testing.T) *BaseDBQueries {
	t.Helper()
	local, err := sqlitemem.NewSQLiteMem(ctx)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(local.Close)

	return &BaseDBQueries{
		Queries: gen.New(local.Write),
		DB:      local.Write,
		t:       t,
		ctx:     ctx,
		close:   local.Close,
	}
}

func (b BaseDBQueries) Close() {
	b.close()
}

// CreateDocument inserts a document row directly and returns its id.
func (b BaseDBQueries) CreateDocument(title, content string) idwrap.IDWrap {
	b.t.Helper()
	id := idwrap.NewNow()
	now := dbtime.DBNow().Unix()
	err := b.Queries.CreateDocument(b.ctx, gen.CreateDocumentParams{
		ID:        id,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		b.t.Fatal(err)
	}
	return id
}
