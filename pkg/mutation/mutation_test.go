package mutation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/model/mdocument"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/service/sdocument"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/testutil"
)

type capturePublisher struct {
	batches [][]Event
}

func (p *capturePublisher) PublishAll(events []Event) {
	p.batches = append(p.batches, append([]Event(nil), events...))
}

func TestCommitPublishesTrackedEvents(t *testing.T) {
	ctx := context.Background()
	base := testutil.CreateBaseDB(ctx, t)
	id := base.CreateDocument("Title", "Body")
	pub := &capturePublisher{}

	mut := New(base.DB, WithPublisher(pub))
	require.NoError(t, mut.Begin(ctx))
	defer mut.Rollback()

	doc, err := mut.GetDocument(ctx, id)
	require.NoError(t, err)

	version, err := mut.SnapshotDocument(ctx, DocumentSnapshotItem{
		DocumentID:  id,
		Fields:      doc.Fields(),
		Description: "edit",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), version.VersionNumber)

	doc.SetFields(mdocument.Fields{Title: "New Title", Content: "New Body"})
	require.NoError(t, mut.UpdateDocument(ctx, DocumentUpdateItem{Document: doc}))

	assert.Empty(t, pub.batches, "nothing is published before commit")
	require.NoError(t, mut.Commit(ctx))

	require.Len(t, pub.batches, 1)
	events := pub.batches[0]
	require.Len(t, events, 2)
	assert.Equal(t, EntityDocumentVersion, events[0].Entity)
	assert.Equal(t, id, events[0].ParentID)
	assert.Equal(t, EntityDocument, events[1].Entity)
	assert.Equal(t, OpUpdate, events[1].Op)
	payload, ok := events[1].Payload.(mdocument.Document)
	require.True(t, ok)
	assert.Equal(t, "New Title", payload.Title)

	stored, err := sdocument.New(base.Queries, nil).GetDocument(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "New Body", stored.Content)
}

func TestRollbackDiscardsWritesAndEvents(t *testing.T) {
	ctx := context.Background()
	base := testutil.CreateBaseDB(ctx, t)
	id := base.CreateDocument("Title", "Body")
	pub := &capturePublisher{}

	mut := New(base.DB, WithPublisher(pub))
	require.NoError(t, mut.Begin(ctx))

	doc, err := mut.GetDocument(ctx, id)
	require.NoError(t, err)
	doc.Title = "Changed"
	require.NoError(t, mut.UpdateDocument(ctx, DocumentUpdateItem{Document: doc}))
	require.Len(t, mut.Events(), 1)

	mut.Rollback()
	assert.Empty(t, mut.Events())
	assert.ErrorIs(t, mut.Commit(ctx), ErrNoTransaction)
	assert.Empty(t, pub.batches)

	stored, err := sdocument.New(base.Queries, nil).GetDocument(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Title", stored.Title)
}

func TestInsertAndDeleteDocument(t *testing.T) {
	ctx := context.Background()
	base := testutil.CreateBaseDB(ctx, t)
	pub := &capturePublisher{}

	mut := New(base.DB, WithPublisher(pub))
	require.NoError(t, mut.Begin(ctx))
	doc := &mdocument.Document{Title: "Fresh"}
	require.NoError(t, mut.InsertDocument(ctx, doc))
	require.NoError(t, mut.Commit(ctx))

	require.NoError(t, mut.Begin(ctx))
	require.NoError(t, mut.DeleteDocument(ctx, doc.ID))
	require.NoError(t, mut.Commit(ctx))

	require.Len(t, pub.batches, 2)
	assert.Equal(t, OpInsert, pub.batches[0][0].Op)
	assert.Equal(t, OpDelete, pub.batches[1][0].Op)
	assert.Equal(t, doc.ID, pub.batches[1][0].ID)

	require.NoError(t, mut.Begin(ctx))
	defer mut.Rollback()
	err := mut.DeleteDocument(ctx, doc.ID)
	assert.ErrorIs(t, err, sdocument.ErrDocumentNotFound)
}

func TestOperationsRequireBegin(t *testing.T) {
	ctx := context.Background()
	base := testutil.CreateBaseDB(ctx, t)
	mut := New(base.DB)

	_, err := mut.GetDocument(ctx, base.CreateDocument("a", "b"))
	assert.ErrorIs(t, err, ErrNoTransaction)
}
