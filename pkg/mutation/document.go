package mutation

import (
	"context"

	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/idwrap"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/model/mdocument"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/service/sdocument"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/service/sdocumentversion"
)

// DocumentUpdateItem is a document whose fields should be overwritten.
type DocumentUpdateItem struct {
	Document *mdocument.Document // carries the new fields; UpdatedAt is set on success
	Patch    any
}

// DocumentSnapshotItem describes the pre-change state to record.
type DocumentSnapshotItem struct {
	DocumentID  idwrap.IDWrap
	Fields      mdocument.Fields
	Description string
	CreatedBy   *idwrap.IDWrap
}

func (c *Context) documents() *sdocument.DocumentService {
	return sdocument.New(c.q, c.logger)
}

func (c *Context) versions() *sdocumentversion.VersionService {
	return sdocumentversion.New(c.q, c.logger)
}

// GetDocument reads a document inside the transaction.
func (c *Context) GetDocument(ctx context.Context, id idwrap.IDWrap) (*mdocument.Document, error) {
	if c.q == nil {
		return nil, ErrNoTransaction
	}
	return c.documents().GetDocument(ctx, id)
}

// GetVersion reads a version snapshot inside the transaction.
func (c *Context) GetVersion(ctx context.Context, documentID idwrap.IDWrap, versionNumber int64) (*mdocument.Version, error) {
	if c.q == nil {
		return nil, ErrNoTransaction
	}
	return c.versions().GetVersion(ctx, documentID, versionNumber)
}

// InsertDocument creates a document and tracks the event.
func (c *Context) InsertDocument(ctx context.Context, doc *mdocument.Document) error {
	if c.q == nil {
		return ErrNoTransaction
	}
	if err := c.documents().CreateDocument(ctx, doc); err != nil {
		return err
	}
	c.Track(Event{
		Entity:  EntityDocument,
		Op:      OpInsert,
		ID:      doc.ID,
		Payload: *doc,
	})
	return nil
}

// UpdateDocument overwrites title and content and tracks the event.
func (c *Context) UpdateDocument(ctx context.Context, item DocumentUpdateItem) error {
	if c.q == nil {
		return ErrNoTransaction
	}
	updatedAt, err := c.documents().UpdateFields(ctx, item.Document.ID, item.Document.Fields())
	if err != nil {
		return err
	}
	item.Document.UpdatedAt = updatedAt
	c.Track(Event{
		Entity:  EntityDocument,
		Op:      OpUpdate,
		ID:      item.Document.ID,
		Payload: *item.Document,
		Patch:   item.Patch,
	})
	return nil
}

// SnapshotDocument stores the next version of a document.
func (c *Context) SnapshotDocument(ctx context.Context, item DocumentSnapshotItem) (*mdocument.Version, error) {
	if c.q == nil {
		return nil, ErrNoTransaction
	}
	version, err := c.versions().CreateSnapshot(ctx, item.DocumentID, item.Fields, item.Description, item.CreatedBy)
	if err != nil {
		return nil, err
	}
	c.Track(Event{
		Entity:   EntityDocumentVersion,
		Op:       OpInsert,
		ID:       version.ID,
		ParentID: item.DocumentID,
		Payload:  *version,
	})
	return version, nil
}

// DeleteDocument removes a document; its versions cascade.
func (c *Context) DeleteDocument(ctx context.Context, id idwrap.IDWrap) error {
	if c.q == nil {
		return ErrNoTransaction
	}
	if err := c.documents().DeleteDocument(ctx, id); err != nil {
		return err
	}
	c.Track(Event{
		Entity: EntityDocument,
		Op:     OpDelete,
		ID:     id,
	})
	return nil
}
