package mdocument

import (
	"time"

	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/idwrap"
)

// Document is the current state of an editable document.
type Document struct {
	ID        idwrap.IDWrap
	Title     string
	Content   string
	CreatedBy *idwrap.IDWrap
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Version is an immutable snapshot of a document's fields taken right
// before a change was applied.
type Version struct {
	ID                idwrap.IDWrap
	DocumentID        idwrap.IDWrap
	VersionNumber     int64
	Title             string
	Content           string
	ChangeDescription string
	ContentHash       string
	CreatedBy         *idwrap.IDWrap
	CreatedAt         time.Time
}

// Fields is the pair of text fields the patch engine operates on.
type Fields struct {
	Title   string
	Content string
}

func (d Document) Fields() Fields {
	return Fields{Title: d.Title, Content: d.Content}
}

func (d *Document) SetFields(f Fields) {
	d.Title = f.Title
	d.Content = f.Content
}
