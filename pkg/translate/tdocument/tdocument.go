// Package tdocument converts between the document models and the
// documentv1 wire messages.
package tdocument

import (
	"errors"
	"fmt"

	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/docpatch"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/docsync"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/idwrap"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/model/mdocument"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/searchindex"
	documentv1 "github.com/the-dev-tools/dev-tools/packages/docserver/pkg/spec/api/document/v1"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/translate/tgeneric"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/versiondiff"
)

// SchemaError reports a wire change that cannot be turned into an engine
// change. It is raised before any storage access.
type SchemaError struct {
	Index  int
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("Change %d: %s", e.Index, e.Reason)
}

func IsSchemaError(err error) bool {
	var schemaErr *SchemaError
	return errors.As(err, &schemaErr)
}

func optionalID(id *idwrap.IDWrap) string {
	if id == nil {
		return ""
	}
	return id.String()
}

func SerializeDocument(doc mdocument.Document) documentv1.Document {
	return documentv1.Document{
		DocumentID: doc.ID.String(),
		Title:      doc.Title,
		Content:    doc.Content,
		CreatedBy:  optionalID(doc.CreatedBy),
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}
}

func SerializeVersion(v mdocument.Version) documentv1.Version {
	return documentv1.Version{
		VersionID:         v.ID.String(),
		DocumentID:        v.DocumentID.String(),
		VersionNumber:     v.VersionNumber,
		Title:             v.Title,
		Content:           v.Content,
		ChangeDescription: v.ChangeDescription,
		ContentHash:       v.ContentHash,
		CreatedBy:         optionalID(v.CreatedBy),
		CreatedAt:         v.CreatedAt,
	}
}

// SerializeChange writes length only for kinds that consume text and text
// only for kinds that insert it.
func SerializeChange(c docpatch.Change) documentv1.Change {
	out := documentv1.Change{
		Type:     c.Kind().String(),
		Field:    c.Field.String(),
		Position: c.Position(),
	}
	switch c.Kind() {
	case docpatch.KindInsert:
		text := c.Text()
		out.Text = &text
	case docpatch.KindDelete:
		length := c.Length()
		out.Length = &length
	case docpatch.KindReplace:
		text, length := c.Text(), c.Length()
		out.Text = &text
		out.Length = &length
	}
	return out
}

// DeserializeChange enforces the wire schema. Positions are passed through
// unchecked; the engine reports negative ones itself.
func DeserializeChange(index int, in documentv1.Change) (docpatch.Change, error) {
	kind, ok := docpatch.ParseKind(in.Type)
	if !ok {
		return docpatch.Change{}, &SchemaError{Index: index, Reason: fmt.Sprintf("unknown type %q", in.Type)}
	}
	field, ok := docpatch.ParseField(in.Field)
	if !ok {
		return docpatch.Change{}, &SchemaError{Index: index, Reason: fmt.Sprintf("unknown field %q", in.Field)}
	}

	var length int
	if kind != docpatch.KindInsert {
		if in.Length == nil {
			return docpatch.Change{}, &SchemaError{Index: index, Reason: fmt.Sprintf("length is required for %s operation", kind)}
		}
		if *in.Length < 0 {
			return docpatch.Change{}, &SchemaError{Index: index, Reason: "length cannot be negative"}
		}
		length = *in.Length
	}

	var text string
	if kind != docpatch.KindDelete {
		if in.Text == nil {
			return docpatch.Change{}, &SchemaError{Index: index, Reason: fmt.Sprintf("text is required for %s operation", kind)}
		}
		text = *in.Text
	}

	return docpatch.NewChange(field, kind, in.Position, length, text)
}

func DeserializeChanges(in []documentv1.Change) ([]docpatch.Change, error) {
	out := make([]docpatch.Change, 0, len(in))
	for i, c := range in {
		change, err := DeserializeChange(i, c)
		if err != nil {
			return nil, err
		}
		out = append(out, change)
	}
	return out, nil
}

func SerializeChangeCounts(counts map[docpatch.Field]int) documentv1.ChangeCounts {
	return documentv1.ChangeCounts{
		Title:   counts[docpatch.FieldTitle],
		Content: counts[docpatch.FieldContent],
	}
}

func serializeSegment(s versiondiff.Segment) documentv1.DiffSegment {
	return documentv1.DiffSegment{Op: string(s.Op), Text: s.Text}
}

func SerializeDiff(r versiondiff.Result) *documentv1.DocumentVersionDiffResponse {
	stats := r.Stats()
	return &documentv1.DocumentVersionDiffResponse{
		Title:   tgeneric.MassConvert(r.Title, serializeSegment),
		Content: tgeneric.MassConvert(r.Content, serializeSegment),
		Stats:   documentv1.DiffStats{Inserted: stats.Inserted, Deleted: stats.Deleted},
	}
}

func SerializeHit(h searchindex.Hit) documentv1.SearchHit {
	return documentv1.SearchHit{
		DocumentID:   h.DocumentID.String(),
		Title:        h.Title,
		Snippet:      h.Snippet,
		MatchedTitle: h.MatchedTitle,
		Distance:     h.Distance,
		UpdatedAt:    h.UpdatedAt,
	}
}

func SerializeSyncEvent(evt docsync.Event) *documentv1.DocumentSyncResponse {
	out := &documentv1.DocumentSyncResponse{
		Type:          evt.Type,
		DocumentID:    evt.DocumentID.String(),
		VersionNumber: evt.VersionNumber,
	}
	if evt.Document != nil {
		doc := SerializeDocument(*evt.Document)
		out.Document = &doc
	}
	return out
}
