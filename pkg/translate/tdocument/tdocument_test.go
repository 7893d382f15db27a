package tdocument

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/docpatch"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/docsync"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/idwrap"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/model/mdocument"
	documentv1 "github.com/the-dev-tools/dev-tools/packages/docserver/pkg/spec/api/document/v1"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/versiondiff"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestDeserializeChange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      documentv1.Change
		want    docpatch.Change
		wantErr string
	}{
		{
			name: "insert",
			in:   documentv1.Change{Type: "insert", Field: "content", Position: 3, Text: strPtr("abc")},
			want: docpatch.Change{Field: docpatch.FieldContent, Op: docpatch.Insert{Position: 3, Text: "abc"}},
		},
		{
			name: "delete ignores text",
			in:   documentv1.Change{Type: "delete", Field: "title", Position: 1, Length: intPtr(2), Text: strPtr("x")},
			want: docpatch.Change{Field: docpatch.FieldTitle, Op: docpatch.Delete{Position: 1, Length: 2}},
		},
		{
			name: "replace",
			in:   documentv1.Change{Type: "replace", Field: "content", Position: 0, Length: intPtr(8), Text: strPtr("Updated")},
			want: docpatch.Change{Field: docpatch.FieldContent, Op: docpatch.Replace{Position: 0, Length: 8, Text: "Updated"}},
		},
		{
			name: "negative position passes through",
			in:   documentv1.Change{Type: "insert", Field: "content", Position: -1, Text: strPtr("x")},
			want: docpatch.Change{Field: docpatch.FieldContent, Op: docpatch.Insert{Position: -1, Text: "x"}},
		},
		{
			name:    "unknown type",
			in:      documentv1.Change{Type: "move", Field: "content"},
			wantErr: `Change 0: unknown type "move"`,
		},
		{
			name:    "unknown field",
			in:      documentv1.Change{Type: "insert", Field: "body", Text: strPtr("x")},
			wantErr: `Change 0: unknown field "body"`,
		},
		{
			name:    "delete without length",
			in:      documentv1.Change{Type: "delete", Field: "content"},
			wantErr: "Change 0: length is required for delete operation",
		},
		{
			name:    "replace without text",
			in:      documentv1.Change{Type: "replace", Field: "content", Length: intPtr(1)},
			wantErr: "Change 0: text is required for replace operation",
		},
		{
			name:    "insert without text",
			in:      documentv1.Change{Type: "insert", Field: "content"},
			wantErr: "Change 0: text is required for insert operation",
		},
		{
			name:    "negative length",
			in:      documentv1.Change{Type: "delete", Field: "content", Length: intPtr(-2)},
			wantErr: "Change 0: length cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := DeserializeChange(0, tt.in)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, IsSchemaError(err))
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeserializeChangesReportsIndex(t *testing.T) {
	t.Parallel()

	_, err := DeserializeChanges([]documentv1.Change{
		{Type: "insert", Field: "content", Text: strPtr("ok")},
		{Type: "delete", Field: "content"},
	})
	assert.EqualError(t, err, "Change 1: length is required for delete operation")
}

func TestSerializeChange(t *testing.T) {
	t.Parallel()

	insert := SerializeChange(docpatch.Change{Field: docpatch.FieldTitle, Op: docpatch.Insert{Position: 2, Text: "ab"}})
	assert.Equal(t, documentv1.Change{Type: "insert", Field: "title", Position: 2, Text: strPtr("ab")}, insert)

	del := SerializeChange(docpatch.Change{Field: docpatch.FieldContent, Op: docpatch.Delete{Position: 4, Length: 3}})
	assert.Equal(t, documentv1.Change{Type: "delete", Field: "content", Position: 4, Length: intPtr(3)}, del)

	replace := SerializeChange(docpatch.Change{Field: docpatch.FieldContent, Op: docpatch.Replace{Position: 0, Length: 1, Text: "Z"}})
	assert.Equal(t, documentv1.Change{Type: "replace", Field: "content", Position: 0, Length: intPtr(1), Text: strPtr("Z")}, replace)
}

func TestSerializeDocument(t *testing.T) {
	t.Parallel()

	now := time.Unix(1700000000, 0).UTC()
	actor := idwrap.NewNow()
	doc := mdocument.Document{ID: idwrap.NewNow(), Title: "T", Content: "C", CreatedBy: &actor, CreatedAt: now, UpdatedAt: now}

	out := SerializeDocument(doc)
	assert.Equal(t, doc.ID.String(), out.DocumentID)
	assert.Equal(t, actor.String(), out.CreatedBy)
	assert.Equal(t, now, out.UpdatedAt)

	doc.CreatedBy = nil
	assert.Empty(t, SerializeDocument(doc).CreatedBy)
}

func TestSerializeDiff(t *testing.T) {
	t.Parallel()

	out := SerializeDiff(versiondiff.Fields(
		mdocument.Fields{Title: "Same", Content: "old text"},
		mdocument.Fields{Title: "Same", Content: "new text"},
	))
	require.Len(t, out.Title, 1)
	assert.Equal(t, "equal", out.Title[0].Op)
	assert.NotEmpty(t, out.Content)
	assert.Positive(t, out.Stats.Inserted)
	assert.Positive(t, out.Stats.Deleted)
}

func TestSerializeSyncEvent(t *testing.T) {
	t.Parallel()

	id := idwrap.NewNow()
	out := SerializeSyncEvent(docsync.Event{Type: docsync.EventVersion, DocumentID: id, VersionNumber: 3})
	assert.Equal(t, "version", out.Type)
	assert.Equal(t, id.String(), out.DocumentID)
	assert.Nil(t, out.Document)
	assert.EqualValues(t, 3, out.VersionNumber)

	doc := mdocument.Document{ID: id, Title: "T"}
	out = SerializeSyncEvent(docsync.Event{Type: docsync.EventUpdate, DocumentID: id, Document: &doc})
	require.NotNil(t, out.Document)
	assert.Equal(t, "T", out.Document.Title)
}
