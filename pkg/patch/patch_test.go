package patch

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/model/mdocument"
)

func TestOptionalStates(t *testing.T) {
	t.Parallel()

	var notSet Optional[string]
	assert.False(t, notSet.IsSet())
	assert.False(t, notSet.HasValue())
	assert.Equal(t, "fallback", notSet.Or("fallback"))

	unset := Unset[string]()
	assert.True(t, unset.IsSet())
	assert.True(t, unset.IsUnset())
	assert.Equal(t, "", unset.Or("fallback"))

	value := NewOptional("v")
	assert.True(t, value.HasValue())
	assert.Equal(t, "v", *value.Value())
	assert.Equal(t, "v", value.Or("fallback"))

	assert.False(t, NewOptionalPtr[string](nil).IsSet())
	s := "ptr"
	assert.Equal(t, "ptr", NewOptionalPtr(&s).Or(""))
}

func TestDocumentPatchApply(t *testing.T) {
	t.Parallel()

	current := mdocument.Fields{Title: "Title", Content: "Body"}

	tests := []struct {
		name        string
		patch       DocumentPatch
		want        mdocument.Fields
		wantChanges bool
	}{
		{
			name:  "empty patch keeps fields",
			patch: DocumentPatch{},
			want:  current,
		},
		{
			name:        "title only",
			patch:       DocumentPatch{Title: NewOptional("New")},
			want:        mdocument.Fields{Title: "New", Content: "Body"},
			wantChanges: true,
		},
		{
			name:        "clear content",
			patch:       DocumentPatch{Content: Unset[string]()},
			want:        mdocument.Fields{Title: "Title", Content: ""},
			wantChanges: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.patch.Apply(current))
			assert.Equal(t, tt.wantChanges, tt.patch.HasChanges())
		})
	}
}
