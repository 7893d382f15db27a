package patch

import "github.com/the-dev-tools/dev-tools/packages/docserver/pkg/model/mdocument"

// DocumentPatch represents a sparse full-value update of a document.
//
// Semantics:
//   - Field.IsSet() == false = field not changed
//   - Field.IsUnset() == true = field cleared to ""
//   - Field.HasValue() == true = field set to that value
type DocumentPatch struct {
	Title   Optional[string]
	Content Optional[string]
}

// HasChanges returns true if any field in the patch has been set
func (p DocumentPatch) HasChanges() bool {
	return p.Title.IsSet() || p.Content.IsSet()
}

// Apply returns current with the patch's fields applied.
func (p DocumentPatch) Apply(current mdocument.Fields) mdocument.Fields {
	return mdocument.Fields{
		Title:   p.Title.Or(current.Title),
		Content: p.Content.Or(current.Content),
	}
}
