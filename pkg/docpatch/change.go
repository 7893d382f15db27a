// Package docpatch validates, applies and summarizes position-based edits
// against the text fields of a document.
//
// Offsets are counted in Unicode code points. Every function in this package
// is pure: it neither retains nor mutates its inputs.
package docpatch

import "fmt"

// Kind identifies the operation carried by a Change.
type Kind uint8

const (
	KindInsert Kind = iota + 1
	KindDelete
	KindReplace
)

func (k Kind) String() string {
	switch k {
	case KindInsert:
		return "insert"
	case KindDelete:
		return "delete"
	case KindReplace:
		return "replace"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ParseKind maps a wire name to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "insert":
		return KindInsert, true
	case "delete":
		return KindDelete, true
	case "replace":
		return KindReplace, true
	default:
		return 0, false
	}
}

// Field identifies which text of a document a Change targets.
type Field uint8

const (
	FieldTitle Field = iota + 1
	FieldContent
)

// Fields lists every field in the order batches are processed and reported.
var Fields = []Field{FieldTitle, FieldContent}

func (f Field) String() string {
	switch f {
	case FieldTitle:
		return "title"
	case FieldContent:
		return "content"
	default:
		return fmt.Sprintf("field(%d)", uint8(f))
	}
}

// ParseField maps a wire name to a Field.
func ParseField(s string) (Field, bool) {
	switch s {
	case "title":
		return FieldTitle, true
	case "content":
		return FieldContent, true
	default:
		return 0, false
	}
}

// Op is one of Insert, Delete or Replace.
type Op interface {
	Kind() Kind
	// span reports the start offset, the number of code points consumed
	// and the text written in their place.
	span() (position, length int, text string)
}

// Insert splices Text at Position. Positions past the end append.
type Insert struct {
	Position int
	Text     string
}

// Delete removes Length code points starting at Position.
type Delete struct {
	Position int
	Length   int
}

// Replace substitutes Text for Length code points starting at Position.
type Replace struct {
	Position int
	Length   int
	Text     string
}

func (Insert) Kind() Kind  { return KindInsert }
func (Delete) Kind() Kind  { return KindDelete }
func (Replace) Kind() Kind { return KindReplace }

func (o Insert) span() (int, int, string)  { return o.Position, 0, o.Text }
func (o Delete) span() (int, int, string)  { return o.Position, o.Length, "" }
func (o Replace) span() (int, int, string) { return o.Position, o.Length, o.Text }

// Change is one requested edit of one field.
type Change struct {
	Field Field
	Op    Op
}

// Kind returns the kind of the wrapped operation.
func (c Change) Kind() Kind {
	return c.Op.Kind()
}

// Position returns the offset the change starts at.
func (c Change) Position() int {
	p, _, _ := c.Op.span()
	return p
}

// Length returns the number of code points the change consumes. It is zero
// for inserts.
func (c Change) Length() int {
	_, l, _ := c.Op.span()
	return l
}

// Text returns the text the change writes. It is empty for deletes.
func (c Change) Text() string {
	_, _, t := c.Op.span()
	return t
}

// NewChange builds a Change of the given kind. length is ignored for
// inserts and text is ignored for deletes.
func NewChange(field Field, kind Kind, position, length int, text string) (Change, error) {
	var op Op
	switch kind {
	case KindInsert:
		op = Insert{Position: position, Text: text}
	case KindDelete:
		op = Delete{Position: position, Length: length}
	case KindReplace:
		op = Replace{Position: position, Length: length, Text: text}
	default:
		return Change{}, fmt.Errorf("docpatch: unknown kind %d", kind)
	}
	return Change{Field: field, Op: op}, nil
}

// policy describes how a kind is validated and applied.
type policy struct {
	// RangeChecked kinds must start inside the original text.
	RangeChecked bool
	// Consumes kinds remove code points starting at their position.
	Consumes bool
	// Inserts kinds write their text at their position.
	Inserts bool
}

var policies = map[Kind]policy{
	KindInsert:  {RangeChecked: false, Consumes: false, Inserts: true},
	KindDelete:  {RangeChecked: true, Consumes: true, Inserts: false},
	KindReplace: {RangeChecked: true, Consumes: true, Inserts: true},
}

func policyOf(k Kind) policy {
	return policies[k]
}
