package docpatch

import (
	"math"
	"unicode/utf8"
)

// Optimize returns a shorter description of changes for reporting. It is
// never fed back into Apply by this package, but applying its result to any
// starting text yields the same text as applying changes.
//
// Two rules are used:
//   - changes that cannot alter any text are dropped;
//   - a change that starts exactly where the text written by the previous
//     change of the same field ends is folded into it. Typing runs become one
//     Insert, forward-delete runs one Delete, a delete followed by an insert
//     at the same point one Replace.
func Optimize(changes []Change) []Change {
	out := make([]Change, 0, len(changes))
	for _, change := range changes {
		if isNoop(change) {
			continue
		}
		if n := len(out); n > 0 {
			if merged, ok := merge(out[n-1], change); ok {
				out[n-1] = merged
				continue
			}
		}
		out = append(out, change)
	}
	return out
}

func isNoop(c Change) bool {
	_, length, text := c.Op.span()
	return length <= 0 && text == ""
}

// merge folds next into prev when next starts at the end of prev's written
// text. Under Apply's clamping this holds for any starting text: when prev
// lands inside the text, next lands right after prev's text; when prev is
// clamped to the end, next is clamped to the new end.
func merge(prev, next Change) (Change, bool) {
	if prev.Field != next.Field {
		return Change{}, false
	}

	prevPos, prevLen, prevText := prev.Op.span()
	nextPos, nextLen, nextText := next.Op.span()
	if prevPos < 0 || nextPos < 0 {
		return Change{}, false
	}

	written := utf8.RuneCountInString(prevText)
	if prevPos > math.MaxInt-written || prevPos+written != nextPos {
		return Change{}, false
	}

	position := prevPos
	length := saturatingAdd(max(prevLen, 0), max(nextLen, 0))
	text := prevText + nextText

	var op Op
	switch {
	case prev.Kind() == KindInsert && next.Kind() == KindInsert:
		op = Insert{Position: position, Text: text}
	case prev.Kind() == KindDelete && next.Kind() == KindDelete:
		op = Delete{Position: position, Length: length}
	default:
		op = Replace{Position: position, Length: length, Text: text}
	}
	return Change{Field: prev.Field, Op: op}, true
}

func saturatingAdd(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}
