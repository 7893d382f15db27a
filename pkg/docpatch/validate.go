package docpatch

import (
	"fmt"
	"unicode/utf8"
)

// Outcome is the result of validating a batch of changes.
type Outcome struct {
	Valid  bool
	Errors []string
}

// Validate checks every change against the unmodified text. Errors are
// collected rather than short-circuited and are prefixed with the index of
// the change inside changes.
func Validate(text string, changes []Change) Outcome {
	textLen := utf8.RuneCountInString(text)

	var errs []string
	for i, change := range changes {
		position := change.Position()
		if position < 0 {
			errs = append(errs, fmt.Sprintf("Change %d: position cannot be negative", i))
			continue
		}

		kind := change.Kind()
		if policyOf(kind).RangeChecked && position > textLen {
			errs = append(errs, fmt.Sprintf(
				"Change %d: position %d exceeds text length %d for %s operation",
				i, position, textLen, kind,
			))
		}
	}

	return Outcome{Valid: len(errs) == 0, Errors: errs}
}
