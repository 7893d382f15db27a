package sdocpatch

import (
	"errors"
	"strings"
)

// ValidationError rejects a whole batch. Errors lists every offending
// change, title changes first.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "invalid changes: " + strings.Join(e.Errors, "; ")
}

func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}
