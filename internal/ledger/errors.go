package ledger

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the target of a reversal does not exist.
// Callers treat it as a benign no-op, not a failure.
var ErrNotFound = errors.New("record not found")

// ValidationError reports bad input rejected before any row is written.
// Anything else coming out of the ledger service is a storage failure.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a validation rejection.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
