package domain

import (
	"errors"
	"fmt"
)

// ErrAuthRequired is returned when a record-set operation is attempted
// without a resolved identity. It is user-visible and must not be retried.
var ErrAuthRequired = errors.New("authentication required")

// DecodeError marks a file whose bytes could not be parsed in its declared
// format. It aborts the whole batch upload.
type DecodeError struct {
	File string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode file %s: %v", e.File, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
