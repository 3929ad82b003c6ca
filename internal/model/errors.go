package model

import "fmt"

// MissingInputError means the event does not name the file produced by the
// previous step. It is not retryable.
type MissingInputError struct {
	Reason string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("file is not specified: %s", e.Reason)
}
