package puzzle

import (
	"fmt"

	"github.com/rohmanhakim/rudolf/pkg/failure"
)

type IdentifierErrorCause string

const (
	ErrCauseYearOutOfRange IdentifierErrorCause = "year out of range"
	ErrCauseDayOutOfRange  IdentifierErrorCause = "day out of range"
)

type IdentifierError struct {
	Message string
	Cause   IdentifierErrorCause
}

func (e *IdentifierError) Error() string {
	return fmt.Sprintf("puzzle identifier error: %s: %s", e.Cause, e.Message)
}

// Severity is always fatal: an invalid identifier never becomes valid.
func (e *IdentifierError) Severity() failure.Severity {
	return failure.SeverityFatal
}
