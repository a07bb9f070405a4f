package failure

type Severity int

// caller control flow
const (
	SeverityFatal Severity = iota
	SeverityRecoverable
)

// ClassifiedError is implemented by every package-local error type.
// Severity tells the caller whether the failure ends the current operation
// or whether a degraded result can still be returned.
type ClassifiedError interface {
	error
	Severity() Severity
}

// IsRecoverable reports whether err carries a recoverable severity.
// A nil error is not recoverable because there is nothing to recover from.
func IsRecoverable(err ClassifiedError) bool {
	if err == nil {
		return false
	}
	return err.Severity() == SeverityRecoverable
}
