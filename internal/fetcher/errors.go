package fetcher

import (
	"errors"
	"fmt"

	"github.com/rohmanhakim/rudolf/internal/metadata"
	"github.com/rohmanhakim/rudolf/pkg/failure"
)

type FetchErrorCause string

const (
	ErrCauseInvalidURL            FetchErrorCause = "invalid url"
	ErrCauseCookieJar             FetchErrorCause = "cookie jar unusable"
	ErrCauseTimeout               FetchErrorCause = "timeout"
	ErrCauseNetworkFailure        FetchErrorCause = "network issues"
	ErrCauseReadResponseBodyError FetchErrorCause = "failed to read response body"
	ErrCauseNotFound              FetchErrorCause = "not found"
	ErrCauseUnauthorized          FetchErrorCause = "session rejected"
	ErrCauseRequestTooMany        FetchErrorCause = "too many requests"
	ErrCauseRequest5xx            FetchErrorCause = "5xx"
	ErrCauseUnexpectedStatus      FetchErrorCause = "unexpected status"
	ErrCauseEmptyBody             FetchErrorCause = "empty body"
)

type FetchError struct {
	Message    string
	Retryable  bool
	Cause      FetchErrorCause
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetcher error: %s: %s", e.Cause, e.Message)
}

func (e *FetchError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// IsNotFound reports whether the remote answered that the input does not exist.
func IsNotFound(err error) bool {
	return hasCause(err, ErrCauseNotFound)
}

// IsNetworkError reports whether the request failed in transport,
// before a complete response was received.
func IsNetworkError(err error) bool {
	return hasCause(err, ErrCauseNetworkFailure, ErrCauseTimeout, ErrCauseReadResponseBodyError)
}

func hasCause(err error, causes ...FetchErrorCause) bool {
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		return false
	}
	for _, cause := range causes {
		if fetchErr.Cause == cause {
			return true
		}
	}
	return false
}

// mapFetchErrorToMetadataCause maps fetcher-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapFetchErrorToMetadataCause(err *FetchError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseTimeout, ErrCauseNetworkFailure, ErrCauseReadResponseBodyError, ErrCauseRequest5xx:
		return metadata.CauseNetworkFailure
	case ErrCauseNotFound:
		return metadata.CauseRemoteNotFound
	case ErrCauseUnauthorized, ErrCauseRequestTooMany:
		return metadata.CausePolicyDisallow
	case ErrCauseCookieJar, ErrCauseEmptyBody, ErrCauseUnexpectedStatus:
		return metadata.CauseContentInvalid
	case ErrCauseInvalidURL:
		return metadata.CauseInvariantViolation
	default:
		return metadata.CauseUnknown
	}
}
