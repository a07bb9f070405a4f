package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rohmanhakim/rudolf/internal/metadata"
	"github.com/rohmanhakim/rudolf/pkg/failure"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

type StorageErrorCause string

const (
	ErrCauseOpenFailure   StorageErrorCause = "open failed"
	ErrCauseQueryFailure  StorageErrorCause = "query failed"
	ErrCauseWriteFailure  StorageErrorCause = "write failed"
	ErrCauseDuplicateKey  StorageErrorCause = "identifier already cached"
	ErrCauseDiskFull      StorageErrorCause = "disk is full"
	ErrCauseStoreBusy     StorageErrorCause = "store is busy"
	ErrCauseNotConfigured StorageErrorCause = "store is not open"
)

type StorageError struct {
	Message   string
	Retryable bool
	Cause     StorageErrorCause
	Path      string
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s: %s", e.Cause, e.Message)
}

func (e *StorageError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// IsDuplicate reports whether err is a write rejected because the identifier
// is already cached.
func IsDuplicate(err error) bool {
	var storageErr *StorageError
	if errors.As(err, &storageErr) {
		return storageErr.Cause == ErrCauseDuplicateKey
	}
	return false
}

// classifyWriteError narrows a driver error raised by an insert.
func classifyWriteError(err error) (StorageErrorCause, bool) {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return ErrCauseDuplicateKey, false
		case sqlite3lib.SQLITE_FULL:
			return ErrCauseDiskFull, false
		case sqlite3lib.SQLITE_BUSY, sqlite3lib.SQLITE_LOCKED:
			return ErrCauseStoreBusy, true
		}
	}
	message := strings.ToLower(err.Error())
	if strings.Contains(message, "unique constraint failed") &&
		strings.Contains(message, "puzzles.year") {
		return ErrCauseDuplicateKey, false
	}
	return ErrCauseWriteFailure, false
}

// mapStorageErrorToMetadataCause maps storage-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapStorageErrorToMetadataCause(err *StorageError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseOpenFailure,
		ErrCauseQueryFailure,
		ErrCauseWriteFailure,
		ErrCauseDiskFull,
		ErrCauseStoreBusy,
		ErrCauseNotConfigured:
		return metadata.CauseStorageFailure
	case ErrCauseDuplicateKey:
		return metadata.CauseInvariantViolation
	default:
		return metadata.CauseUnknown
	}
}
