package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rohmanhakim/rudolf/internal/metadata"
	"github.com/rohmanhakim/rudolf/internal/puzzle"
	"github.com/rohmanhakim/rudolf/pkg/failure"
	"github.com/rohmanhakim/rudolf/pkg/fileutil"
	"github.com/rohmanhakim/rudolf/pkg/hashutil"
)

/*
Responsibilities
- Persist puzzle inputs keyed by (year, day)
- Answer cache lookups without ever treating a miss as an error
- Reject a second write for the same identifier

Output Characteristics
- Single SQLite file, created on first open
- Schema creation is idempotent
- Rows are append-only
*/

//go:embed schema.sql
var schema string

type Store struct {
	sqlDB        *sql.DB
	path         string
	metadataSink metadata.MetadataSink
}

// Open opens (creating if absent) the store at path and ensures the schema.
// Each Store owns exactly one connection and must be closed by its opener.
func Open(
	ctx context.Context,
	path string,
	metadataSink metadata.MetadataSink,
) (*Store, failure.ClassifiedError) {
	store, err := open(ctx, path)
	if err != nil {
		recordStorageError(metadataSink, "Open", err, nil)
		return nil, err
	}
	store.metadataSink = metadataSink
	return store, nil
}

func open(ctx context.Context, path string) (*Store, *StorageError) {
	if strings.TrimSpace(path) == "" {
		return nil, &StorageError{
			Message: "storage path is required",
			Cause:   ErrCauseOpenFailure,
		}
	}
	cleanPath := filepath.Clean(path)
	if err := fileutil.EnsureParentDir(cleanPath); err != nil {
		return nil, &StorageError{
			Message: err.Error(),
			Cause:   ErrCauseOpenFailure,
			Path:    cleanPath,
		}
	}

	sqlDB, err := sql.Open(driverName, cleanPath+dsnPragmas)
	if err != nil {
		return nil, &StorageError{
			Message: fmt.Sprintf("open sqlite db: %v", err),
			Cause:   ErrCauseOpenFailure,
			Path:    cleanPath,
		}
	}
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, &StorageError{
			Message: fmt.Sprintf("ping sqlite db: %v", err),
			Cause:   ErrCauseOpenFailure,
			Path:    cleanPath,
		}
	}
	if _, err := sqlDB.ExecContext(ctx, schema); err != nil {
		_ = sqlDB.Close()
		return nil, &StorageError{
			Message: fmt.Sprintf("ensure schema: %v", err),
			Cause:   ErrCauseOpenFailure,
			Path:    cleanPath,
		}
	}

	return &Store{sqlDB: sqlDB, path: cleanPath}, nil
}

func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Close releases the handle. It is safe on a nil or already closed Store.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	err := s.sqlDB.Close()
	s.sqlDB = nil
	return err
}

// Get returns the cached text for id. A miss is ("", false, nil).
func (s *Store) Get(ctx context.Context, id puzzle.Identifier) (string, bool, failure.ClassifiedError) {
	if err := s.ready(ctx); err != nil {
		s.recordError("Get", err, &id)
		return "", false, err
	}

	var text string
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT text FROM puzzles WHERE year = ? AND day = ?`,
		id.Year(), id.Day(),
	).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		storageErr := &StorageError{
			Message: fmt.Sprintf("get %s: %v", id, err),
			Cause:   ErrCauseQueryFailure,
			Path:    s.path,
		}
		s.recordError("Get", storageErr, &id)
		return "", false, storageErr
	}
	return text, true, nil
}

// Put inserts a new record. Writing an identifier twice fails with
// ErrCauseDuplicateKey and leaves the first text in place.
func (s *Store) Put(ctx context.Context, record puzzle.Record) failure.ClassifiedError {
	id := record.Identifier()
	if err := s.ready(ctx); err != nil {
		s.recordError("Put", err, &id)
		return err
	}

	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO puzzles (year, day, text) VALUES (?, ?, ?)`,
		id.Year(), id.Day(), record.Text(),
	)
	if err != nil {
		cause, retryable := classifyWriteError(err)
		storageErr := &StorageError{
			Message:   fmt.Sprintf("put %s: %v", id, err),
			Retryable: retryable,
			Cause:     cause,
			Path:      s.path,
		}
		s.recordError("Put", storageErr, &id)
		return storageErr
	}

	if s.metadataSink == nil {
		return nil
	}
	s.metadataSink.RecordArtifact(
		metadata.ArtifactCacheEntry,
		s.path,
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrYear, strconv.Itoa(id.Year())),
			metadata.NewAttr(metadata.AttrDay, strconv.Itoa(id.Day())),
			metadata.NewAttr(metadata.AttrSize, strconv.Itoa(record.Size())),
			metadata.NewAttr(metadata.AttrDigest, hashutil.HashBytes([]byte(record.Text()))),
		},
	)
	return nil
}

// List returns cached records ordered by year then day.
// A zero year lists every year.
func (s *Store) List(ctx context.Context, year int) ([]puzzle.Record, failure.ClassifiedError) {
	if err := s.ready(ctx); err != nil {
		s.recordError("List", err, nil)
		return nil, err
	}

	query := `SELECT year, day, text FROM puzzles`
	var args []any
	if year != 0 {
		query += ` WHERE year = ?`
		args = append(args, year)
	}
	query += ` ORDER BY year, day`

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, s.queryFailure("List", err)
	}
	defer rows.Close()

	records := []puzzle.Record{}
	for rows.Next() {
		var (
			rowYear int
			rowDay  int
			text    string
		)
		if err := rows.Scan(&rowYear, &rowDay, &text); err != nil {
			return nil, s.queryFailure("List", err)
		}
		records = append(records, puzzle.NewRecord(puzzle.NewIdentifier(rowYear, rowDay), text))
	}
	if err := rows.Err(); err != nil {
		return nil, s.queryFailure("List", err)
	}
	return records, nil
}

func (s *Store) ready(ctx context.Context) *StorageError {
	if s == nil || s.sqlDB == nil {
		return &StorageError{
			Message: "storage is not configured",
			Cause:   ErrCauseNotConfigured,
		}
	}
	if err := ctx.Err(); err != nil {
		return &StorageError{
			Message:   err.Error(),
			Retryable: true,
			Cause:     ErrCauseQueryFailure,
			Path:      s.path,
		}
	}
	return nil
}

func (s *Store) queryFailure(action string, err error) *StorageError {
	storageErr := &StorageError{
		Message: fmt.Sprintf("%s: %v", strings.ToLower(action), err),
		Cause:   ErrCauseQueryFailure,
		Path:    s.path,
	}
	s.recordError(action, storageErr, nil)
	return storageErr
}

func (s *Store) recordError(action string, err *StorageError, id *puzzle.Identifier) {
	var sink metadata.MetadataSink
	if s != nil {
		sink = s.metadataSink
	}
	recordStorageError(sink, action, err, id)
}

func recordStorageError(
	sink metadata.MetadataSink,
	action string,
	err *StorageError,
	id *puzzle.Identifier,
) {
	if sink == nil {
		return
	}
	attrs := []metadata.Attribute{
		metadata.NewAttr(metadata.AttrWritePath, err.Path),
	}
	if id != nil {
		attrs = append(attrs,
			metadata.NewAttr(metadata.AttrYear, strconv.Itoa(id.Year())),
			metadata.NewAttr(metadata.AttrDay, strconv.Itoa(id.Day())),
		)
	}
	sink.RecordError(
		time.Now(),
		"storage",
		"Store."+action,
		mapStorageErrorToMetadataCause(err),
		err.Error(),
		attrs,
	)
}
