package resolver

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rohmanhakim/rudolf/internal/fetcher"
	"github.com/rohmanhakim/rudolf/internal/metadata"
	"github.com/rohmanhakim/rudolf/internal/puzzle"
	"github.com/rohmanhakim/rudolf/pkg/failure"
)

/*
Responsibilities
- Answer "what is the input for (year, day)" from the cache when possible
- Fall back to exactly one remote fetch on a miss
- Write freshly fetched text back so the next call is a hit

Resolution states
  Init -> CacheLookup -> Hit -> Done
                      -> Miss -> RemoteFetch -> Success -> CacheWrite -> Done
                                             -> Failure -> Done(error)

Every Resolve owns its own cache handle and closes it on every path.
A failed write-back never hides text that was already fetched.
*/

// Cache is the subset of the store the resolver needs.
type Cache interface {
	Get(ctx context.Context, id puzzle.Identifier) (string, bool, failure.ClassifiedError)
	Put(ctx context.Context, record puzzle.Record) failure.ClassifiedError
	Close() error
}

// CacheOpener opens a fresh cache handle for one resolution.
type CacheOpener func(ctx context.Context) (Cache, failure.ClassifiedError)

type Resolver struct {
	metadataSink metadata.MetadataSink
	openCache    CacheOpener
	fetcher      fetcher.Fetcher
}

func NewResolver(
	metadataSink metadata.MetadataSink,
	openCache CacheOpener,
	inputFetcher fetcher.Fetcher,
) Resolver {
	return Resolver{
		metadataSink: metadataSink,
		openCache:    openCache,
		fetcher:      inputFetcher,
	}
}

func (r *Resolver) Resolve(ctx context.Context, id puzzle.Identifier) (Resolution, failure.ClassifiedError) {
	if idErr := id.Validate(); idErr != nil {
		r.recordError("Resolver.Resolve", metadata.CauseInvariantViolation, idErr, id)
		return Resolution{}, idErr
	}

	cache, err := r.openCache(ctx)
	if err != nil {
		return Resolution{}, err
	}
	defer r.closeCache(cache, id)

	text, found, err := cache.Get(ctx, id)
	if err != nil {
		return Resolution{}, err
	}
	if found {
		return Resolution{
			identifier: id,
			text:       text,
			source:     SourceCache,
		}, nil
	}

	result, err := r.fetcher.Fetch(ctx, id)
	if err != nil {
		return Resolution{}, err
	}

	resolution := Resolution{
		identifier: id,
		text:       result.Text(),
		source:     SourceRemote,
	}
	if putErr := cache.Put(ctx, puzzle.NewRecord(id, resolution.text)); putErr != nil {
		resolution.cacheWriteError = putErr
	}
	return resolution, nil
}

// ResolveRange resolves fromDay..toDay of year one day at a time and keeps
// going past failures. The summary is recorded once through finalizer.
func (r *Resolver) ResolveRange(
	ctx context.Context,
	year int,
	fromDay int,
	toDay int,
	finalizer metadata.BatchFinalizer,
) BatchReport {
	startTime := time.Now()
	report := BatchReport{}

	for day := fromDay; day <= toDay; day++ {
		id := puzzle.NewIdentifier(year, day)
		if ctx.Err() != nil {
			report.outcomes = append(report.outcomes, DayOutcome{
				identifier: id,
				err:        &cancelledError{cause: ctx.Err()},
			})
			report.failed++
			continue
		}

		resolution, err := r.Resolve(ctx, id)
		outcome := DayOutcome{identifier: id, err: err}
		switch {
		case err != nil:
			report.failed++
		case resolution.Source() == SourceCache:
			outcome.source = SourceCache
			outcome.size = len(resolution.Text())
			report.fromCache++
		default:
			outcome.source = SourceRemote
			outcome.size = len(resolution.Text())
			report.fromRemote++
		}
		report.outcomes = append(report.outcomes, outcome)
	}

	report.duration = time.Since(startTime)
	if finalizer != nil {
		finalizer.RecordFinalBatchStats(
			len(report.outcomes),
			report.fromCache,
			report.fromRemote,
			report.failed,
			report.duration,
		)
	}
	return report
}

func (r *Resolver) closeCache(cache Cache, id puzzle.Identifier) {
	if err := cache.Close(); err != nil {
		r.recordError("Resolver.closeCache", metadata.CauseStorageFailure, err, id)
	}
}

func (r *Resolver) recordError(action string, cause metadata.ErrorCause, err error, id puzzle.Identifier) {
	if r.metadataSink == nil {
		return
	}
	r.metadataSink.RecordError(
		time.Now(),
		"resolver",
		action,
		cause,
		err.Error(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrYear, strconv.Itoa(id.Year())),
			metadata.NewAttr(metadata.AttrDay, strconv.Itoa(id.Day())),
		},
	)
}

type cancelledError struct {
	cause error
}

func (e *cancelledError) Error() string {
	return fmt.Sprintf("resolver error: batch cancelled: %v", e.cause)
}

func (e *cancelledError) Unwrap() error {
	return e.cause
}

func (e *cancelledError) Severity() failure.Severity {
	return failure.SeverityRecoverable
}
