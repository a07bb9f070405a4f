package resolver

import (
	"time"

	"github.com/rohmanhakim/rudolf/internal/puzzle"
	"github.com/rohmanhakim/rudolf/pkg/failure"
)

type Source string

const (
	SourceCache  Source = "cache"
	SourceRemote Source = "remote"
)

// Resolution is the outcome of a successful Resolve.
type Resolution struct {
	identifier      puzzle.Identifier
	text            string
	source          Source
	cacheWriteError failure.ClassifiedError
}

func (r Resolution) Identifier() puzzle.Identifier {
	return r.identifier
}

func (r Resolution) Text() string {
	return r.text
}

func (r Resolution) Source() Source {
	return r.source
}

// CacheWriteError is non-nil when the text was fetched but could not be
// stored. The text is still valid.
func (r Resolution) CacheWriteError() failure.ClassifiedError {
	return r.cacheWriteError
}

// DayOutcome is one line of a BatchReport.
type DayOutcome struct {
	identifier puzzle.Identifier
	source     Source
	size       int
	err        failure.ClassifiedError
}

func (d DayOutcome) Identifier() puzzle.Identifier {
	return d.identifier
}

// Source is empty when the day failed.
func (d DayOutcome) Source() Source {
	return d.source
}

func (d DayOutcome) Size() int {
	return d.size
}

func (d DayOutcome) Err() failure.ClassifiedError {
	return d.err
}

type BatchReport struct {
	outcomes   []DayOutcome
	fromCache  int
	fromRemote int
	failed     int
	duration   time.Duration
}

func (b BatchReport) Outcomes() []DayOutcome {
	return b.outcomes
}

func (b BatchReport) FromCache() int {
	return b.fromCache
}

func (b BatchReport) FromRemote() int {
	return b.fromRemote
}

func (b BatchReport) Failed() int {
	return b.failed
}

func (b BatchReport) Duration() time.Duration {
	return b.duration
}
