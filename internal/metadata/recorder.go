package metadata

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
)

/*
Metadata Collected
- Fetch timestamps, status codes and transfer sizes
- Content digests of cached inputs
- Batch summaries

Metadata is write-only.
No component may read metadata to influence resolution decisions.
*/

/*
Recorder captures structured events as zerolog lines.
It must not:
- perform I/O decisions
- affect control flow
Every line carries the run id so one invocation can be traced end to end.
*/
type Recorder struct {
	logger zerolog.Logger
	runID  string
}

func NewRecorder(logger zerolog.Logger, runID string) Recorder {
	return Recorder{
		logger: logger.With().Str("run_id", runID).Logger(),
		runID:  runID,
	}
}

func (r *Recorder) RunID() string {
	return r.runID
}

func (r *Recorder) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	errorString string,
	attrs []Attribute,
) {
	event := r.logger.Error().
		Time("observed_at", observedAt).
		Str("package", packageName).
		Str("action", action).
		Stringer("cause", cause)
	withAttrs(event, attrs).Msg(errorString)
}

func (r *Recorder) RecordFetch(
	fetchUrl string,
	httpStatus int,
	duration time.Duration,
	contentType string,
	bodySize int,
) {
	r.logger.Info().
		Str("url", fetchUrl).
		Int("http_status", httpStatus).
		Dur("duration", duration).
		Str("content_type", contentType).
		Int("bytes", bodySize).
		Str("size", humanize.Bytes(uint64(max(bodySize, 0)))).
		Msg("fetch")
}

func (r *Recorder) RecordArtifact(kind ArtifactKind, path string, attrs []Attribute) {
	event := r.logger.Info().
		Str("kind", string(kind)).
		Str("path", path)
	withAttrs(event, attrs).Msg("artifact")
}

/*
RecordFinalBatchStats records a terminal, derived summary of a prefetch batch.

Contract:
  - MUST be called exactly once per batch, after its last day.
  - The provided counts MUST be derived from the batch outcome,
    not accumulated incrementally via the recorder.
*/
func (r *Recorder) RecordFinalBatchStats(
	totalDays int,
	fromCache int,
	fromRemote int,
	failed int,
	duration time.Duration,
) {
	stats := batchStats{
		totalDays:  totalDays,
		fromCache:  fromCache,
		fromRemote: fromRemote,
		failed:     failed,
		durationMs: duration.Milliseconds(),
	}

	r.append(stats)
}

func (r *Recorder) append(stats batchStats) {
	level := zerolog.InfoLevel
	if stats.failed > 0 {
		level = zerolog.WarnLevel
	}
	r.logger.WithLevel(level).
		Time("finished_at", time.Now()).
		Int("total_days", stats.totalDays).
		Int("from_cache", stats.fromCache).
		Int("from_remote", stats.fromRemote).
		Int("failed", stats.failed).
		Int64("duration_ms", stats.durationMs).
		Msg("batch finished")
}

func withAttrs(event *zerolog.Event, attrs []Attribute) *zerolog.Event {
	for _, attr := range attrs {
		event = event.Str(string(attr.Key), attr.Value)
	}
	return event
}

type MetadataSink interface {
	RecordError(
		observedAt time.Time,
		packageName string,
		action string,
		cause ErrorCause,
		details string,
		attrs []Attribute,
	)

	RecordFetch(
		fetchUrl string,
		httpStatus int,
		duration time.Duration,
		contentType string,
		bodySize int,
	)
	RecordArtifact(kind ArtifactKind, path string, attrs []Attribute)
}

type BatchFinalizer interface {
	RecordFinalBatchStats(
		totalDays int,
		fromCache int,
		fromRemote int,
		failed int,
		duration time.Duration,
	)
}

// NoopSink, struct that implements metadata.MetadataSink but does nothing
// Callers (or tests) can decide whether to inject Recorder or NoopSink

type NoopSink struct{}

func (n *NoopSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	errorString string,
	attrs []Attribute,
) {

}

func (n *NoopSink) RecordFetch(
	fetchUrl string,
	httpStatus int,
	duration time.Duration,
	contentType string,
	bodySize int,
) {
}

func (n *NoopSink) RecordArtifact(kind ArtifactKind, path string, attrs []Attribute) {}

func (n *NoopSink) RecordFinalBatchStats(
	totalDays int,
	fromCache int,
	fromRemote int,
	failed int,
	duration time.Duration,
) {
}
