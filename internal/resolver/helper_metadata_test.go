package resolver_test

import (
	"sync"
	"time"

	"github.com/rohmanhakim/rudolf/internal/metadata"
)

type recordedError struct {
	action string
	cause  metadata.ErrorCause
}

// recordingSink keeps every event the resolver and its collaborators emit
type recordingSink struct {
	mu        sync.Mutex
	errors    []recordedError
	fetches   int
	artifacts int
	batches   int
	lastBatch [4]int
}

func (s *recordingSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause metadata.ErrorCause,
	details string,
	attrs []metadata.Attribute,
) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors = append(s.errors, recordedError{action: action, cause: cause})
}

func (s *recordingSink) RecordFetch(
	fetchUrl string,
	httpStatus int,
	duration time.Duration,
	contentType string,
	bodySize int,
) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetches++
}

func (s *recordingSink) RecordArtifact(kind metadata.ArtifactKind, path string, attrs []metadata.Attribute) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifacts++
}

func (s *recordingSink) RecordFinalBatchStats(
	totalDays int,
	fromCache int,
	fromRemote int,
	failed int,
	duration time.Duration,
) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches++
	s.lastBatch = [4]int{totalDays, fromCache, fromRemote, failed}
}
