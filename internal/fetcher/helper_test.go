package fetcher_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rohmanhakim/rudolf/internal/metadata"
	"github.com/rohmanhakim/rudolf/pkg/timeutil"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// metadataSinkMock records what the fetcher reports.
type metadataSinkMock struct {
	mu sync.Mutex

	fetchCalls       int
	fetchURL         string
	fetchStatus      int
	fetchContentType string
	fetchBodySize    int
	errorCalls       int
	errorAction      string
	errorCause       metadata.ErrorCause
	errorDetails     string
	errorAttrs       []metadata.Attribute
	artifactRecorded bool
}

func (m *metadataSinkMock) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause metadata.ErrorCause,
	details string,
	attrs []metadata.Attribute,
) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCalls++
	m.errorAction = action
	m.errorCause = cause
	m.errorDetails = details
	m.errorAttrs = attrs
}

func (m *metadataSinkMock) RecordFetch(
	fetchUrl string,
	httpStatus int,
	duration time.Duration,
	contentType string,
	bodySize int,
) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchCalls++
	m.fetchURL = fetchUrl
	m.fetchStatus = httpStatus
	m.fetchContentType = contentType
	m.fetchBodySize = bodySize
}

func (m *metadataSinkMock) RecordArtifact(kind metadata.ArtifactKind, path string, attrs []metadata.Attribute) {
	m.artifactRecorded = true
}

// rateLimiterMock is a testify mock for limiter.RateLimiter
type rateLimiterMock struct {
	mock.Mock
}

func (m *rateLimiterMock) SetBaseDelay(baseDelay time.Duration) {
	m.Called(baseDelay)
}

func (m *rateLimiterMock) SetJitter(jitter time.Duration) {
	m.Called(jitter)
}

func (m *rateLimiterMock) SetRandomSeed(randomSeed int64) {
	m.Called(randomSeed)
}

func (m *rateLimiterMock) SetBackoffParam(param timeutil.BackoffParam) {
	m.Called(param)
}

func (m *rateLimiterMock) Backoff(host string) {
	m.Called(host)
}

func (m *rateLimiterMock) ResetBackoff(host string) {
	m.Called(host)
}

func (m *rateLimiterMock) MarkLastFetchAsNow(host string) {
	m.Called(host)
}

func (m *rateLimiterMock) ResolveDelay(host string) time.Duration {
	args := m.Called(host)
	return args.Get(0).(time.Duration)
}

func writeCookieFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cookie.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func attrValue(attrs []metadata.Attribute, key metadata.AttributeKey) string {
	for _, attr := range attrs {
		if attr.Key == key {
			return attr.Value
		}
	}
	return ""
}
