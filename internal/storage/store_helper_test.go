package storage_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rohmanhakim/rudolf/internal/metadata"
	"github.com/rohmanhakim/rudolf/internal/storage"
	"github.com/stretchr/testify/require"
)

// metadataSinkMock is a mock for metadata.MetadataSink
type metadataSinkMock struct {
	mu sync.Mutex

	recordErrorCalled    bool
	recordErrorAction    string
	recordErrorCause     metadata.ErrorCause
	recordErrorDetails   string
	recordErrorAttrs     []metadata.Attribute
	recordArtifactCalled int
	recordArtifactKind   metadata.ArtifactKind
	recordArtifactPath   string
	recordArtifactAttrs  []metadata.Attribute
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
	m.recordErrorCalled = true
	m.recordErrorAction = action
	m.recordErrorCause = cause
	m.recordErrorDetails = details
	m.recordErrorAttrs = attrs
}

func (m *metadataSinkMock) RecordFetch(
	fetchUrl string,
	httpStatus int,
	duration time.Duration,
	contentType string,
	bodySize int,
) {
}

func (m *metadataSinkMock) RecordArtifact(kind metadata.ArtifactKind, path string, attrs []metadata.Attribute) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recordArtifactCalled++
	m.recordArtifactKind = kind
	m.recordArtifactPath = path
	m.recordArtifactAttrs = attrs
}

func attrValue(attrs []metadata.Attribute, key metadata.AttributeKey) string {
	for _, attr := range attrs {
		if attr.Key == key {
			return attr.Value
		}
	}
	return ""
}

func openTempStore(t *testing.T, sink metadata.MetadataSink) (*storage.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rudolf.db")
	store, err := storage.Open(context.Background(), path, sink)
	require.Nil(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, path
}
