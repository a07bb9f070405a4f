package resolver

import (
	"context"

	"github.com/rohmanhakim/rudolf/internal/metadata"
	"github.com/rohmanhakim/rudolf/internal/storage"
	"github.com/rohmanhakim/rudolf/pkg/failure"
)

// StoreOpener opens the SQLite store at path once per resolution.
func StoreOpener(path string, metadataSink metadata.MetadataSink) CacheOpener {
	return func(ctx context.Context) (Cache, failure.ClassifiedError) {
		store, err := storage.Open(ctx, path, metadataSink)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
}
