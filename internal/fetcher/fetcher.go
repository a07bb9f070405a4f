package fetcher

import (
	"context"

	"github.com/rohmanhakim/rudolf/internal/puzzle"
	"github.com/rohmanhakim/rudolf/pkg/failure"
)

type Fetcher interface {
	Fetch(
		ctx context.Context,
		id puzzle.Identifier,
	) (FetchResult, failure.ClassifiedError)
}
