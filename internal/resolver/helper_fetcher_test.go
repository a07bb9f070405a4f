package resolver_test

import (
	"context"

	"github.com/rohmanhakim/rudolf/internal/fetcher"
	"github.com/rohmanhakim/rudolf/internal/puzzle"
	"github.com/rohmanhakim/rudolf/pkg/failure"
	"github.com/stretchr/testify/mock"
)

// fetcherMock is a testify mock for fetcher.Fetcher
type fetcherMock struct {
	mock.Mock
}

func (m *fetcherMock) Fetch(ctx context.Context, id puzzle.Identifier) (fetcher.FetchResult, failure.ClassifiedError) {
	args := m.Called(ctx, id)
	var err failure.ClassifiedError
	if e := args.Get(1); e != nil {
		err = e.(failure.ClassifiedError)
	}
	return args.Get(0).(fetcher.FetchResult), err
}

func fetchResult(text string) fetcher.FetchResult {
	return fetcher.NewFetchResultForTest([]byte(text), 200, "text/plain")
}
