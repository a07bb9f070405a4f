package resolver_test

import (
	"context"

	"github.com/rohmanhakim/rudolf/internal/puzzle"
	"github.com/rohmanhakim/rudolf/internal/resolver"
	"github.com/rohmanhakim/rudolf/pkg/failure"
	"github.com/stretchr/testify/mock"
)

// cacheMock is a testify mock for resolver.Cache
type cacheMock struct {
	mock.Mock
}

func (m *cacheMock) Get(ctx context.Context, id puzzle.Identifier) (string, bool, failure.ClassifiedError) {
	args := m.Called(ctx, id)
	var err failure.ClassifiedError
	if e := args.Get(2); e != nil {
		err = e.(failure.ClassifiedError)
	}
	return args.String(0), args.Bool(1), err
}

func (m *cacheMock) Put(ctx context.Context, record puzzle.Record) failure.ClassifiedError {
	args := m.Called(ctx, record)
	if e := args.Get(0); e != nil {
		return e.(failure.ClassifiedError)
	}
	return nil
}

func (m *cacheMock) Close() error {
	args := m.Called()
	return args.Error(0)
}

func openerFor(cache resolver.Cache) (resolver.CacheOpener, *int) {
	opened := 0
	return func(ctx context.Context) (resolver.Cache, failure.ClassifiedError) {
		opened++
		return cache, nil
	}, &opened
}

func failingOpener(err failure.ClassifiedError) resolver.CacheOpener {
	return func(ctx context.Context) (resolver.Cache, failure.ClassifiedError) {
		return nil, err
	}
}
