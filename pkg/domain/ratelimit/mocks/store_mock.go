package mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/NeuralTrust/TrustGuard/pkg/domain/ratelimit"
	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

var _ ratelimit.Store = (*MockStore)(nil)

func (m *MockStore) IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	args := m.Called(ctx, key, ttl)
	count, ok := args.Get(0).(int64)
	if !ok && args.Get(0) != nil {
		return 0, fmt.Errorf("expected int64, got %T", args.Get(0))
	}
	return count, args.Error(1)
}

func (m *MockStore) GetWithTTL(ctx context.Context, key string) (*ratelimit.Entry, error) {
	args := m.Called(ctx, key)
	entry, ok := args.Get(0).(*ratelimit.Entry)
	if !ok && args.Get(0) != nil {
		return nil, fmt.Errorf("expected *ratelimit.Entry, got %T", args.Get(0))
	}
	return entry, args.Error(1)
}

func (m *MockStore) PutIfAbsentWithTTL(ctx context.Context, key string, value string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) Put(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockStore) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}
