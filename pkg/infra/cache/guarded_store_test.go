package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	domainerrors "github.com/NeuralTrust/TrustGuard/pkg/domain/errors"
	"github.com/NeuralTrust/TrustGuard/pkg/domain/ratelimit/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGuardedStore_PassesThrough(t *testing.T) {
	inner := NewTTLMap(nil)
	store := NewGuardedStore(inner, logrus.New(), nil)
	ctx := context.Background()

	count, err := store.IncrementWithTTL(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	entry, err := store.GetWithTTL(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "1", entry.Value)

	ok, err := store.PutIfAbsentWithTTL(ctx, "n", "1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.Put(ctx, "p", "v", time.Minute))
	require.NoError(t, store.Delete(ctx, "k", "n", "p"))
	assert.Equal(t, 0, inner.Len())
}

func TestGuardedStore_WrapsErrors(t *testing.T) {
	inner := new(mocks.MockStore)
	inner.On("IncrementWithTTL", mock.Anything, "k", time.Minute).Return(int64(0), errors.New("boom"))

	store := NewGuardedStore(inner, logrus.New(), nil)
	_, err := store.IncrementWithTTL(context.Background(), "k", time.Minute)

	require.Error(t, err)
	assert.True(t, domainerrors.IsStoreUnavailable(err))
	inner.AssertExpectations(t)
}

func TestGuardedStore_AppliesDeadline(t *testing.T) {
	inner := new(mocks.MockStore)
	inner.On("GetWithTTL", mock.Anything, "k").
		Run(func(args mock.Arguments) {
			ctx, ok := args.Get(0).(context.Context)
			require.True(t, ok)
			deadline, has := ctx.Deadline()
			assert.True(t, has)
			assert.WithinDuration(t, time.Now().Add(MaxStoreTimeout), deadline, MaxStoreTimeout)
		}).
		Return(nil, nil)

	store := NewGuardedStore(inner, logrus.New(), &GuardedStoreOpts{Timeout: time.Hour})
	entry, err := store.GetWithTTL(context.Background(), "k")

	require.NoError(t, err)
	assert.Nil(t, entry)
	inner.AssertExpectations(t)
}

func TestGuardedStore_OpenBreakerSkipsBackend(t *testing.T) {
	inner := new(mocks.MockStore)
	inner.On("Put", mock.Anything, "k", "v", time.Minute).Return(errors.New("down")).Twice()

	store := NewGuardedStore(inner, logrus.New(), &GuardedStoreOpts{MaxFailures: 2, BreakerTimeout: time.Hour})
	ctx := context.Background()

	assert.Error(t, store.Put(ctx, "k", "v", time.Minute))
	assert.Error(t, store.Put(ctx, "k", "v", time.Minute))

	err := store.Put(ctx, "k", "v", time.Minute)
	assert.True(t, domainerrors.IsStoreUnavailable(err))
	inner.AssertNumberOfCalls(t, "Put", 2)
}
