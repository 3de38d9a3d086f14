package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestTTLMap_IncrementWithTTL(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	m := NewTTLMap(clock.Now)
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		got, err := m.IncrementWithTTL(ctx, "k", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, i, got)
	}

	clock.Advance(time.Minute)
	got, err := m.IncrementWithTTL(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got, "expired counter restarts")
}

func TestTTLMap_GetWithTTL(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	m := NewTTLMap(clock.Now)
	ctx := context.Background()

	entry, err := m.GetWithTTL(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, entry)

	require.NoError(t, m.Put(ctx, "k", "v", 10*time.Second))
	clock.Advance(4 * time.Second)

	entry, err = m.GetWithTTL(ctx, "k")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "v", entry.Value)
	assert.Equal(t, 6*time.Second, entry.TTL)

	clock.Advance(6 * time.Second)
	entry, err = m.GetWithTTL(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestTTLMap_NoExpiry(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	m := NewTTLMap(clock.Now)
	ctx := context.Background()

	require.NoError(t, m.Put(ctx, "k", "v", 0))
	clock.Advance(365 * 24 * time.Hour)

	entry, err := m.GetWithTTL(ctx, "k")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Zero(t, entry.TTL)
}

func TestTTLMap_PutIfAbsentWithTTL(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	m := NewTTLMap(clock.Now)
	ctx := context.Background()

	ok, err := m.PutIfAbsentWithTTL(ctx, "k", "a", time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.PutIfAbsentWithTTL(ctx, "k", "b", time.Second)
	require.NoError(t, err)
	assert.False(t, ok)

	clock.Advance(time.Second)
	ok, err = m.PutIfAbsentWithTTL(ctx, "k", "c", time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	entry, _ := m.GetWithTTL(ctx, "k")
	assert.Equal(t, "c", entry.Value)
}

func TestTTLMap_DeleteAndSweep(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	m := NewTTLMap(clock.Now)
	ctx := context.Background()

	require.NoError(t, m.Put(ctx, "a", "1", time.Second))
	require.NoError(t, m.Put(ctx, "b", "1", time.Hour))
	require.NoError(t, m.Put(ctx, "c", "1", time.Hour))

	require.NoError(t, m.Delete(ctx, "c", "absent"))
	assert.Equal(t, 2, m.Len())

	clock.Advance(2 * time.Second)
	assert.Equal(t, 1, m.Sweep())
	assert.Equal(t, 1, m.Len())

	m.Clear()
	assert.Equal(t, 0, m.Len())
}

func TestTTLMap_ConcurrentIncrement(t *testing.T) {
	m := NewTTLMap(nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = m.IncrementWithTTL(ctx, "k", time.Minute)
		}()
	}
	wg.Wait()

	entry, err := m.GetWithTTL(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "50", entry.Value)
}
