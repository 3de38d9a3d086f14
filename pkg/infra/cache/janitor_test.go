package cache

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

type countingPurger struct {
	calls atomic.Int32
}

func (p *countingPurger) PurgeExpired(context.Context) (int64, error) {
	p.calls.Add(1)
	return 1, nil
}

func TestRunJanitor_StopsOnCancel(t *testing.T) {
	purger := &countingPurger{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		RunJanitor(ctx, purger, 5*time.Millisecond, logrus.New())
		close(done)
	}()

	assert.Eventually(t, func() bool { return purger.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}

func TestRunJanitor_ZeroIntervalReturns(t *testing.T) {
	purger := &countingPurger{}
	RunJanitor(context.Background(), purger, 0, logrus.New())
	assert.Equal(t, int32(0), purger.calls.Load())
}

func TestTTLMap_PurgeExpired(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	m := NewTTLMap(clock.Now)
	_ = m.Put(context.Background(), "a", "1", time.Second)
	clock.Advance(time.Second)

	removed, err := m.PurgeExpired(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}
