package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBlockRecord_RetryAfter(t *testing.T) {
	now := time.Unix(1_000, 0)
	record := BlockRecord{BlockedUntil: now.Add(1500 * time.Millisecond)}

	assert.Equal(t, uint(2), record.RetryAfter(now))
	assert.True(t, record.ActiveAt(now))
	assert.Equal(t, uint(0), record.RetryAfter(now.Add(2*time.Second)))
	assert.False(t, record.ActiveAt(record.BlockedUntil))
}

func TestResult_Remaining(t *testing.T) {
	assert.Equal(t, uint64(2), (&Result{Allowed: true, CurrentCount: 3, Limit: 5}).Remaining())
	assert.Equal(t, uint64(0), (&Result{CurrentCount: 5, Limit: 5}).Remaining())
	assert.Equal(t, uint64(0), (&Result{CurrentCount: 8, Limit: 5}).Remaining())
	assert.Equal(t, uint64(0), (&Result{Allowed: false, CurrentCount: 0, Limit: 5}).Remaining())
}
