package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPolicy_WindowIndex(t *testing.T) {
	p := Policy{Category: CategoryLogin, MaxRequests: 5, WindowSeconds: 900}

	assert.Equal(t, int64(0), p.WindowIndex(time.Unix(899, 0)))
	assert.Equal(t, int64(1), p.WindowIndex(time.Unix(900, 0)))
	assert.Equal(t, int64(1), p.WindowIndex(time.Unix(1799, 999)))
	assert.Equal(t, time.Unix(1800, 0), p.WindowStart(2))
}

func TestPolicy_Validate(t *testing.T) {
	assert.NoError(t, Policy{Category: CategoryAPI, MaxRequests: 1, WindowSeconds: 1}.Validate())
	assert.Error(t, Policy{MaxRequests: 1, WindowSeconds: 1}.Validate())
	assert.Error(t, Policy{Category: CategoryAPI, WindowSeconds: 1}.Validate())
	assert.Error(t, Policy{Category: CategoryAPI, MaxRequests: 1}.Validate())
}

func TestCategory_IsKnown(t *testing.T) {
	for _, c := range Categories() {
		assert.True(t, c.IsKnown(), c.String())
	}
	assert.False(t, Category("checkout").IsKnown())
}
