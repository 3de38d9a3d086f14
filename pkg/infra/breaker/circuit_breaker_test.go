package breaker

import (
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
)

func TestNewCircuitBreaker(t *testing.T) {
	tests := []struct {
		name        string
		breakerName string
		timeout     time.Duration
		maxFailures uint32
	}{
		{name: "Valid circuit breaker", breakerName: "store", timeout: 30 * time.Second, maxFailures: 3},
		{name: "Zero timeout", breakerName: "zero-timeout", timeout: 0, maxFailures: 1},
		{name: "Zero max failures", breakerName: "zero-failures", timeout: 10 * time.Second, maxFailures: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb := NewCircuitBreaker(Settings{Name: tt.breakerName, Timeout: tt.timeout, MaxFailures: tt.maxFailures})

			assert.NotNil(t, cb)
			wrapper, ok := cb.(*circuitBreakerWrapper)
			assert.True(t, ok)
			assert.Equal(t, tt.breakerName, wrapper.breaker.Name())
			assert.Equal(t, gobreaker.StateClosed, cb.State())
		})
	}
}

func TestCircuitBreakerWrapper_Execute_Success(t *testing.T) {
	cb := NewCircuitBreaker(Settings{Name: "success-test", Timeout: 30 * time.Second, MaxFailures: 3})

	err := cb.Execute(func() error { return nil })

	assert.NoError(t, err)
}

func TestCircuitBreakerWrapper_Execute_Failure(t *testing.T) {
	cb := NewCircuitBreaker(Settings{Name: "failure-test", Timeout: 30 * time.Second, MaxFailures: 3})
	testError := errors.New("test error")

	err := cb.Execute(func() error { return testError })

	assert.Error(t, err)
	assert.ErrorIs(t, err, testError)
	assert.Contains(t, err.Error(), "failure-test")
}

func TestCircuitBreakerWrapper_OpensAfterMaxFailures(t *testing.T) {
	var transitions []gobreaker.State
	cb := NewCircuitBreaker(Settings{
		Name:        "trip-test",
		Timeout:     time.Minute,
		MaxFailures: 2,
		OnStateChange: func(_ string, _, to gobreaker.State) {
			transitions = append(transitions, to)
		},
	})
	testError := errors.New("down")

	_ = cb.Execute(func() error { return testError })
	assert.Equal(t, gobreaker.StateClosed, cb.State())
	_ = cb.Execute(func() error { return testError })
	assert.Equal(t, gobreaker.StateOpen, cb.State())

	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})
	assert.False(t, called)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, []gobreaker.State{gobreaker.StateOpen}, transitions)
}
