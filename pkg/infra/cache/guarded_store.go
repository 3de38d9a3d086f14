package cache

import (
	"context"
	"time"

	domainerrors "github.com/NeuralTrust/TrustGuard/pkg/domain/errors"
	domain "github.com/NeuralTrust/TrustGuard/pkg/domain/ratelimit"
	"github.com/NeuralTrust/TrustGuard/pkg/infra/breaker"
	"github.com/NeuralTrust/TrustGuard/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

const (
	DefaultStoreTimeout = 150 * time.Millisecond
	MaxStoreTimeout     = 200 * time.Millisecond
)

type GuardedStoreOpts struct {
	Timeout        time.Duration
	MaxFailures    uint32
	BreakerTimeout time.Duration
}

// guardedStore bounds every call to the backing store with a deadline and
// a circuit breaker. Failures surface as StoreUnavailableError.
type guardedStore struct {
	inner   domain.Store
	breaker breaker.CircuitBreaker
	timeout time.Duration
	logger  *logrus.Logger
}

func NewGuardedStore(inner domain.Store, logger *logrus.Logger, opts *GuardedStoreOpts) domain.Store {
	timeout := DefaultStoreTimeout
	maxFailures := uint32(5)
	breakerTimeout := 10 * time.Second
	if opts != nil {
		if opts.Timeout > 0 {
			timeout = opts.Timeout
		}
		if opts.MaxFailures > 0 {
			maxFailures = opts.MaxFailures
		}
		if opts.BreakerTimeout > 0 {
			breakerTimeout = opts.BreakerTimeout
		}
	}
	if timeout > MaxStoreTimeout {
		timeout = MaxStoreTimeout
	}

	return &guardedStore{
		inner:   inner,
		timeout: timeout,
		logger:  logger,
		breaker: breaker.NewCircuitBreaker(breaker.Settings{
			Name:        "counter-store",
			Timeout:     breakerTimeout,
			MaxFailures: maxFailures,
			OnStateChange: func(name string, from, to gobreaker.State) {
				prometheus.BreakerState.Set(float64(to))
				logger.WithFields(logrus.Fields{
					"breaker": name,
					"from":    from.String(),
					"to":      to.String(),
				}).Warn("counter store breaker changed state")
			},
		}),
	}
}

func (s *guardedStore) run(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	err := s.breaker.Execute(func() error {
		return fn(ctx)
	})
	prometheus.StoreLatency.WithLabelValues(operation).Observe(float64(time.Since(start).Microseconds()) / 1000)
	if err != nil {
		prometheus.StoreErrorsTotal.WithLabelValues(operation).Inc()
		return domainerrors.NewStoreUnavailableError(operation, err)
	}
	return nil
}

func (s *guardedStore) IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	var count int64
	err := s.run(ctx, "increment", func(ctx context.Context) error {
		var err error
		count, err = s.inner.IncrementWithTTL(ctx, key, ttl)
		return err
	})
	return count, err
}

func (s *guardedStore) GetWithTTL(ctx context.Context, key string) (*domain.Entry, error) {
	var entry *domain.Entry
	err := s.run(ctx, "get", func(ctx context.Context) error {
		var err error
		entry, err = s.inner.GetWithTTL(ctx, key)
		return err
	})
	return entry, err
}

func (s *guardedStore) PutIfAbsentWithTTL(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	var stored bool
	err := s.run(ctx, "put_if_absent", func(ctx context.Context) error {
		var err error
		stored, err = s.inner.PutIfAbsentWithTTL(ctx, key, value, ttl)
		return err
	})
	return stored, err
}

func (s *guardedStore) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.run(ctx, "put", func(ctx context.Context) error {
		return s.inner.Put(ctx, key, value, ttl)
	})
}

func (s *guardedStore) Delete(ctx context.Context, keys ...string) error {
	return s.run(ctx, "delete", func(ctx context.Context) error {
		return s.inner.Delete(ctx, keys...)
	})
}
