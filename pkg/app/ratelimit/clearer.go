package ratelimit

import (
	"context"
	"time"

	domain "github.com/NeuralTrust/TrustGuard/pkg/domain/ratelimit"
	"github.com/sirupsen/logrus"
)

// Clearer is the operator-only unblock path. The engine never calls it.
type Clearer interface {
	// Clear is idempotent: it removes the current window counter and any
	// block for the subject. Violation history is left to decay.
	Clear(ctx context.Context, category domain.Category, subject domain.Subject) error
}

type clearer struct {
	logger   *logrus.Logger
	registry Registry
	store    domain.Store
	keys     *KeyBuilder
	now      func() time.Time
}

func NewClearer(
	logger *logrus.Logger,
	registry Registry,
	store domain.Store,
	keys *KeyBuilder,
	now func() time.Time,
) Clearer {
	if now == nil {
		now = time.Now
	}
	return &clearer{
		logger:   logger,
		registry: registry,
		store:    store,
		keys:     keys,
		now:      now,
	}
}

func (c *clearer) Clear(ctx context.Context, category domain.Category, subject domain.Subject) error {
	policy, err := c.registry.Get(category)
	if err != nil {
		return err
	}
	keys := []string{
		c.keys.Counter(category, subject, policy.WindowIndex(c.now())),
		c.keys.Block(category, subject),
		c.keys.BlockNotice(category, subject),
	}
	if err := c.store.Delete(ctx, keys...); err != nil {
		return asStoreError("clear", err)
	}
	c.logger.WithFields(logrus.Fields{
		"category": category,
		"subject":  c.keys.HashSubject(subject),
	}).Info("rate limit state cleared")
	return nil
}
